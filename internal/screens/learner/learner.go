// Package learner is the learner dashboard: quiz, progress, learning path,
// lessons, assignments and mentor tabs.
package learner

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/quiz"
	"github.com/abhisek/tutordesk/internal/refresh"
	"github.com/abhisek/tutordesk/internal/screen"
	"github.com/abhisek/tutordesk/internal/ui/components"
	"github.com/abhisek/tutordesk/internal/ui/layout"
	"github.com/abhisek/tutordesk/internal/ui/theme"
	"github.com/abhisek/tutordesk/internal/ui/view"
)

// Backend is the learner API the dashboard uses. *api.Learner satisfies it.
type Backend interface {
	quiz.Backend
	refresh.Source
	ListFixedSets(ctx context.Context) ([]api.FixedSet, error)
	ListLessons(ctx context.Context) ([]api.Lesson, error)
	ListAssignments(ctx context.Context) ([]api.Assignment, error)
	SubmitAssignment(ctx context.Context, req api.AssignmentAnswer) error
	MessageMentor(ctx context.Context, text string) error
	AskAIMentor(ctx context.Context, message string) (string, error)
}

// Container ids. Bindings are keyed by these and survive every re-render.
const (
	idQuizControls = "quiz-controls"
	idFixedSets    = "manual-quiz-list"
	idQuestions    = "quiz-container"
	idSummary      = "progress-summary"
	idTopics       = "topic-stats"
	idPath         = "learning-path-container"
	idLessons      = "lessons-container"
	idAssignments  = "assignments-container"
	idMentor       = "mentor-panel"
)

const (
	tabQuiz = iota
	tabProgress
	tabPath
	tabLessons
	tabAssignments
	tabMentor
	tabCount
)

var headings = map[string]string{
	idQuizControls: "Quiz",
	idFixedSets:    "Fixed sets",
	idQuestions:    "Questions",
	idSummary:      "Summary",
	idTopics:       "Topics",
	idPath:         "Learning path",
	idLessons:      "Lessons",
	idAssignments:  "Assignments",
	idMentor:       "Mentor",
}

// Screen implements screen.Screen for the learner dashboard.
type Screen struct {
	backend Backend
	cascade *refresh.Coordinator
	logger  *slog.Logger
	binder  *view.Binder[tea.Cmd]
	machine *quiz.Machine

	tabs   components.Tabs
	panels [tabCount]components.Panel

	quizControls *view.Container
	fixedSets    *view.Container
	questions    *view.Container
	summary      *view.Container
	topics       *view.Container
	path         *view.Container
	lessons      *view.Container
	assignments  *view.Container
	mentor       *view.Container

	sets          []api.FixedSet
	serverLessons []api.Lesson
	recs          []refresh.Recommendation
	chat          []chatEntry
	appliedSeq    uint64
	hasProgress   bool

	notice   string
	form     *components.Form
	onSubmit func(values map[string]string) (tea.Cmd, error)
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

// New creates the learner dashboard. A nil logger discards output.
func New(backend Backend, cascade *refresh.Coordinator, logger *slog.Logger) *Screen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Screen{
		backend: backend,
		cascade: cascade,
		logger:  logger,
		binder:  view.NewBinder[tea.Cmd](),
		machine: quiz.NewMachine(),
		tabs:    components.NewTabs("Quiz", "Progress", "Path", "Lessons", "Assignments", "Mentor"),

		quizControls: view.NewContainer(idQuizControls,
			view.Control{Name: "mode", Classes: []string{"quiz-control"}},
			view.Control{Name: "generate", Label: "Generate quiz", Classes: []string{"quiz-control"}},
		),
		fixedSets:   view.NewContainer(idFixedSets),
		questions:   view.NewContainer(idQuestions),
		summary:     view.NewContainer(idSummary),
		topics:      view.NewContainer(idTopics),
		path:        view.NewContainer(idPath),
		lessons:     view.NewContainer(idLessons),
		assignments: view.NewContainer(idAssignments),
		mentor: view.NewContainer(idMentor,
			view.Control{Name: "ask-ai", Label: "Ask AI mentor", Classes: []string{"mentor-action"}},
			view.Control{Name: "message-coach", Label: "Message your coach", Classes: []string{"mentor-action"}},
		),
	}

	s.panels[tabQuiz] = components.NewPanel(s.quizControls, s.questions)
	s.panels[tabProgress] = components.NewPanel(s.summary, s.topics)
	s.panels[tabPath] = components.NewPanel(s.path)
	s.panels[tabLessons] = components.NewPanel(s.lessons)
	s.panels[tabAssignments] = components.NewPanel(s.assignments)
	s.panels[tabMentor] = components.NewPanel(s.mentor)

	s.binder.BindOnce(s.quizControls, view.Click, view.ByClass("quiz-control"), s.onQuizControl)
	s.binder.BindOnce(s.fixedSets, view.Click, view.ByClass("select-set"), s.onSelectSet)
	s.binder.BindOnce(s.questions, view.Click, view.ByClass("quiz-opt"), s.onOption)
	s.binder.BindOnce(s.assignments, view.Click, view.ByClass("submit-assignment-btn"), s.onAssignment)
	s.binder.BindOnce(s.mentor, view.Click, view.ByClass("mentor-action"), s.onMentorAction)

	s.renderModeControl()
	view.Empty(s.questions, "Choose a mode and generate a quiz.")
	view.Empty(s.summary, "Loading progress...")
	view.Empty(s.path, "Loading learning path...")
	view.Empty(s.lessons, "Loading lessons...")
	view.Empty(s.assignments, "Loading assignments...")
	return s
}

// Init loads the dashboard: the refresh chain plus the independent panels.
func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.cascadeCmd(), s.loadPanelsCmd())
}

func (s *Screen) Title() string {
	return "Learner dashboard"
}

func (s *Screen) CapturingInput() bool {
	return s.form != nil
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.form != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next/Submit"},
			{Key: "Tab", Description: "Field"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-6", Description: "Tabs"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s, s.handleGenerated(msg)
	case submittedMsg:
		return s, s.handleSubmitted(msg)
	case cascadeMsg:
		s.handleCascade(msg)
		return s, nil
	case fixedSetsMsg:
		s.handleFixedSets(msg)
		return s, nil
	case panelsMsg:
		s.handlePanels(msg)
		return s, nil
	case assignmentsMsg:
		s.handleAssignments(msg)
		return s, nil
	case assignmentSubmittedMsg:
		return s, s.handleAssignmentSubmitted(msg)
	case aiReplyMsg:
		s.handleAIReply(msg)
		return s, nil
	case messageSentMsg:
		s.handleMessageSent(msg)
		return s, nil
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.form != nil {
		_, cmd := s.form.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.form != nil {
		return s.updateForm(msg)
	}
	if s.tabs.HandleKey(msg.String()) {
		s.notice = ""
		return nil
	}

	var click *components.Click
	s.panels[s.tabs.Active], click = s.panels[s.tabs.Active].Update(msg)
	if click == nil {
		return nil
	}
	return s.click(click.Container, click.Event.Target)
}

// click routes a click through the container's delegate.
func (s *Screen) click(c *view.Container, t view.Target) tea.Cmd {
	cmd, _ := s.binder.Dispatch(c, view.Event{Kind: view.Click, Target: t})
	return cmd
}

func (s *Screen) openForm(f *components.Form, onSubmit func(map[string]string) (tea.Cmd, error)) {
	s.form = f
	s.onSubmit = onSubmit
}

func (s *Screen) closeForm() {
	s.form = nil
	s.onSubmit = nil
}

func (s *Screen) updateForm(msg tea.KeyMsg) tea.Cmd {
	action, cmd := s.form.Update(msg)
	switch action {
	case components.FormCancelled:
		s.closeForm()
		return nil
	case components.FormSubmitted:
		next, err := s.onSubmit(s.form.Values())
		var ve *quiz.ValidationError
		if errors.As(err, &ve) {
			s.form.Prompt = ve.Prompt
			return nil
		}
		s.closeForm()
		return next
	}
	return cmd
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(s.tabs.View(width))
	b.WriteString("\n")
	if s.notice != "" {
		b.WriteString("  " + theme.Notice.Render(s.notice))
	}
	b.WriteString("\n")

	if s.form != nil {
		b.WriteString(s.form.View(width))
		return b.String()
	}
	b.WriteString(s.panels[s.tabs.Active].View(width, height-4, headings))
	return b.String()
}

// warn logs a failed load with the error's endpoint and kind.
func (s *Screen) warn(msg, panel string, err error) {
	s.logger.Warn(msg, append([]any{"panel", panel}, api.LogAttrs(err)...)...)
}
