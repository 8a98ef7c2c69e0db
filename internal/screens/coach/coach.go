// Package coach is the coach dashboard: student overview, lesson and
// assignment authoring, submission feedback, messages and fixed sets.
package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/quiz"
	"github.com/abhisek/tutordesk/internal/screen"
	"github.com/abhisek/tutordesk/internal/ui/components"
	"github.com/abhisek/tutordesk/internal/ui/layout"
	"github.com/abhisek/tutordesk/internal/ui/theme"
	"github.com/abhisek/tutordesk/internal/ui/view"
)

// Backend is the coach API the dashboard uses. *api.Coach satisfies it.
type Backend interface {
	ListStudents(ctx context.Context) ([]api.StudentPerformance, error)
	ListLessons(ctx context.Context) ([]api.Lesson, error)
	CreateLesson(ctx context.Context, l api.NewLesson) error
	ListAssignments(ctx context.Context) ([]api.Assignment, error)
	CreateAssignment(ctx context.Context, a api.NewAssignment) error
	ListSubmissions(ctx context.Context, assignmentID int) ([]api.StudentSubmission, error)
	SaveFeedback(ctx context.Context, req api.FeedbackRequest) error
	ListMessages(ctx context.Context) ([]api.Message, error)
	AnswerMessage(ctx context.Context, req api.MessageAnswer) error
	ListQuizzes(ctx context.Context) ([]api.CoachQuiz, error)
	CreateQuiz(ctx context.Context, q api.NewQuiz) error
	ListQuizQuestions(ctx context.Context, quizID int) ([]api.AuthoredQuestion, error)
	AddQuizQuestion(ctx context.Context, quizID int, q api.AuthoredQuestion) error
}

const (
	idStudents      = "mentor-students-performance"
	idLessons       = "mentor-lessons-list"
	idAssignments   = "mentor-assignments-list"
	idSubmissions   = "mentor-submissions-list"
	idMessages      = "mentor-messages"
	idQuizzes       = "mentor-quizzes-list"
	idQuizQuestions = "mentor-quiz-questions-list"
)

const (
	tabStudents = iota
	tabLessons
	tabAssignments
	tabMessages
	tabFixedSets
	tabCount
)

var headings = map[string]string{
	idStudents:      "Students",
	idLessons:       "Lessons",
	idAssignments:   "Assignments",
	idSubmissions:   "Submissions",
	idMessages:      "Messages",
	idQuizzes:       "Fixed sets",
	idQuizQuestions: "Questions",
}

// Screen implements screen.Screen for the coach dashboard.
type Screen struct {
	backend Backend
	logger  *slog.Logger
	binder  *view.Binder[tea.Cmd]

	tabs   components.Tabs
	panels [tabCount]components.Panel

	students      *view.Container
	lessons       *view.Container
	assignments   *view.Container
	submissions   *view.Container
	messages      *view.Container
	quizzes       *view.Container
	quizQuestions *view.Container

	selectedAssignment int
	selectedQuiz       int

	notice   string
	form     *components.Form
	onSubmit func(values map[string]string) (tea.Cmd, error)
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

func button(name, label, class string) view.Control {
	return view.Control{Name: name, Label: label, Classes: []string{class}}
}

// New creates the coach dashboard. A nil logger discards output.
func New(backend Backend, logger *slog.Logger) *Screen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Screen{
		backend: backend,
		logger:  logger,
		binder:  view.NewBinder[tea.Cmd](),
		tabs:    components.NewTabs("Students", "Lessons", "Assignments", "Messages", "Fixed sets"),

		students:    view.NewContainer(idStudents),
		lessons:     view.NewContainer(idLessons, button("create-lesson", "New lesson", "create-btn")),
		assignments: view.NewContainer(idAssignments, button("create-assignment", "New assignment", "create-btn")),
		submissions: view.NewContainer(idSubmissions),
		messages:    view.NewContainer(idMessages),
		quizzes: view.NewContainer(idQuizzes,
			button("create-quiz", "New fixed set", "create-btn"),
			button("add-question", "Add question", "create-btn"),
		),
		quizQuestions: view.NewContainer(idQuizQuestions),
	}

	s.panels[tabStudents] = components.NewPanel(s.students)
	s.panels[tabLessons] = components.NewPanel(s.lessons)
	s.panels[tabAssignments] = components.NewPanel(s.assignments, s.submissions)
	s.panels[tabMessages] = components.NewPanel(s.messages)
	s.panels[tabFixedSets] = components.NewPanel(s.quizzes, s.quizQuestions)

	s.binder.BindOnce(s.lessons, view.Click, view.ByClass("create-btn"), s.onCreateLesson)
	s.binder.BindOnce(s.assignments, view.Click, oneOf("create-btn", "view-submissions-btn"), s.onAssignmentAction)
	s.binder.BindOnce(s.submissions, view.Click, view.ByClass("save-feedback-btn"), s.onSaveFeedback)
	s.binder.BindOnce(s.messages, view.Click, view.ByClass("answer-msg-btn"), s.onAnswerMessage)
	s.binder.BindOnce(s.quizzes, view.Click, oneOf("create-btn", "select-quiz-btn"), s.onQuizAction)

	for _, c := range []*view.Container{s.students, s.lessons, s.assignments, s.messages, s.quizzes} {
		view.Empty(c, "Loading...")
	}
	view.Empty(s.submissions, "Select an assignment to see its submissions.")
	view.Empty(s.quizQuestions, "Select a fixed set to see its questions.")
	return s
}

func oneOf(classes ...string) view.Match {
	return func(c view.Control) bool {
		for _, class := range classes {
			if c.HasClass(class) {
				return true
			}
		}
		return false
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.loadDashboardCmd()
}

func (s *Screen) Title() string {
	return "Coach dashboard"
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
		{Key: "1-5", Description: "Tabs"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		s.handleDashboard(msg)
	case lessonsMsg:
		s.renderLessons(msg.Lessons, msg.Err)
	case assignmentsMsg:
		s.renderAssignments(msg.Assignments, msg.Err)
	case submissionsMsg:
		s.handleSubmissions(msg)
	case messagesMsg:
		s.renderMessages(msg.Messages, msg.Err)
	case quizzesMsg:
		s.renderQuizzes(msg.Quizzes, msg.Err)
	case questionsMsg:
		s.handleQuestions(msg)
	case savedMsg:
		return s, s.handleSaved(msg)
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	default:
		if s.form != nil {
			_, cmd := s.form.Update(msg)
			return s, cmd
		}
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

func (s *Screen) click(c *view.Container, t view.Target) tea.Cmd {
	cmd, _ := s.binder.Dispatch(c, view.Event{Kind: view.Click, Target: t})
	return cmd
}

func (s *Screen) openForm(f *components.Form, onSubmit func(map[string]string) (tea.Cmd, error)) {
	s.notice = ""
	s.form = f
	s.onSubmit = onSubmit
}

func (s *Screen) updateForm(msg tea.KeyMsg) tea.Cmd {
	action, cmd := s.form.Update(msg)
	switch action {
	case components.FormCancelled:
		s.form, s.onSubmit = nil, nil
		return nil
	case components.FormSubmitted:
		next, err := s.onSubmit(s.form.Values())
		var ve *quiz.ValidationError
		if errors.As(err, &ve) {
			s.form.Prompt = ve.Prompt
			return nil
		}
		s.form, s.onSubmit = nil, nil
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
	if s.tabs.Active == tabFixedSets && s.selectedQuiz != 0 {
		b.WriteString("  " + theme.Subtitle.Render(fmt.Sprintf("Selected quiz ID: %d", s.selectedQuiz)) + "\n")
		height--
	}
	b.WriteString(s.panels[s.tabs.Active].View(width, height-4, headings))
	return b.String()
}

func (s *Screen) warn(msg, panel string, err error) {
	s.logger.Warn(msg, append([]any{"panel", panel}, api.LogAttrs(err)...)...)
}
