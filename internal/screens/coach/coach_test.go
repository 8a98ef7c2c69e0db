package coach

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/config"
	"github.com/abhisek/tutordesk/internal/demo"
	"github.com/abhisek/tutordesk/internal/ui/view"
)

type fixture struct {
	screen  *Screen
	learner *api.Learner
	posts   *atomic.Int32
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	srv := httptest.NewServer(demo.NewServer().Handler())
	t.Cleanup(srv.Close)

	posts := &atomic.Int32{}
	client := api.NewClient(api.WithObserver(func(info api.RequestInfo) {
		if info.Method == http.MethodPost {
			posts.Add(1)
		}
	}))
	coach := api.NewCoach(client, config.NewRoleContext(config.RoleCoach, "", srv.URL))
	learner := api.NewLearner(api.NewClient(), config.NewRoleContext(config.RoleLearner, "", srv.URL))

	s := New(coach, nil)
	run(s, s.Init())
	return fixture{screen: s, learner: learner, posts: posts}
}

// run executes cmd and feeds the dashboard's messages back into it.
func run(s *Screen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(s, c)
		}
	case dashboardMsg, lessonsMsg, assignmentsMsg, submissionsMsg, messagesMsg,
		quizzesMsg, questionsMsg, savedMsg:
		_, next := s.Update(msg)
		run(s, next)
	}
}

// fill sets the open form's fields and presses enter through to submit.
func fill(t *testing.T, s *Screen, values map[string]string) tea.Cmd {
	t.Helper()
	require.NotNil(t, s.form, "expected an open form")
	for i := range s.form.Fields {
		f := &s.form.Fields[i]
		if v, ok := values[f.Key]; ok {
			f.Input.SetValue(v)
		}
	}
	var cmd tea.Cmd
	for range s.form.Fields {
		_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	}
	return cmd
}

func static(t *testing.T, c *view.Container, name string) view.Target {
	t.Helper()
	for i, ctrl := range c.Static {
		if ctrl.Name == name {
			return view.Target{Card: -1, Control: i}
		}
	}
	t.Fatalf("no static control %q in %s", name, c.ID)
	return view.Target{}
}

func cardControl(t *testing.T, c *view.Container, title string) view.Target {
	t.Helper()
	for i, card := range c.Cards {
		if card.Title == title && len(card.Controls) > 0 {
			return view.Target{Card: i, Control: 0}
		}
	}
	t.Fatalf("no card %q in %s", title, c.ID)
	return view.Target{}
}

func text(c *view.Container) string {
	var b strings.Builder
	for _, card := range c.Cards {
		b.WriteString(card.Title + "\n" + strings.Join(card.Lines, "\n") + "\n")
	}
	return b.String()
}

func TestDashboardLoadsEveryList(t *testing.T) {
	f := newFixture(t)
	s := f.screen

	assert.Contains(t, text(s.students), "Riya")
	assert.Contains(t, text(s.students), "Weak: Functions, Loops")
	assert.Contains(t, text(s.students), "Weak: None")
	assert.Equal(t, 1, s.lessons.Len())
	assert.Equal(t, 3, s.assignments.Len())
	assert.Equal(t, 1, s.messages.Len())
	assert.Equal(t, "Python Basics Check", s.quizzes.Cards[0].Title)
}

func TestCreateLessonRepeatedly(t *testing.T) {
	f := newFixture(t)
	s := f.screen

	for _, title := range []string{"Lists", "Dicts", "Sets"} {
		s.click(s.lessons, static(t, s.lessons, "create-lesson"))
		run(s, fill(t, s, map[string]string{"title": title, "topic": "Data"}))
		require.Nil(t, s.form)
	}

	assert.Equal(t, int32(3), f.posts.Load())
	require.Equal(t, 4, s.lessons.Len())
	assert.Equal(t, "Sets", s.lessons.Cards[0].Title)
	assert.True(t, s.binder.Bound(s.lessons, view.Click))
}

func TestCreateLessonRequiresTitle(t *testing.T) {
	f := newFixture(t)
	s := f.screen

	s.click(s.lessons, static(t, s.lessons, "create-lesson"))
	cmd := fill(t, s, map[string]string{"topic": "Data"})

	assert.Nil(t, cmd)
	require.NotNil(t, s.form)
	assert.Equal(t, PromptTitleRequired, s.form.Prompt)
	assert.Equal(t, int32(0), f.posts.Load())
}

func TestCreateAssignmentRepeatedly(t *testing.T) {
	f := newFixture(t)
	s := f.screen

	for _, title := range []string{"M4", "M5"} {
		s.click(s.assignments, static(t, s.assignments, "create-assignment"))
		run(s, fill(t, s, map[string]string{"title": title, "due_date": "2026-12-01"}))
	}
	assert.Equal(t, 5, s.assignments.Len())
}

func TestSubmissionFeedback(t *testing.T) {
	f := newFixture(t)
	s := f.screen
	require.NoError(t, f.learner.SubmitAssignment(context.Background(), api.AssignmentAnswer{AssignmentID: 1, Content: "x = 5"}))

	run(s, s.click(s.assignments, cardControl(t, s.assignments, "M1: Variables Practice")))
	require.Equal(t, 1, s.submissions.Len())
	assert.Equal(t, "1_1", s.submissions.Cards[0].Key)

	s.click(s.submissions, view.Target{Card: 0, Control: 0})
	cmd := fill(t, s, map[string]string{"feedback": "Nice", "rating": "11"})
	assert.Nil(t, cmd)
	assert.Equal(t, PromptRatingRange, s.form.Prompt)

	s.form.Fields[1].Input.SetValue("9")
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(s, cmd)

	assert.Contains(t, text(s.submissions), "Feedback: Nice")
	assert.Contains(t, text(s.submissions), "Rating: 9/10")

	as, err := f.learner.ListAssignments(context.Background())
	require.NoError(t, err)
	require.NotNil(t, as[0].Submission.Rating)
	assert.Equal(t, 9, *as[0].Submission.Rating)
}

func TestOldSubmissionsIgnored(t *testing.T) {
	s := New(failingBackend{}, nil)
	s.selectedAssignment = 2
	view.Empty(s.submissions, "Loading submissions...")

	s.Update(submissionsMsg{AssignmentID: 1, Submissions: []api.StudentSubmission{{SubmissionID: "1_1"}}})

	msg, ok := view.Message(s.submissions)
	assert.True(t, ok)
	assert.Equal(t, "Loading submissions...", msg)
}

func TestAnswerMessage(t *testing.T) {
	f := newFixture(t)
	s := f.screen

	s.click(s.messages, cardControl(t, s.messages, "Riya"))
	run(s, fill(t, s, map[string]string{"answer": "Use a for loop."}))

	assert.Contains(t, text(s.messages), "Answer: Use a for loop.")
	assert.Contains(t, text(s.messages), "Answered at:")
}

func TestFixedSetAuthoring(t *testing.T) {
	f := newFixture(t)
	s := f.screen

	s.click(s.quizzes, static(t, s.quizzes, "add-question"))
	assert.Equal(t, PromptSelectQuiz, s.notice)
	assert.Nil(t, s.form)

	s.click(s.quizzes, static(t, s.quizzes, "create-quiz"))
	run(s, fill(t, s, map[string]string{"title": "Loops quiz"}))
	require.Equal(t, "Loops quiz", s.quizzes.Cards[0].Title)

	run(s, s.click(s.quizzes, cardControl(t, s.quizzes, "Loops quiz")))
	require.NotZero(t, s.selectedQuiz)
	s.tabs.Active = tabFixedSets
	assert.Contains(t, s.View(100, 40), "Selected quiz ID:")
	assert.True(t, s.quizzes.Cards[0].Controls[0].HasClass("selected"))

	s.click(s.quizzes, static(t, s.quizzes, "add-question"))
	cmd := fill(t, s, map[string]string{"question": "What does range(3) yield?", "correct": "e"})
	assert.Nil(t, cmd)
	assert.Equal(t, PromptQuestionRequired, s.form.Prompt)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	for _, q := range []string{"What does range(3) yield?", "Which keyword loops?"} {
		s.click(s.quizzes, static(t, s.quizzes, "add-question"))
		run(s, fill(t, s, map[string]string{
			"question": q, "a": "one", "b": "two", "c": "three", "d": "four", "correct": " B ",
		}))
	}

	require.Equal(t, 2, s.quizQuestions.Len())
	assert.Contains(t, text(s.quizQuestions), "Correct: B")

	sets, err := f.learner.ListFixedSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "Loops quiz", sets[0].Title)
}

// failingBackend fails every call.
type failingBackend struct{}

var errDown = errors.New("backend down")

func (failingBackend) ListStudents(context.Context) ([]api.StudentPerformance, error) {
	return nil, errDown
}
func (failingBackend) ListLessons(context.Context) ([]api.Lesson, error) { return nil, errDown }
func (failingBackend) CreateLesson(context.Context, api.NewLesson) error { return errDown }
func (failingBackend) ListAssignments(context.Context) ([]api.Assignment, error) {
	return nil, errDown
}
func (failingBackend) CreateAssignment(context.Context, api.NewAssignment) error { return errDown }
func (failingBackend) ListSubmissions(context.Context, int) ([]api.StudentSubmission, error) {
	return nil, errDown
}
func (failingBackend) SaveFeedback(context.Context, api.FeedbackRequest) error { return errDown }
func (failingBackend) ListMessages(context.Context) ([]api.Message, error) { return nil, errDown }
func (failingBackend) AnswerMessage(context.Context, api.MessageAnswer) error { return errDown }
func (failingBackend) ListQuizzes(context.Context) ([]api.CoachQuiz, error) { return nil, errDown }
func (failingBackend) CreateQuiz(context.Context, api.NewQuiz) error { return errDown }
func (failingBackend) ListQuizQuestions(context.Context, int) ([]api.AuthoredQuestion, error) {
	return nil, errDown
}
func (failingBackend) AddQuizQuestion(context.Context, int, api.AuthoredQuestion) error {
	return errDown
}

func TestFailuresKeepDashboardUsable(t *testing.T) {
	s := New(failingBackend{}, nil)
	run(s, s.Init())

	msg, ok := view.Message(s.students)
	assert.True(t, ok)
	assert.Equal(t, "Could not load. Try again later.", msg)

	s.click(s.lessons, static(t, s.lessons, "create-lesson"))
	run(s, fill(t, s, map[string]string{"title": "Lists"}))
	assert.Equal(t, "Could not create lesson. Try again.", s.notice)
}
