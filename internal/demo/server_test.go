package demo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/config"
)

// noShuffle keeps the bank in seed order so tests know which questions come back.
func noShuffle(int, func(i, j int)) {}

func newClients(t *testing.T) (*api.Learner, *api.Coach) {
	t.Helper()
	srv := httptest.NewServer(NewServer(WithShuffle(noShuffle)).Handler())
	t.Cleanup(srv.Close)

	client := api.NewClient()
	return api.NewLearner(client, config.NewRoleContext(config.RoleLearner, "", srv.URL)),
		api.NewCoach(client, config.NewRoleContext(config.RoleCoach, "", srv.URL))
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(NewServer().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := httptest.NewServer(NewServer().Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/student/progress", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestLearningPath_NoData(t *testing.T) {
	learner, _ := newClients(t)

	path, err := learner.FetchLearningPath(context.Background())
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Equal(t, "No data yet", path[0].TopicName)
	assert.Equal(t, "unknown", path[0].Mastery)
}

func TestSmartQuizAndProgress(t *testing.T) {
	learner, _ := newClients(t)
	ctx := context.Background()

	qs, err := learner.GenerateQuiz(ctx, api.GenerateRequest{Mode: api.ModeSmart})
	require.NoError(t, err)
	require.Len(t, qs, smartQuizSize)
	assert.Equal(t, 1, qs[0].ID)

	// Variables: one right, one wrong. Loops: both right.
	answers := []struct {
		id  int
		opt string
		ok  bool
	}{
		{1, "c", true},
		{2, "a", false},
		{3, "a", true},
		{4, "a", true},
	}
	for _, a := range answers {
		res, err := learner.SubmitAnswer(ctx, api.SubmitAnswerRequest{QuestionID: a.id, SelectedOption: a.opt, Mode: api.ModeSmart})
		require.NoError(t, err)
		assert.Equal(t, a.ok, res.IsCorrect, "question %d", a.id)
		assert.NotEmpty(t, res.Explanation)
	}

	p, err := learner.FetchProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, p.TotalAttempts)
	assert.Equal(t, float64(75), p.OverallAccuracy)
	assert.Equal(t, 8, p.TimeSpentMinutes)
	assert.Equal(t, []string{"Loops"}, p.Strengths)
	assert.Equal(t, []string{"Variables"}, p.Weaknesses)
	assert.Equal(t, float64(50), p.TopicStats["Variables"].Accuracy)

	path, err := learner.FetchLearningPath(ctx)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, "strong", path[0].Mastery)
	assert.Equal(t, "weak", path[1].Mastery)
}

func TestFixedSetFlow(t *testing.T) {
	learner, coach := newClients(t)
	ctx := context.Background()

	require.NoError(t, coach.CreateQuiz(ctx, api.NewQuiz{Title: "Empty set"}))

	sets, err := learner.ListFixedSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1, "sets without questions are hidden")
	assert.Equal(t, 2, sets[0].QuestionCount)

	id := sets[0].ID
	qs, err := learner.GenerateQuiz(ctx, api.GenerateRequest{Mode: api.ModeManual, QuizID: &id})
	require.NoError(t, err)
	require.Len(t, qs, 2)

	res, err := learner.SubmitAnswer(ctx, api.SubmitAnswerRequest{QuestionID: qs[0].ID, SelectedOption: "b", Mode: api.ModeManual})
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)

	p, err := learner.FetchProgress(ctx)
	require.NoError(t, err)
	assert.Zero(t, p.TotalAttempts, "fixed-set answers are not counted")
}

func TestSubmitUnknownQuestion(t *testing.T) {
	learner, _ := newClients(t)

	_, err := learner.SubmitAnswer(context.Background(), api.SubmitAnswerRequest{QuestionID: 999, SelectedOption: "a", Mode: api.ModeSmart})
	var fe *api.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, api.KindStatus, fe.Kind)
	assert.Equal(t, "Question not found", fe.Message)
}

func TestAssignmentsAndFeedback(t *testing.T) {
	learner, coach := newClients(t)
	ctx := context.Background()

	require.NoError(t, learner.SubmitAssignment(ctx, api.AssignmentAnswer{AssignmentID: 2, Content: "for i in range(3): print(i)"}))

	subs, err := coach.ListSubmissions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "2_1", subs[0].SubmissionID)

	rating := 9
	require.NoError(t, coach.SaveFeedback(ctx, api.FeedbackRequest{SubmissionID: subs[0].SubmissionID, Feedback: "Nice", Rating: &rating}))

	as, err := learner.ListAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, as, 3)
	require.NotNil(t, as[1].Submission)
	assert.Equal(t, "Nice", as[1].Submission.Feedback)
	require.NotNil(t, as[1].Submission.Rating)
	assert.Equal(t, 9, *as[1].Submission.Rating)

	err = coach.SaveFeedback(ctx, api.FeedbackRequest{SubmissionID: "bogus"})
	assert.True(t, api.IsKind(err, api.KindStatus))
}

func TestCoachCreatesRepeatedly(t *testing.T) {
	learner, coach := newClients(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		require.NoError(t, coach.CreateLesson(ctx, api.NewLesson{Title: title, Topic: "Loops"}))
	}

	lessons, err := coach.ListLessons(ctx)
	require.NoError(t, err)
	require.Len(t, lessons, 4)
	assert.Equal(t, "Third", lessons[0].Title)

	seen, err := learner.ListLessons(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Demo Coach", seen[0].MentorName)
}

func TestQuizAuthoring(t *testing.T) {
	_, coach := newClients(t)
	ctx := context.Background()

	quizzes, err := coach.ListQuizzes(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, quizzes)
	id := quizzes[0].ID

	require.NoError(t, coach.AddQuizQuestion(ctx, id, api.AuthoredQuestion{
		Question: "Is Python typed?", OptionA: "yes", OptionB: "no", OptionC: "dynamically", OptionD: "never",
		CorrectOption: " C ",
	}))

	qs, err := coach.ListQuizQuestions(ctx, id)
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, "c", qs[2].CorrectOption)
}

func TestMessagesRoundTrip(t *testing.T) {
	learner, coach := newClients(t)
	ctx := context.Background()

	require.NoError(t, learner.MessageMentor(ctx, "How do I exit a loop?"))

	msgs, err := coach.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "How do I exit a loop?", msgs[0].QuestionText)

	require.NoError(t, coach.AnswerMessage(ctx, api.MessageAnswer{MessageID: msgs[0].ID, AnswerText: "Use break."}))
	msgs, err = coach.ListMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Use break.", msgs[0].AnswerText)

	reply, err := learner.AskAIMentor(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Type a question so I can actually help you.", reply)
}

func TestStudentsOverview(t *testing.T) {
	_, coach := newClients(t)

	students, err := coach.ListStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Riya", students[1].Name)
	assert.Equal(t, 3, students[1].TotalAttempts)
	assert.Equal(t, []string{"Functions", "Loops"}, students[1].Weaknesses)
}
