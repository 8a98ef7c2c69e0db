package coach

import "github.com/abhisek/tutordesk/internal/api"

// dashboardMsg carries the initial load of every list.
type dashboardMsg struct {
	Students       []api.StudentPerformance
	StudentsErr    error
	Lessons        []api.Lesson
	LessonsErr     error
	Assignments    []api.Assignment
	AssignmentsErr error
	Messages       []api.Message
	MessagesErr    error
	Quizzes        []api.CoachQuiz
	QuizzesErr     error
}

type lessonsMsg struct {
	Lessons []api.Lesson
	Err     error
}

type assignmentsMsg struct {
	Assignments []api.Assignment
	Err         error
}

type submissionsMsg struct {
	AssignmentID int
	Submissions  []api.StudentSubmission
	Err          error
}

type messagesMsg struct {
	Messages []api.Message
	Err      error
}

type quizzesMsg struct {
	Quizzes []api.CoachQuiz
	Err     error
}

type questionsMsg struct {
	QuizID    int
	Questions []api.AuthoredQuestion
	Err       error
}

// action names a write the coach performed.
type action string

const (
	actCreateLesson     action = "create lesson"
	actCreateAssignment action = "create assignment"
	actSaveFeedback     action = "save feedback"
	actAnswerMessage    action = "answer message"
	actCreateQuiz       action = "create quiz"
	actAddQuestion      action = "add question"
)

// savedMsg confirms a write. Target is the assignment or quiz it touched.
type savedMsg struct {
	Action action
	Target int
	Err    error
}
