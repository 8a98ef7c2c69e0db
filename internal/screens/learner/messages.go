package learner

import (
	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/quiz"
	"github.com/abhisek/tutordesk/internal/refresh"
)

// generatedMsg carries the outcome of a quiz generation.
type generatedMsg struct {
	Result quiz.GenerateResult
}

// submittedMsg carries the outcome of an answer submission.
type submittedMsg struct {
	Result quiz.SubmitResult
}

// cascadeMsg is sent when a refresh cascade finishes.
type cascadeMsg struct {
	Result refresh.Result
}

// fixedSetsMsg is sent when the fixed-set catalog has loaded.
type fixedSetsMsg struct {
	Sets []api.FixedSet
	Err  error
}

// panelsMsg is sent when the independent panels have loaded.
type panelsMsg struct {
	Lessons        []api.Lesson
	LessonsErr     error
	Assignments    []api.Assignment
	AssignmentsErr error
}

// assignmentsMsg is sent when the assignment list has reloaded.
type assignmentsMsg struct {
	Assignments []api.Assignment
	Err         error
}

// assignmentSubmittedMsg confirms an assignment submission.
type assignmentSubmittedMsg struct {
	ID  int
	Err error
}

// aiReplyMsg carries the AI mentor's answer.
type aiReplyMsg struct {
	Reply string
	Err   error
}

// messageSentMsg confirms a message to the coach.
type messageSentMsg struct {
	Text string
	Err  error
}
