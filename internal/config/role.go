package config

import (
	"strconv"
	"strings"
)

// Endpoint names understood by RoleContext.
const (
	EndpointProgress         = "progress"
	EndpointLearningPath     = "learning_path"
	EndpointFixedSets        = "fixed_sets"
	EndpointQuizGenerate     = "quiz_generate"
	EndpointQuizSubmit       = "quiz_submit"
	EndpointLessons          = "lessons"
	EndpointAssignments      = "assignments"
	EndpointAssignmentSubmit = "assignment_submit"
	EndpointMentorMessage    = "mentor_message"
	EndpointAIMentor         = "ai_mentor"

	EndpointStudents         = "students"
	EndpointCoachLessons     = "coach_lessons"
	EndpointCoachAssignments = "coach_assignments"
	EndpointSubmissions      = "submissions"
	EndpointFeedback         = "feedback"
	EndpointMessages         = "messages"
	EndpointCoachQuizzes     = "coach_quizzes"
	EndpointQuizQuestions    = "quiz_questions"
)

// Pattern endpoints end in /0; WithID swaps the placeholder for a real id.
var defaultEndpoints = map[string]string{
	EndpointProgress:         "/api/student/progress",
	EndpointLearningPath:     "/api/student/learning-path",
	EndpointFixedSets:        "/api/student/manual-quizzes",
	EndpointQuizGenerate:     "/api/student/quiz/generate",
	EndpointQuizSubmit:       "/api/student/quiz/submit",
	EndpointLessons:          "/api/student/lessons",
	EndpointAssignments:      "/api/student/assignments",
	EndpointAssignmentSubmit: "/api/student/assignments/submit",
	EndpointMentorMessage:    "/api/student/mentor/message",
	EndpointAIMentor:         "/api/student/ai-mentor",

	EndpointStudents:         "/api/mentor/students",
	EndpointCoachLessons:     "/api/mentor/lessons",
	EndpointCoachAssignments: "/api/mentor/assignments",
	EndpointSubmissions:      "/api/mentor/assignments/0/submissions",
	EndpointFeedback:         "/api/mentor/submissions/feedback",
	EndpointMessages:         "/api/mentor/messages",
	EndpointCoachQuizzes:     "/api/mentor/quizzes",
	EndpointQuizQuestions:    "/api/mentor/quizzes/0/questions",
}

// RoleContext names every endpoint the dashboards may call. It is built once
// at startup and never changes afterwards.
type RoleContext struct {
	role      Role
	userName  string
	baseURL   string
	endpoints map[string]string
}

// NewRoleContext builds a RoleContext with the default endpoint table.
func NewRoleContext(role Role, userName, baseURL string) RoleContext {
	cfg := &Config{Role: role, UserName: userName, BaseURL: baseURL}
	return cfg.RoleContext()
}

func (r RoleContext) Role() Role       { return r.role }
func (r RoleContext) UserName() string { return r.userName }
func (r RoleContext) BaseURL() string  { return r.baseURL }

// Endpoint returns the absolute URL for name, or "" if name is unknown.
func (r RoleContext) Endpoint(name string) string {
	p, ok := r.endpoints[name]
	if !ok {
		return ""
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return r.baseURL + p
}

// WithID resolves a pattern endpoint for a specific record id by replacing
// its last "/0" path segment.
func (r RoleContext) WithID(name string, id int) string {
	u := r.Endpoint(name)
	seg := "/" + strconv.Itoa(id)
	if i := strings.LastIndex(u, "/0/"); i >= 0 {
		return u[:i] + seg + u[i+2:]
	}
	if strings.HasSuffix(u, "/0") {
		return u[:len(u)-2] + seg
	}
	return u
}
