package api

import (
	"context"

	"github.com/abhisek/tutordesk/internal/config"
)

// Coach exposes the coach endpoints named by a RoleContext.
type Coach struct {
	client *Client
	rc     config.RoleContext
}

// NewCoach binds client to the coach endpoints of rc.
func NewCoach(client *Client, rc config.RoleContext) *Coach {
	return &Coach{client: client, rc: rc}
}

func (c *Coach) ListStudents(ctx context.Context) ([]StudentPerformance, error) {
	var out []StudentPerformance
	err := c.client.Get(ctx, c.rc.Endpoint(config.EndpointStudents), &out)
	return out, err
}

func (c *Coach) ListLessons(ctx context.Context) ([]Lesson, error) {
	var out []Lesson
	err := c.client.Get(ctx, c.rc.Endpoint(config.EndpointCoachLessons), &out)
	return out, err
}

func (c *Coach) CreateLesson(ctx context.Context, l NewLesson) error {
	return c.client.Post(ctx, c.rc.Endpoint(config.EndpointCoachLessons), l, nil)
}

func (c *Coach) ListAssignments(ctx context.Context) ([]Assignment, error) {
	var out []Assignment
	err := c.client.Get(ctx, c.rc.Endpoint(config.EndpointCoachAssignments), &out)
	return out, err
}

func (c *Coach) CreateAssignment(ctx context.Context, a NewAssignment) error {
	return c.client.Post(ctx, c.rc.Endpoint(config.EndpointCoachAssignments), a, nil)
}

// ListSubmissions returns every learner submission for one assignment.
func (c *Coach) ListSubmissions(ctx context.Context, assignmentID int) ([]StudentSubmission, error) {
	var out []StudentSubmission
	err := c.client.Get(ctx, c.rc.WithID(config.EndpointSubmissions, assignmentID), &out)
	return out, err
}

func (c *Coach) SaveFeedback(ctx context.Context, req FeedbackRequest) error {
	return c.client.Post(ctx, c.rc.Endpoint(config.EndpointFeedback), req, nil)
}

func (c *Coach) ListMessages(ctx context.Context) ([]Message, error) {
	var out []Message
	err := c.client.Get(ctx, c.rc.Endpoint(config.EndpointMessages), &out)
	return out, err
}

func (c *Coach) AnswerMessage(ctx context.Context, req MessageAnswer) error {
	return c.client.Post(ctx, c.rc.Endpoint(config.EndpointMessages), req, nil)
}

// ListQuizzes returns the coach's fixed sets, including empty ones.
func (c *Coach) ListQuizzes(ctx context.Context) ([]CoachQuiz, error) {
	var out []CoachQuiz
	err := c.client.Get(ctx, c.rc.Endpoint(config.EndpointCoachQuizzes), &out)
	return out, err
}

func (c *Coach) CreateQuiz(ctx context.Context, q NewQuiz) error {
	return c.client.Post(ctx, c.rc.Endpoint(config.EndpointCoachQuizzes), q, nil)
}

func (c *Coach) ListQuizQuestions(ctx context.Context, quizID int) ([]AuthoredQuestion, error) {
	var out []AuthoredQuestion
	err := c.client.Get(ctx, c.rc.WithID(config.EndpointQuizQuestions, quizID), &out)
	return out, err
}

func (c *Coach) AddQuizQuestion(ctx context.Context, quizID int, q AuthoredQuestion) error {
	return c.client.Post(ctx, c.rc.WithID(config.EndpointQuizQuestions, quizID), q, nil)
}
