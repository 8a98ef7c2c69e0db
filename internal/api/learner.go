package api

import (
	"context"

	"github.com/abhisek/tutordesk/internal/config"
)

// Learner exposes the learner endpoints named by a RoleContext.
type Learner struct {
	client *Client
	rc     config.RoleContext
}

// NewLearner binds client to the learner endpoints of rc.
func NewLearner(client *Client, rc config.RoleContext) *Learner {
	return &Learner{client: client, rc: rc}
}

// GenerateQuiz asks the backend for a question set.
func (l *Learner) GenerateQuiz(ctx context.Context, req GenerateRequest) ([]QuizQuestion, error) {
	var out []QuizQuestion
	if err := l.client.postValidated(ctx, l.rc.Endpoint(config.EndpointQuizGenerate), req, quizQuestionsSchema, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitAnswer posts one answer and returns the verdict.
func (l *Learner) SubmitAnswer(ctx context.Context, req SubmitAnswerRequest) (*AnswerResult, error) {
	var out AnswerResult
	if err := l.client.postValidated(ctx, l.rc.Endpoint(config.EndpointQuizSubmit), req, answerResultSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFixedSets returns the coach-authored sets a learner can pick from.
func (l *Learner) ListFixedSets(ctx context.Context) ([]FixedSet, error) {
	var out []FixedSet
	if err := l.client.getValidated(ctx, l.rc.Endpoint(config.EndpointFixedSets), fixedSetsSchema, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchProgress returns the current progress aggregate.
func (l *Learner) FetchProgress(ctx context.Context) (*Progress, error) {
	var out Progress
	if err := l.client.getValidated(ctx, l.rc.Endpoint(config.EndpointProgress), progressSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchLearningPath returns per-topic recommendations.
func (l *Learner) FetchLearningPath(ctx context.Context) ([]PathItem, error) {
	var out []PathItem
	if err := l.client.getValidated(ctx, l.rc.Endpoint(config.EndpointLearningPath), learningPathSchema, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLessons returns coach-authored lessons.
func (l *Learner) ListLessons(ctx context.Context) ([]Lesson, error) {
	var out []Lesson
	if err := l.client.Get(ctx, l.rc.Endpoint(config.EndpointLessons), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAssignments returns assignments with the learner's own submission.
func (l *Learner) ListAssignments(ctx context.Context) ([]Assignment, error) {
	var out []Assignment
	if err := l.client.Get(ctx, l.rc.Endpoint(config.EndpointAssignments), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitAssignment creates or replaces the learner's answer.
func (l *Learner) SubmitAssignment(ctx context.Context, req AssignmentAnswer) error {
	return l.client.Post(ctx, l.rc.Endpoint(config.EndpointAssignmentSubmit), req, nil)
}

// MessageMentor sends a question to the coach.
func (l *Learner) MessageMentor(ctx context.Context, text string) error {
	body := struct {
		QuestionText string `json:"question_text"`
	}{text}
	return l.client.Post(ctx, l.rc.Endpoint(config.EndpointMentorMessage), body, nil)
}

// AskAIMentor returns the AI mentor's reply, which may be empty.
func (l *Learner) AskAIMentor(ctx context.Context, message string) (string, error) {
	body := struct {
		Message string `json:"message"`
	}{message}
	var out struct {
		Reply string `json:"reply"`
	}
	if err := l.client.Post(ctx, l.rc.Endpoint(config.EndpointAIMentor), body, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}
