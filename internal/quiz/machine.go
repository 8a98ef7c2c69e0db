// Package quiz owns the live quiz session: mode selection, generation and
// per-question answer submission. Results of network calls are applied
// only if they carry the token of the request that is still current.
package quiz

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/tutordesk/internal/api"
)

// Backend is the part of the learner API the machine drives.
type Backend interface {
	GenerateQuiz(ctx context.Context, req api.GenerateRequest) ([]api.QuizQuestion, error)
	SubmitAnswer(ctx context.Context, req api.SubmitAnswerRequest) (*api.AnswerResult, error)
}

// GenerateRequest is an issued generation, tagged with its token.
type GenerateRequest struct {
	Token     uint64
	SessionID string
	Mode      Mode
	FixedSet  string
	Payload   api.GenerateRequest
}

// GenerateResult is the outcome of a GenerateRequest.
type GenerateResult struct {
	Token     uint64
	SessionID string
	Mode      Mode
	FixedSet  string
	Questions []api.QuizQuestion
	Err       error
}

// SubmitRequest is an issued answer submission.
type SubmitRequest struct {
	Token      uint64
	QuestionID int
	Option     OptionKey
	Payload    api.SubmitAnswerRequest
}

// SubmitResult is the outcome of a SubmitRequest.
type SubmitResult struct {
	Token      uint64
	QuestionID int
	Result     *api.AnswerResult
	Err        error
}

// Machine holds the single live session. It is not safe for concurrent use;
// callers drive it from one goroutine and run I/O with Generate and Submit.
type Machine struct {
	mode       Mode
	fixedSetID string

	token   uint64 // latest issued generation
	status  Status
	err     error
	session *Session // last applied generation; kept on failure

	newID func() string
}

// NewMachine creates an idle machine in Adaptive mode.
func NewMachine() *Machine {
	return &Machine{newID: uuid.NewString}
}

// Mode returns the selected mode.
func (m *Machine) Mode() Mode { return m.mode }

// FixedSetID returns the selected fixed set, or "".
func (m *Machine) FixedSetID() string { return m.fixedSetID }

// Token returns the most recently issued generation token.
func (m *Machine) Token() uint64 { return m.token }

// Err returns the error of the last failed generation.
func (m *Machine) Err() error { return m.err }

// Status returns the generation status.
func (m *Machine) Status() Status { return m.status }

// SetMode switches the mode without touching the session. It reports
// whether the fixed-set catalog should be fetched.
func (m *Machine) SetMode(mode Mode) bool {
	m.mode = mode
	return mode == FixedSet
}

// SelectFixedSet records the chosen set.
func (m *Machine) SelectFixedSet(id string) {
	m.fixedSetID = strings.TrimSpace(id)
}

// RequestGeneration validates the request and, if allowed, issues a new token
// that supersedes any generation still in flight. Adaptive mode ignores any
// selected fixed set.
func (m *Machine) RequestGeneration(mode Mode, fixedSetID string) (GenerateRequest, error) {
	payload := api.GenerateRequest{Mode: mode.Wire()}
	fixedSetID = strings.TrimSpace(fixedSetID)

	if mode == FixedSet {
		if fixedSetID == "" {
			return GenerateRequest{}, &ValidationError{Field: "fixed_set", Prompt: PromptSelectFixedSet}
		}
		id, err := strconv.Atoi(fixedSetID)
		if err != nil {
			return GenerateRequest{}, &ValidationError{Field: "fixed_set", Prompt: PromptSelectFixedSet}
		}
		payload.QuizID = &id
	} else {
		fixedSetID = ""
	}

	m.token++
	m.status = StatusLoading
	m.err = nil
	return GenerateRequest{
		Token:     m.token,
		SessionID: m.newID(),
		Mode:      mode,
		FixedSet:  fixedSetID,
		Payload:   payload,
	}, nil
}

// ApplyGeneration installs res as the live session. Results for a superseded
// token are discarded and false is returned.
func (m *Machine) ApplyGeneration(res GenerateResult) bool {
	if res.Token != m.token {
		return false
	}
	if res.Err != nil {
		m.status = StatusFailed
		m.err = res.Err
		return true
	}

	s := &Session{
		ID:         res.SessionID,
		Token:      res.Token,
		Mode:       res.Mode,
		FixedSetID: res.FixedSet,
		Questions:  make([]Question, 0, len(res.Questions)),
	}
	for _, q := range res.Questions {
		s.Questions = append(s.Questions, questionFromWire(q))
	}
	m.session = s
	if len(s.Questions) == 0 {
		m.status = StatusEmpty
	} else {
		m.status = StatusReady
	}
	return true
}

// BeginSubmit moves an Unanswered question to Submitting and returns the
// request to send. The submission uses the mode the session was generated in.
func (m *Machine) BeginSubmit(questionID int, option OptionKey) (SubmitRequest, error) {
	if m.session == nil {
		return SubmitRequest{}, ErrNoSession
	}
	q := m.session.Question(questionID)
	if q == nil {
		return SubmitRequest{}, ErrUnknownQuestion
	}
	key, ok := ParseOption(string(option))
	if !ok {
		return SubmitRequest{}, &ValidationError{Field: "option", Prompt: PromptInvalidOption}
	}
	if q.State != Unanswered {
		return SubmitRequest{}, ErrNotUnanswered
	}

	q.State = Submitting
	q.Selected = key
	return SubmitRequest{
		Token:      m.session.Token,
		QuestionID: questionID,
		Option:     key,
		Payload: api.SubmitAnswerRequest{
			QuestionID:     questionID,
			SelectedOption: string(key),
			Mode:           m.session.Mode.Wire(),
		},
	}, nil
}

// ApplySubmit records the verdict for a Submitting question. A failed
// submission puts the question back to Unanswered. Results for a replaced
// session are discarded and false is returned.
func (m *Machine) ApplySubmit(res SubmitResult) bool {
	if m.session == nil || res.Token != m.session.Token {
		return false
	}
	q := m.session.Question(res.QuestionID)
	if q == nil || q.State != Submitting {
		return false
	}
	if res.Err != nil || res.Result == nil {
		q.State = Unanswered
		q.Selected = ""
		return true
	}
	q.State = Answered
	q.Feedback = feedbackFromWire(q.ID, res.Result)
	return true
}

// Session returns a copy of the live session with the current status.
// Before the first successful generation it holds no questions.
func (m *Machine) Session() Session {
	if m.session == nil {
		return Session{Status: m.status, Mode: m.mode}
	}
	s := m.session.clone()
	s.Status = m.status
	return s
}

// HasSession reports whether a generation has been applied.
func (m *Machine) HasSession() bool {
	return m.session != nil
}

// Generate performs the request. It never touches machine state.
func Generate(ctx context.Context, b Backend, req GenerateRequest) GenerateResult {
	qs, err := b.GenerateQuiz(ctx, req.Payload)
	return GenerateResult{
		Token:     req.Token,
		SessionID: req.SessionID,
		Mode:      req.Mode,
		FixedSet:  req.FixedSet,
		Questions: qs,
		Err:       err,
	}
}

// Submit performs the request. It never touches machine state.
func Submit(ctx context.Context, b Backend, req SubmitRequest) SubmitResult {
	r, err := b.SubmitAnswer(ctx, req.Payload)
	return SubmitResult{
		Token:      req.Token,
		QuestionID: req.QuestionID,
		Result:     r,
		Err:        err,
	}
}
