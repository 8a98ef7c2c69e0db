package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/tutordesk/internal/api"
)

type mockBackend struct {
	generated []api.GenerateRequest
	submitted []api.SubmitAnswerRequest
	questions []api.QuizQuestion
	result    *api.AnswerResult
	err       error
}

func (b *mockBackend) GenerateQuiz(_ context.Context, req api.GenerateRequest) ([]api.QuizQuestion, error) {
	b.generated = append(b.generated, req)
	if b.err != nil {
		return nil, b.err
	}
	return b.questions, nil
}

func (b *mockBackend) SubmitAnswer(_ context.Context, req api.SubmitAnswerRequest) (*api.AnswerResult, error) {
	b.submitted = append(b.submitted, req)
	if b.err != nil {
		return nil, b.err
	}
	return b.result, nil
}

func arithmetic() []api.QuizQuestion {
	return []api.QuizQuestion{{ID: 1, Question: "2+2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6"}}
}

func readyMachine(t *testing.T, b *mockBackend) *Machine {
	t.Helper()
	m := NewMachine()
	req, err := m.RequestGeneration(Adaptive, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.ApplyGeneration(Generate(context.Background(), b, req)) {
		t.Fatal("expected generation to apply")
	}
	return m
}

func TestStaleGenerationDiscarded(t *testing.T) {
	m := NewMachine()
	reqA, _ := m.RequestGeneration(Adaptive, "")
	reqB, _ := m.RequestGeneration(Adaptive, "")

	resB := GenerateResult{Token: reqB.Token, SessionID: reqB.SessionID, Questions: []api.QuizQuestion{{ID: 20, Question: "B"}}}
	resA := GenerateResult{Token: reqA.Token, SessionID: reqA.SessionID, Questions: []api.QuizQuestion{{ID: 10, Question: "A"}}}

	if !m.ApplyGeneration(resB) {
		t.Fatal("expected B to apply")
	}
	if m.ApplyGeneration(resA) {
		t.Error("expected stale A to be discarded")
	}

	s := m.Session()
	if len(s.Questions) != 1 || s.Questions[0].ID != 20 {
		t.Errorf("expected B's question set, got %+v", s.Questions)
	}
	if s.ID != reqB.SessionID {
		t.Errorf("expected session %s, got %s", reqB.SessionID, s.ID)
	}
}

func TestStaleGenerationBeforeNewerArrives(t *testing.T) {
	m := NewMachine()
	reqA, _ := m.RequestGeneration(Adaptive, "")
	_, _ = m.RequestGeneration(Adaptive, "")

	if m.ApplyGeneration(GenerateResult{Token: reqA.Token, Questions: arithmetic()}) {
		t.Error("expected superseded result to be discarded")
	}
	if m.Status() != StatusLoading {
		t.Errorf("expected still loading, got %s", m.Status())
	}
	if m.HasSession() {
		t.Error("expected no session from a stale result")
	}
}

func TestGenerationEmptyAndFailed(t *testing.T) {
	b := &mockBackend{}
	m := readyMachine(t, b)
	if m.Status() != StatusEmpty {
		t.Errorf("expected empty, got %s", m.Status())
	}

	b.questions = arithmetic()
	req, _ := m.RequestGeneration(Adaptive, "")
	m.ApplyGeneration(Generate(context.Background(), b, req))
	if m.Status() != StatusReady {
		t.Fatalf("expected ready, got %s", m.Status())
	}

	b.err = errors.New("down")
	req, _ = m.RequestGeneration(Adaptive, "")
	m.ApplyGeneration(Generate(context.Background(), b, req))
	if m.Status() != StatusFailed {
		t.Errorf("expected failed, got %s", m.Status())
	}
	if len(m.Session().Questions) != 1 {
		t.Error("expected last question set to survive a failed generation")
	}
}

func TestFixedSetRequiresSelection(t *testing.T) {
	b := &mockBackend{questions: arithmetic()}
	m := NewMachine()
	m.SetMode(FixedSet)

	for _, id := range []string{"", "  ", "abc"} {
		_, err := m.RequestGeneration(FixedSet, id)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("id %q: expected ValidationError, got %v", id, err)
		}
		if ve.Prompt != PromptSelectFixedSet {
			t.Errorf("id %q: expected prompt %q, got %q", id, PromptSelectFixedSet, ve.Prompt)
		}
	}
	if m.Token() != 0 {
		t.Errorf("expected no token issued, got %d", m.Token())
	}
	if len(b.generated) != 0 {
		t.Errorf("expected zero requests, got %d", len(b.generated))
	}
}

func TestFixedSetPayload(t *testing.T) {
	m := NewMachine()
	req, err := m.RequestGeneration(FixedSet, "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Payload.Mode != "manual" {
		t.Errorf("expected manual, got %s", req.Payload.Mode)
	}
	if req.Payload.QuizID == nil || *req.Payload.QuizID != 7 {
		t.Errorf("expected quiz id 7, got %v", req.Payload.QuizID)
	}
}

func TestAdaptiveIgnoresSelectedFixedSet(t *testing.T) {
	b := &mockBackend{questions: arithmetic()}
	m := NewMachine()
	m.SelectFixedSet("3")

	req, err := m.RequestGeneration(Adaptive, m.FixedSetID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Generate(context.Background(), b, req)

	if len(b.generated) != 1 {
		t.Fatalf("expected one request, got %d", len(b.generated))
	}
	if b.generated[0].Mode != "smart" || b.generated[0].QuizID != nil {
		t.Errorf("expected smart request without quiz id, got %+v", b.generated[0])
	}
}

func TestSetModeReportsCatalogFetch(t *testing.T) {
	m := NewMachine()
	if !m.SetMode(FixedSet) {
		t.Error("expected catalog fetch on FixedSet")
	}
	if m.SetMode(Adaptive) {
		t.Error("expected no catalog fetch on Adaptive")
	}
	if m.Mode() != Adaptive {
		t.Errorf("expected Adaptive, got %s", m.Mode())
	}
}

func TestSubmitTransitions(t *testing.T) {
	b := &mockBackend{
		questions: arithmetic(),
		result:    &api.AnswerResult{IsCorrect: true, CorrectOption: "b", Explanation: "Basic arithmetic."},
	}
	m := readyMachine(t, b)

	req, err := m.BeginSubmit(1, OptionB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Session().Questions[0].State; got != Submitting {
		t.Errorf("expected Submitting, got %d", got)
	}
	if req.Payload.Mode != "smart" || req.Payload.SelectedOption != "b" {
		t.Errorf("unexpected payload %+v", req.Payload)
	}

	if !m.ApplySubmit(Submit(context.Background(), b, req)) {
		t.Fatal("expected submit to apply")
	}
	q := m.Session().Questions[0]
	if q.State != Answered {
		t.Fatalf("expected Answered, got %d", q.State)
	}
	if q.Feedback == nil || !q.Feedback.IsCorrect || q.Feedback.Explanation != "Basic arithmetic." {
		t.Errorf("unexpected feedback %+v", q.Feedback)
	}
}

func TestSubmitTwiceIsRejected(t *testing.T) {
	b := &mockBackend{questions: arithmetic(), result: &api.AnswerResult{CorrectOption: "b"}}
	m := readyMachine(t, b)

	req, _ := m.BeginSubmit(1, OptionA)
	if _, err := m.BeginSubmit(1, OptionB); !errors.Is(err, ErrNotUnanswered) {
		t.Errorf("expected ErrNotUnanswered while submitting, got %v", err)
	}
	m.ApplySubmit(Submit(context.Background(), b, req))

	if _, err := m.BeginSubmit(1, OptionB); !errors.Is(err, ErrNotUnanswered) {
		t.Errorf("expected ErrNotUnanswered once answered, got %v", err)
	}
	if len(b.submitted) != 1 {
		t.Errorf("expected one submit request, got %d", len(b.submitted))
	}
	if m.ApplySubmit(SubmitResult{Token: req.Token, QuestionID: 1, Result: &api.AnswerResult{IsCorrect: true}}) {
		t.Error("expected duplicate result to be ignored")
	}
	if m.Session().Questions[0].Feedback.IsCorrect {
		t.Error("expected answered feedback to be immutable")
	}
}

func TestSubmitFailureReturnsToUnanswered(t *testing.T) {
	b := &mockBackend{questions: arithmetic()}
	m := readyMachine(t, b)

	req, _ := m.BeginSubmit(1, OptionC)
	b.err = errors.New("down")
	if !m.ApplySubmit(Submit(context.Background(), b, req)) {
		t.Fatal("expected failure to apply")
	}
	q := m.Session().Questions[0]
	if q.State != Unanswered || q.Selected != "" {
		t.Errorf("expected Unanswered with no selection, got %d %q", q.State, q.Selected)
	}
	if _, err := m.BeginSubmit(1, OptionB); err != nil {
		t.Errorf("expected retry to be allowed, got %v", err)
	}
}

func TestSubmitResultForReplacedSessionDiscarded(t *testing.T) {
	b := &mockBackend{questions: arithmetic()}
	m := readyMachine(t, b)

	req, _ := m.BeginSubmit(1, OptionB)
	gen, _ := m.RequestGeneration(Adaptive, "")
	m.ApplyGeneration(Generate(context.Background(), b, gen))

	if m.ApplySubmit(SubmitResult{Token: req.Token, QuestionID: 1, Result: &api.AnswerResult{IsCorrect: true}}) {
		t.Error("expected result for replaced session to be discarded")
	}
	if got := m.Session().Questions[0].State; got != Unanswered {
		t.Errorf("expected fresh question Unanswered, got %d", got)
	}
}

func TestSubmitUsesSessionMode(t *testing.T) {
	b := &mockBackend{questions: arithmetic()}
	m := NewMachine()
	req, _ := m.RequestGeneration(FixedSet, "2")
	m.ApplyGeneration(Generate(context.Background(), b, req))
	m.SetMode(Adaptive)

	sub, err := m.BeginSubmit(1, OptionA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Payload.Mode != "manual" {
		t.Errorf("expected manual, got %s", sub.Payload.Mode)
	}
}

func TestBeginSubmitErrors(t *testing.T) {
	m := NewMachine()
	if _, err := m.BeginSubmit(1, OptionA); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}

	m = readyMachine(t, &mockBackend{questions: arithmetic()})
	if _, err := m.BeginSubmit(99, OptionA); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("expected ErrUnknownQuestion, got %v", err)
	}
	var ve *ValidationError
	if _, err := m.BeginSubmit(1, "e"); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestSessionIsACopy(t *testing.T) {
	m := readyMachine(t, &mockBackend{questions: arithmetic()})
	s := m.Session()
	s.Questions[0].Options[OptionA] = "changed"
	s.Questions[0].State = Answered

	q := m.Session().Questions[0]
	if q.Options[OptionA] != "3" || q.State != Unanswered {
		t.Error("expected machine state to be unaffected by copy mutation")
	}
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		in   string
		want OptionKey
		ok   bool
	}{
		{"a", OptionA, true},
		{" B ", OptionB, true},
		{"d", OptionD, true},
		{"e", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseOption(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseOption(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
