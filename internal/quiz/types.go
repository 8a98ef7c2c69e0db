package quiz

import (
	"strings"

	"github.com/abhisek/tutordesk/internal/api"
)

// Mode selects how questions are chosen.
type Mode int

const (
	Adaptive Mode = iota // server picks questions from mastery signals
	FixedSet             // questions come from a coach-authored set
)

// Wire returns the mode value the backend expects.
func (m Mode) Wire() string {
	if m == FixedSet {
		return api.ModeManual
	}
	return api.ModeSmart
}

func (m Mode) String() string {
	if m == FixedSet {
		return "Fixed set"
	}
	return "Adaptive"
}

// Status is the lifecycle of the live session.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// AnswerState tracks one question. It only moves forward, except that a
// failed submission returns Submitting to Unanswered.
type AnswerState int

const (
	Unanswered AnswerState = iota
	Submitting
	Answered
)

// OptionKey identifies an answer option.
type OptionKey string

const (
	OptionA OptionKey = "a"
	OptionB OptionKey = "b"
	OptionC OptionKey = "c"
	OptionD OptionKey = "d"
)

// OptionKeys lists the option keys in display order.
var OptionKeys = []OptionKey{OptionA, OptionB, OptionC, OptionD}

// ParseOption normalizes s to an option key.
func ParseOption(s string) (OptionKey, bool) {
	k := OptionKey(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case OptionA, OptionB, OptionC, OptionD:
		return k, true
	}
	return "", false
}

// Upper returns the key as shown to users ("B").
func (k OptionKey) Upper() string {
	return strings.ToUpper(string(k))
}

// Feedback is the verdict attached to an answered question.
type Feedback struct {
	QuestionID     int
	IsCorrect      bool
	CorrectOption  OptionKey
	Explanation    string
	Recommendation string
}

// Question is one question of the live session.
type Question struct {
	ID       int
	Prompt   string
	Options  map[OptionKey]string
	State    AnswerState
	Selected OptionKey
	Feedback *Feedback
}

// Session is a question set produced by one generation.
type Session struct {
	ID         string
	Token      uint64
	Mode       Mode
	FixedSetID string
	Questions  []Question
	Status     Status
}

// Question returns the question with id, or nil.
func (s *Session) Question(id int) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

func (s Session) clone() Session {
	out := s
	out.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		cq := q
		cq.Options = make(map[OptionKey]string, len(q.Options))
		for k, v := range q.Options {
			cq.Options[k] = v
		}
		if q.Feedback != nil {
			fb := *q.Feedback
			cq.Feedback = &fb
		}
		out.Questions[i] = cq
	}
	return out
}

func questionFromWire(q api.QuizQuestion) Question {
	return Question{
		ID:     q.ID,
		Prompt: q.Question,
		Options: map[OptionKey]string{
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
		},
		State: Unanswered,
	}
}

func feedbackFromWire(qid int, r *api.AnswerResult) *Feedback {
	correct, _ := ParseOption(r.CorrectOption)
	return &Feedback{
		QuestionID:     qid,
		IsCorrect:      r.IsCorrect,
		CorrectOption:  correct,
		Explanation:    r.Explanation,
		Recommendation: r.Recommendation,
	}
}
