package quiz

import "errors"

var (
	ErrNoSession       = errors.New("no quiz session")
	ErrUnknownQuestion = errors.New("question not in session")
	ErrNotUnanswered   = errors.New("question already submitted")
)

// ValidationError is a failed client-side precondition. Prompt is shown to
// the user as is and no request is made.
type ValidationError struct {
	Field  string
	Prompt string
}

func (e *ValidationError) Error() string {
	return e.Prompt
}

// Prompts shown for rejected actions.
const (
	PromptSelectFixedSet = "Select a fixed set first."
	PromptInvalidOption  = "Choose one of the options a-d."
)
