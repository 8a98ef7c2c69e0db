package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutordesk/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns the command that loads the screen's first data.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that sometimes own the keyboard,
// such as while a form is open. The root model then forwards esc to the
// screen instead of navigating back.
type InputCapturer interface {
	CapturingInput() bool
}
