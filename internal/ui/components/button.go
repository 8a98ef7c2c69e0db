package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutordesk/internal/ui/theme"
	"github.com/abhisek/tutordesk/internal/ui/view"
)

// Button renders a view.Control.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
	Marked   bool // e.g. the selected fixed set or the chosen option
}

// ButtonFor builds the button for ctrl.
func ButtonFor(ctrl view.Control, focused bool) Button {
	return Button{
		Label:    ctrl.Label,
		Focused:  focused,
		Disabled: ctrl.Disabled,
		Marked:   ctrl.HasClass("selected"),
	}
}

// View renders the button.
func (b Button) View() string {
	label := "[ " + b.Label + " ]"
	if b.Marked {
		label = "[● " + b.Label + " ]"
	}
	switch {
	case b.Focused && !b.Disabled:
		return theme.ButtonFocused.Render(label)
	case b.Disabled && b.Marked:
		return lipgloss.NewStyle().Foreground(theme.Accent).Padding(0, 1).Render(label)
	case b.Disabled:
		return theme.ButtonDisabled.Render(label)
	default:
		return theme.ButtonIdle.Render(label)
	}
}
