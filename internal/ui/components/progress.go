package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutordesk/internal/ui/theme"
)

// AccuracyBar renders a fixed-width bar for a 0-100 accuracy value.
type AccuracyBar struct {
	Label    string
	Accuracy float64
	Width    int
}

// NewAccuracyBar creates a bar of the given total width.
func NewAccuracyBar(label string, accuracy float64, width int) AccuracyBar {
	return AccuracyBar{Label: label, Accuracy: accuracy, Width: width}
}

// View renders the bar followed by the percentage.
func (p AccuracyBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	barWidth := p.Width - lipgloss.Width(result) - 6
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Accuracy / 100)
	filled = max(0, min(filled, barWidth))

	fill := theme.ProgressFilled
	if p.Accuracy <= 50 {
		fill = fill.Background(theme.Error)
	}
	result += fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	return result + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %3.0f%%", p.Accuracy))
}
