package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutordesk/internal/ui/theme"
)

// Tabs is a horizontal tab strip. Tabs are selected with their number key
// or cycled with tab / shift+tab.
type Tabs struct {
	Labels []string
	Active int
}

// NewTabs creates a tab strip with the first tab active.
func NewTabs(labels ...string) Tabs {
	return Tabs{Labels: labels}
}

// HandleKey switches tabs for a matching key and reports whether it did.
func (t *Tabs) HandleKey(key string) bool {
	switch key {
	case "tab":
		t.Active = (t.Active + 1) % len(t.Labels)
		return true
	case "shift+tab":
		t.Active = (t.Active - 1 + len(t.Labels)) % len(t.Labels)
		return true
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if i < len(t.Labels) {
			t.Active = i
			return true
		}
	}
	return false
}

// View renders the strip.
func (t Tabs) View(width int) string {
	parts := make([]string, 0, len(t.Labels))
	for i, l := range t.Labels {
		label := fmt.Sprintf("%d %s", i+1, l)
		if i == t.Active {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	strip := "  " + strings.Join(parts, " ")
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
	return strip + "\n  " + rule
}
