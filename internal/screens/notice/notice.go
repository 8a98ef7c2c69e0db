// Package notice shows a message with a small menu, used when the
// configured role does not name a dashboard.
package notice

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutordesk/internal/router"
	"github.com/abhisek/tutordesk/internal/screen"
	"github.com/abhisek/tutordesk/internal/ui/components"
	"github.com/abhisek/tutordesk/internal/ui/theme"
)

// Choice is a menu entry that opens a screen on top of the notice.
type Choice struct {
	Label string
	Open  func() screen.Screen
}

// Screen is a centered message plus a menu of choices and Quit.
type Screen struct {
	title   string
	message string
	menu    components.Menu
}

var _ screen.Screen = (*Screen)(nil)

// New creates a notice. Choosing an entry pushes the screen it opens, so esc
// comes back here; the last entry quits.
func New(title, message string, choices ...Choice) *Screen {
	items := make([]components.MenuItem, 0, len(choices)+1)
	for _, c := range choices {
		open := c.Open
		items = append(items, components.MenuItem{Label: c.Label, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: open()}
			}
		}})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
		return tea.Quit
	}})
	return &Screen{title: title, message: message, menu: components.NewMenu(items...)}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	body := theme.Notice.Render(s.message) + "\n\n" + strings.TrimRight(s.menu.View(), "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(body)
}

func (s *Screen) Title() string {
	return s.title
}
