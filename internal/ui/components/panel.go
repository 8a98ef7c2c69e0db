package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutordesk/internal/ui/theme"
	"github.com/abhisek/tutordesk/internal/ui/view"
)

// Click is a click on a control of one of the panel's containers.
type Click struct {
	Container *view.Container
	Event     view.Event
}

type focusable struct {
	container int
	target    view.Target
}

// Panel lays out one or more containers and moves a focus cursor across
// their controls. Enter on the focused control produces a Click.
type Panel struct {
	Containers []*view.Container
	cursor     int
}

// NewPanel creates a panel over containers, in display order.
func NewPanel(containers ...*view.Container) Panel {
	return Panel{Containers: containers}
}

func (p Panel) focusables() []focusable {
	var out []focusable
	for ci, c := range p.Containers {
		if c == nil {
			continue
		}
		for _, t := range c.Controls() {
			out = append(out, focusable{container: ci, target: t})
		}
	}
	return out
}

// Focused returns the focused control, if any.
func (p Panel) Focused() (*view.Container, view.Target, bool) {
	fs := p.focusables()
	if len(fs) == 0 {
		return nil, view.Target{}, false
	}
	f := fs[min(p.cursor, len(fs)-1)]
	return p.Containers[f.container], f.target, true
}

// Update moves focus on arrow keys and reports a Click on enter.
func (p Panel) Update(msg tea.Msg) (Panel, *Click) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	n := len(p.focusables())
	if n == 0 {
		return p, nil
	}
	if p.cursor >= n {
		p.cursor = n - 1
	}

	switch kmsg.String() {
	case "up", "k", "left", "h":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j", "right", "l":
		if p.cursor < n-1 {
			p.cursor++
		}
	case "home", "g":
		p.cursor = 0
	case "end", "G":
		p.cursor = n - 1
	case "enter", "space":
		c, t, _ := p.Focused()
		return p, &Click{Container: c, Event: view.Event{Kind: view.Click, Target: t}}
	}
	return p, nil
}

// View renders every container as a titled list of cards and scrolls so the
// focused card stays visible within height lines.
func (p Panel) View(width, height int, titles map[string]string) string {
	fc, ft, hasFocus := p.Focused()

	var lines []string
	focusLine := 0
	for _, c := range p.Containers {
		if c == nil {
			continue
		}
		if title := titles[c.ID]; title != "" {
			lines = append(lines, "  "+theme.Title.Render(title))
		}
		if len(c.Static) > 0 {
			var btns []string
			for i, ctrl := range c.Static {
				focused := hasFocus && fc == c && ft.Card == -1 && ft.Control == i
				if focused {
					focusLine = len(lines)
				}
				btns = append(btns, ButtonFor(ctrl, focused).View())
			}
			lines = append(lines, "  "+strings.Join(btns, " "))
		}
		for ci, card := range c.Cards {
			focusedCard := hasFocus && fc == c && ft.Card == ci
			if focusedCard {
				focusLine = len(lines)
			}
			rendered := renderCard(card, width-4, focusedCard, ft.Control)
			for _, l := range strings.Split(rendered, "\n") {
				lines = append(lines, "  "+l)
			}
		}
		lines = append(lines, "")
	}

	return scroll(lines, focusLine, height)
}

func renderCard(card view.Card, width int, focused bool, focusedControl int) string {
	var b strings.Builder
	if card.Title != "" {
		b.WriteString(theme.CardTitle.Render(card.Title))
	}
	for _, l := range card.Lines {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(l)
	}
	if len(card.Controls) > 0 {
		var btns []string
		for i, ctrl := range card.Controls {
			btns = append(btns, ButtonFor(ctrl, focused && i == focusedControl).View())
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, btns...))
	}

	style := theme.Card
	if focused {
		style = theme.CardFocused
	}
	if width > 4 {
		style = style.Width(width)
	}
	return style.Render(b.String())
}

func scroll(lines []string, focus, height int) string {
	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	start := focus - height/3
	if start < 0 {
		start = 0
	}
	if start > len(lines)-height {
		start = len(lines) - height
	}
	return strings.Join(lines[start:start+height], "\n")
}
