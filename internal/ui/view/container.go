// Package view models render targets as containers of cards and controls.
// A container keeps its identity across renders; only its cards are replaced.
package view

import "slices"

// Control is an actionable element inside a card, such as an answer option
// or a "create" button.
type Control struct {
	Name     string
	Label    string
	Classes  []string
	Data     map[string]string
	Disabled bool
}

// HasClass reports whether the control carries class.
func (c Control) HasClass(class string) bool {
	return slices.Contains(c.Classes, class)
}

// Card is one rendered item.
type Card struct {
	Key      string
	Title    string
	Lines    []string
	Controls []Control
}

// Container is a stable, identified render target.
type Container struct {
	ID    string
	Cards []Card
	// Static controls live outside the replaceable cards (e.g. a create button).
	Static []Control
}

// NewContainer creates an empty container with the given id.
func NewContainer(id string, static ...Control) *Container {
	return &Container{ID: id, Static: static}
}

// Clear removes every card. Static controls survive.
func (c *Container) Clear() {
	c.Cards = nil
}

// Append adds a card at the end.
func (c *Container) Append(card Card) {
	c.Cards = append(c.Cards, card)
}

// Len returns the number of cards.
func (c *Container) Len() int {
	return len(c.Cards)
}

// Target addresses a control inside a container. Card is -1 for static controls.
type Target struct {
	Card    int
	Control int
}

// Controls returns every control in focus order: static controls first, then
// card controls in card order.
func (c *Container) Controls() []Target {
	var out []Target
	for i := range c.Static {
		out = append(out, Target{Card: -1, Control: i})
	}
	for ci, card := range c.Cards {
		for i := range card.Controls {
			out = append(out, Target{Card: ci, Control: i})
		}
	}
	return out
}

// Control resolves a target. ok is false when the target no longer exists,
// which happens when cards were replaced after the target was captured.
func (c *Container) Control(t Target) (Control, bool) {
	if t.Card < 0 {
		if t.Control < 0 || t.Control >= len(c.Static) {
			return Control{}, false
		}
		return c.Static[t.Control], true
	}
	if t.Card >= len(c.Cards) {
		return Control{}, false
	}
	controls := c.Cards[t.Card].Controls
	if t.Control < 0 || t.Control >= len(controls) {
		return Control{}, false
	}
	return controls[t.Control], true
}

// SetDisabled toggles Disabled on every card control matching fn.
func (c *Container) SetDisabled(fn func(Control) bool, disabled bool) {
	for ci := range c.Cards {
		for i := range c.Cards[ci].Controls {
			if fn(c.Cards[ci].Controls[i]) {
				c.Cards[ci].Controls[i].Disabled = disabled
			}
		}
	}
}
