package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutordesk/internal/ui/theme"
)

// Field is one labelled input of a Form.
type Field struct {
	Key   string
	Label string
	Input TextInput
}

// FormAction is what a key press did to the form.
type FormAction int

const (
	FormNone FormAction = iota
	FormSubmitted
	FormCancelled
)

// Form is a modal stack of text inputs. Enter on the last field submits,
// esc cancels. The owner validates the values and can set Prompt to keep
// the form open with a message.
type Form struct {
	Title  string
	Fields []Field
	Prompt string
	focus  int
}

// NewForm creates a form with the first field focused.
func NewForm(title string, fields ...Field) *Form {
	f := &Form{Title: title, Fields: fields}
	if len(f.Fields) > 0 {
		f.Fields[0].Input.Focus()
	}
	return f
}

// TextField builds a plain text field with an optional initial value.
func TextField(key, label, value string) Field {
	in := NewTextInput(label, false, 0)
	in.SetValue(value)
	return Field{Key: key, Label: label, Input: in}
}

// NumberField builds a digits-only field.
func NumberField(key, label, value string) Field {
	in := NewTextInput(label, true, 3)
	in.SetValue(value)
	return Field{Key: key, Label: label, Input: in}
}

// Values returns the trimmed field values by key.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.Fields))
	for _, fl := range f.Fields {
		out[fl.Key] = fl.Input.Value()
	}
	return out
}

func (f *Form) move(delta int) tea.Cmd {
	next := f.focus + delta
	if next < 0 || next >= len(f.Fields) {
		return nil
	}
	f.Fields[f.focus].Input.Blur()
	f.focus = next
	return f.Fields[f.focus].Input.Focus()
}

// Update routes a message to the focused field.
func (f *Form) Update(msg tea.Msg) (FormAction, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return FormCancelled, nil
		case "tab", "down":
			return FormNone, f.move(1)
		case "shift+tab", "up":
			return FormNone, f.move(-1)
		case "enter":
			if f.focus < len(f.Fields)-1 {
				return FormNone, f.move(1)
			}
			return FormSubmitted, nil
		}
	}
	if len(f.Fields) == 0 {
		return FormNone, nil
	}
	var cmd tea.Cmd
	f.Fields[f.focus].Input, cmd = f.Fields[f.focus].Input.Update(msg)
	return FormNone, cmd
}

// View renders the form as a card.
func (f *Form) View(width int) string {
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render(f.Title))
	b.WriteString("\n")
	for i, fl := range f.Fields {
		label := theme.Subtitle.Render(fl.Label)
		if i == f.focus {
			label = theme.Title.Render(fl.Label)
		}
		b.WriteString("\n" + label + "\n" + fl.Input.View() + "\n")
	}
	if f.Prompt != "" {
		b.WriteString("\n" + theme.Notice.Render(f.Prompt) + "\n")
	}
	b.WriteString("\n" + theme.Hint.Render("enter next/submit · tab move · esc cancel"))

	style := theme.CardFocused
	if width > 8 {
		style = style.Width(min(width-4, 72))
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(style.Render(b.String()))
}
