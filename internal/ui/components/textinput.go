package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput for short single-line answers.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused input limited to limit characters.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Update forwards msg to the wrapped model.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the trimmed input.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetValue replaces the input text.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}
