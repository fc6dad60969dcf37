package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/focusflow/focusflow/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and focusflow styling.
type TextInput struct {
	Model textinput.Model
	Label string
}

// NewTextInput creates a new styled, unfocused text input. A charLimit of
// zero means unlimited.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// Update forwards messages to the underlying input.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// View renders the label above the input. The focused input's label is
// highlighted.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Focused() {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return label.Render(t.Label) + "\n" + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}
