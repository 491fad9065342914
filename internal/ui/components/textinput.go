package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a single-line editor for one form field. Numeric inputs
// accept only a decimal number.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
}

func NewTextInput(placeholder string, numericOnly bool, charLimit int) TextInput {
	m := textinput.New()
	m.Prompt = ""
	m.Placeholder = placeholder
	if charLimit > 0 {
		m.CharLimit = charLimit
	}
	m.Focus()
	return TextInput{Model: m, NumericOnly: numericOnly}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && t.NumericOnly && !t.acceptsNumeric(key.String()) {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// acceptsNumeric reports whether key may be applied to a numeric input.
// Named editing keys such as backspace pass; space does not.
func (t TextInput) acceptsNumeric(key string) bool {
	if key == "space" {
		return false
	}
	if len(key) != 1 {
		return true
	}
	switch c := key[0]; {
	case c >= '0' && c <= '9':
		return true
	case c == '.':
		return !strings.Contains(t.Value(), ".")
	case c == '-':
		return t.Value() == ""
	}
	return false
}

func (t TextInput) View() string { return t.Model.View() }

func (t TextInput) Value() string { return t.Model.Value() }

// Reset replaces the text and puts the cursor after it.
func (t *TextInput) Reset(value string) {
	t.Model.SetValue(value)
	t.Model.CursorEnd()
}
