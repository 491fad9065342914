package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/credform/internal/ui/theme"
)

// Select is an inline option picker. Index 0 is always the "unselected"
// placeholder and maps to the empty value.
type Select struct {
	Placeholder string
	Options     []string
	Selected    int
}

// NewSelect creates a select positioned on value, or on the placeholder if
// value is not among options.
func NewSelect(placeholder string, options []string, value string) Select {
	s := Select{Placeholder: placeholder, Options: options}
	for i, o := range options {
		if o == value {
			s.Selected = i + 1
			break
		}
	}
	return s
}

// Value returns the selected option, or "" for the placeholder.
func (s Select) Value() string {
	if s.Selected <= 0 || s.Selected > len(s.Options) {
		return ""
	}
	return s.Options[s.Selected-1]
}

// Update cycles the selection with left/right (h/l) and enter/space.
func (s Select) Update(msg tea.Msg) (Select, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, false
	}

	n := len(s.Options) + 1
	switch kmsg.String() {
	case "left", "h":
		s.Selected = (s.Selected - 1 + n) % n
	case "right", "l", "enter", "space", " ":
		s.Selected = (s.Selected + 1) % n
	case "home":
		s.Selected = 0
	default:
		return s, false
	}
	return s, true
}

// View renders the current choice between arrows when focused.
func (s Select) View(focused bool) string {
	label := s.Value()
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if label == "" {
		label = s.Placeholder
		style = style.Foreground(theme.TextDim)
	}
	if !focused {
		return style.Render(label)
	}
	arrow := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	return arrow.Render("◂ ") + style.Bold(true).Render(label) + arrow.Render(" ▸") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Repeat(" ", 2)+position(s))
}

func position(s Select) string {
	if s.Selected == 0 {
		return ""
	}
	return fmt.Sprintf("(%d/%d)", s.Selected, len(s.Options))
}
