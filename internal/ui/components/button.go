package components

import (
	"github.com/abhisek/credform/internal/ui/theme"
)

// Button is a form action. Focused buttons render highlighted; the owning
// screen decides what enter does.
type Button struct {
	Label   string
	Focused bool
	// Disabled buttons render dimmed and ignore presses.
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// Pressable reports whether enter on this button should fire.
func (b Button) Pressable() bool {
	return b.Focused && !b.Disabled
}

// View renders the button.
func (b Button) View() string {
	switch {
	case b.Disabled:
		return theme.ButtonInactive.Foreground(theme.TextDim).Render(b.Label)
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render(b.Label)
	}
}
