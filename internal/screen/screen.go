// Package screen defines what the router needs from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/credform/internal/ui/layout"
)

// Screen is one page of the app. View draws only the area between the
// header and the footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider is implemented by screens that list their own keys in the
// footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a short status at the
// right of the header.
type StatusProvider interface {
	Status() string
}
