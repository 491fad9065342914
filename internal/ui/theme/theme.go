package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: indigo accents on slate
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#818CF8") // Light Indigo
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Entry cards
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	CardFocused = Card.
			BorderForeground(Primary)
)

// Field states
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Valid = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Invalid = lipgloss.NewStyle().
		Foreground(Error)
)

// Buttons, bars and toasts
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ToastSuccess = lipgloss.NewStyle().
			Background(Success).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ToastError = lipgloss.NewStyle().
			Background(Error).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ToastInfo = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(Text).
			Padding(0, 2)
)
