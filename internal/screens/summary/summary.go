package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/credform/internal/qualification"
	"github.com/abhisek/credform/internal/router"
	"github.com/abhisek/credform/internal/screen"
	"github.com/abhisek/credform/internal/submit"
	"github.com/abhisek/credform/internal/ui/layout"
	"github.com/abhisek/credform/internal/ui/theme"
)

// SummaryScreen shows what was submitted.
type SummaryScreen struct {
	env    submit.Envelope
	banner string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for env with banner shown on top.
func New(env submit.Envelope, banner string) *SummaryScreen {
	return &SummaryScreen{env: env, banner: banner}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Submission Summary"
}

func (s *SummaryScreen) Status() string {
	return s.env.ID.String()[:8]
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to form"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	if s.banner != "" {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true), s.banner))
		b.WriteString("\n\n")
	}

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Submission %s  ·  %s", s.env.ID, s.env.SubmittedAt.Format("2006-01-02 15:04 MST"))))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 72), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for i, e := range s.env.Entries {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(EntryLine(i+1, e))))
		b.WriteString("\n")
	}

	return b.String()
}

// EntryLine renders a one-line description of e.
func EntryLine(n int, e qualification.Entry) string {
	parts := []string{fmt.Sprintf("%d. %s", n, e.CredentialType)}
	if e.Branch != "" {
		parts = append(parts, string(e.Branch))
	}
	if e.PassingYear != 0 {
		parts = append(parts, fmt.Sprint(e.PassingYear))
	}
	if e.ResultStatus != "" {
		parts = append(parts, string(e.ResultStatus))
	}
	parts = append(parts, e.BoardUniversity)
	if score := scoreText(e); score != "" {
		parts = append(parts, score)
	}
	if e.Attachment != nil {
		parts = append(parts, e.Attachment.Filename)
	}
	return strings.Join(parts, "  ·  ")
}

func scoreText(e qualification.Entry) string {
	switch sc := e.Score().(type) {
	case qualification.CGPAScore:
		return fmt.Sprintf("CGPA %s%%", sc.Percentage)
	case qualification.GradeScore:
		return fmt.Sprintf("Grade %s (%s%%)", sc.Grade, sc.Percentage)
	case qualification.MarksScore:
		text := fmt.Sprintf("Marks %s/%s", sc.Obtained, sc.Total)
		if p, ok := e.ComputedPercentage(); ok {
			text += fmt.Sprintf(" (%s%%)", qualification.FormatPercentage(p))
		}
		return text
	}
	return ""
}
