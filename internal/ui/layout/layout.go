package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/credform/internal/ui/theme"
)

// Smallest terminal the form can be drawn in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// bar is the bordered style shared by header and footer. Its width
// includes the border, leaving width-2 columns of content.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small (%dx%d).\nThe form needs at least %dx%d.",
		width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(text))
}

// RenderHeader renders the app name on the left, title in the middle and
// status on the right. status may be empty.
func RenderHeader(title, status string, width int) string {
	inner := max(width-2, 0)

	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" credform")
	right := lipgloss.NewStyle().Foreground(theme.Secondary).Render(status)
	center := lipgloss.PlaceHorizontal(
		max(inner-lipgloss.Width(name)-lipgloss.Width(right), 0),
		lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title),
	)

	return bar(width).Render(name + center + right)
}

// RenderFooter renders key hints separated by dots. Hints that do not fit
// are dropped from the end.
func RenderFooter(hints []KeyHint, width int) string {
	sep := lipgloss.NewStyle().Foreground(theme.Border).Render("  ·  ")
	inner := max(width-2, 0)

	var b strings.Builder
	b.WriteString(" ")
	for i, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		if i > 0 {
			part = sep + part
		}
		if lipgloss.Width(b.String())+lipgloss.Width(part) > inner {
			break
		}
		b.WriteString(part)
	}

	return bar(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, padding the content so the
// footer sits on the last lines.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	middle := lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, middle, footer)
}

// Window returns at most height lines of lines, scrolled so that line focus
// is visible and roughly a third of the way down.
func Window(lines []string, focus, height int) []string {
	if height <= 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}
	start := max(focus-height/3, 0)
	start = min(start, len(lines)-height)
	return lines[start : start+height]
}
