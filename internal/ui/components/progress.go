package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/credform/internal/ui/theme"
)

// Completion shows how many entries currently pass validation.
type Completion struct {
	Complete int
	Total    int
	Width    int
}

// Ratio returns Complete/Total clamped to [0, 1].
func (c Completion) Ratio() float64 {
	if c.Total <= 0 {
		return 0
	}
	return min(max(float64(c.Complete)/float64(c.Total), 0), 1)
}

// View renders "<bar>  N/M complete".
func (c Completion) View() string {
	suffix := fmt.Sprintf("  %d/%d complete", c.Complete, c.Total)
	barWidth := max(c.Width-lipgloss.Width(suffix), 4)

	filled := int(float64(barWidth) * c.Ratio())
	empty := barWidth - filled

	bar := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	style := theme.Label
	if c.Total > 0 && c.Complete == c.Total {
		style = theme.Valid
	}
	return bar + style.Render(suffix)
}
