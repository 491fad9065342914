package form

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	q "github.com/abhisek/credform/internal/qualification"
	"github.com/abhisek/credform/internal/ui/components"
	"github.com/abhisek/credform/internal/ui/layout"
	"github.com/abhisek/credform/internal/ui/theme"
)

const labelWidth = 22

func (f *FormScreen) View(width, height int) string {
	cw := min(width-4, 96)
	focused := f.current()

	var problems map[int][]q.FieldFailure
	if f.attempted {
		problems = f.set.Problems()
	}

	var lines []string
	focusLine := 0

	lines = append(lines, components.Completion{
		Complete: f.set.Len() - len(f.set.Problems()),
		Total:    f.set.Len(),
		Width:    cw,
	}.View(), "")

	removable := f.set.Len() > 1
	for i, e := range f.set.Entries() {
		card, row := f.renderEntry(i+1, e, removable, focused, problems[e.ID], cw)
		if row >= 0 {
			// +1 for the card's top border.
			focusLine = len(lines) + 1 + row
		}
		lines = append(lines, strings.Split(card, "\n")...)
	}

	add := components.NewButton("Add More Qualifications")
	add.Focused = focused.kind == kindAdd
	save := components.NewButton("Save & Next")
	save.Focused = focused.kind == kindSave
	save.Disabled = f.submitting
	if add.Focused || save.Focused {
		focusLine = len(lines)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, add.View(), "  ", save.View())
	lines = append(lines, "")
	lines = append(lines, strings.Split(buttons, "\n")...)

	toast := f.toast.View()
	bodyHeight := height
	if toast != "" {
		bodyHeight -= lipgloss.Height(toast) + 1
	}

	body := strings.Join(layout.Window(lines, focusLine, bodyHeight), "\n")
	body = lipgloss.NewStyle().PaddingLeft(2).Render(body)
	if toast != "" {
		body += "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, toast)
	}
	return body
}

// renderEntry renders one card and returns the row within the card content
// of the focused control, or -1.
func (f *FormScreen) renderEntry(n int, e q.Entry, removable bool, focused target, problems []q.FieldFailure, width int) (string, int) {
	failed := make(map[q.Field]error, len(problems))
	for _, p := range problems {
		failed[p.Field] = p.Kind
	}

	var rows []string
	focusRow := -1
	addRow := func(t target, label, value string, err error) {
		isFocused := t == focused
		if isFocused {
			focusRow = len(rows)
		}
		rows = append(rows, fieldRow(label, value, isFocused, err))
	}

	opts := f.set.Options()
	for _, t := range entryTargets(e, removable) {
		switch t.kind {
		case kindSelect:
			sel := components.NewSelect(placeholder, selectOptions(opts, t.field), fieldValue(e, t.field))
			addRow(t, t.field.Label(), sel.View(t == focused), failed[t.field])
			if t.field == q.FieldMarksType && e.MarksType == "" {
				rows = append(rows, theme.Hint.Render("  Choose a marks type to enter your score"))
			}
		case kindText:
			value := fieldValue(e, t.field)
			if t == focused {
				value = f.editor.View()
			} else if value == "" {
				value = theme.Hint.Render("empty")
			}
			addRow(t, t.field.Label(), value, failed[t.field])
			if t.field == q.FieldTotalMarks {
				computed := fieldValue(e, q.FieldComputedPercentage)
				if computed == "" {
					computed = "-"
				}
				rows = append(rows, fieldRow(q.FieldComputedPercentage.Label(), theme.Selected.Render(computed), false, failed[q.FieldComputedPercentage]))
			}
		case kindDocument:
			value := theme.Hint.Render("type a path, then Enter")
			if t == focused {
				value = f.editor.View()
			}
			addRow(t, fmt.Sprintf("Document (PDF, %s)", sizeLabel(opts.MaxDocumentSize)), value, nil)
			if e.Attachment != nil {
				rows = append(rows, strings.Repeat(" ", labelWidth+2)+theme.Valid.Render("Selected: "+e.Attachment.Filename))
			}
		case kindRemove:
			btn := components.NewButton("Remove")
			btn.Focused = t == focused
			if btn.Focused {
				focusRow = len(rows)
			}
			rows = append(rows, btn.View())
		}
	}

	title := theme.Title.Align(lipgloss.Left).Render(fmt.Sprintf("Qualification %d", n))
	content := title + "\n" + strings.Join(rows, "\n")
	if focusRow >= 0 {
		focusRow++ // title line
	}

	style := theme.Card
	if focused.entryID == e.ID {
		style = theme.CardFocused
	}
	return style.Width(width).Render(content), focusRow
}

func fieldRow(label, value string, focused bool, err error) string {
	marker := "  "
	labelStyle := theme.Label
	if focused {
		marker = theme.Selected.Render("▸ ")
		labelStyle = theme.Selected
	}
	if err != nil {
		labelStyle = theme.Invalid
	}
	row := marker + labelStyle.Width(labelWidth).Render(label) + value
	if err != nil {
		row += "  " + theme.Invalid.Render(problemText(err))
	}
	return row
}

func problemText(err error) string {
	switch err {
	case q.ErrRequiredFieldMissing:
		return "Required"
	case q.ErrPercentageOutOfRange:
		return "Must be between 0 and 100"
	case q.ErrMarksOutOfRange:
		return "Check obtained and total marks"
	}
	return err.Error()
}
