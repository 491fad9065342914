package form

import (
	"strconv"

	q "github.com/abhisek/credform/internal/qualification"
)

type targetKind int

const (
	kindSelect targetKind = iota
	kindText
	kindDocument
	kindRemove
	kindAdd
	kindSave
)

// target is one focusable control. Entry-level targets carry the entry id;
// form-level buttons use id 0.
type target struct {
	kind    targetKind
	entryID int
	field   q.Field
}

func (t target) isEditor() bool {
	return t.kind == kindText || t.kind == kindDocument
}

// entryTargets lists the controls of one entry in display order. The score
// controls depend on the entry's marks type.
func entryTargets(e q.Entry, removable bool) []target {
	sel := func(f q.Field) target { return target{kind: kindSelect, entryID: e.ID, field: f} }
	txt := func(f q.Field) target { return target{kind: kindText, entryID: e.ID, field: f} }

	ts := []target{
		sel(q.FieldCredentialType),
		sel(q.FieldMarksType),
	}
	switch e.MarksType {
	case q.MarksTypeCGPA:
		ts = append(ts, txt(q.FieldPercentage))
	case q.MarksTypeGrade:
		ts = append(ts, sel(q.FieldGrade), txt(q.FieldPercentage))
	case q.MarksTypeMarks:
		ts = append(ts, txt(q.FieldMarksObtained), txt(q.FieldTotalMarks))
	}
	ts = append(ts,
		sel(q.FieldBranch),
		sel(q.FieldResultStatus),
		txt(q.FieldBoardUniversity),
		sel(q.FieldPassingYear),
		target{kind: kindDocument, entryID: e.ID},
	)
	if removable {
		ts = append(ts, target{kind: kindRemove, entryID: e.ID})
	}
	return ts
}

// allTargets lists every control of the form in order.
func allTargets(set *q.Set) []target {
	var ts []target
	removable := set.Len() > 1
	for _, e := range set.Entries() {
		ts = append(ts, entryTargets(e, removable)...)
	}
	return append(ts, target{kind: kindAdd}, target{kind: kindSave})
}

// selectOptions returns the option labels of an enumerated field.
func selectOptions(opts q.Options, f q.Field) []string {
	switch f {
	case q.FieldCredentialType:
		return labels(opts.CredentialTypes)
	case q.FieldMarksType:
		return labels(opts.MarksTypes)
	case q.FieldGrade:
		return labels(opts.Grades)
	case q.FieldBranch:
		return labels(opts.Branches)
	case q.FieldResultStatus:
		return labels(opts.ResultStatuses)
	case q.FieldPassingYear:
		out := make([]string, len(opts.Years))
		for i, y := range opts.Years {
			out[i] = strconv.Itoa(y)
		}
		return out
	}
	return nil
}

func labels[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// fieldValue returns the current text of field f of e as the form shows it.
func fieldValue(e q.Entry, f q.Field) string {
	switch f {
	case q.FieldCredentialType:
		return string(e.CredentialType)
	case q.FieldMarksType:
		return string(e.MarksType)
	case q.FieldGrade:
		return string(e.Grade.Grade)
	case q.FieldBranch:
		return string(e.Branch)
	case q.FieldResultStatus:
		return string(e.ResultStatus)
	case q.FieldPassingYear:
		if e.PassingYear == 0 {
			return ""
		}
		return strconv.Itoa(e.PassingYear)
	case q.FieldBoardUniversity:
		return e.BoardUniversity
	case q.FieldPercentage:
		switch e.MarksType {
		case q.MarksTypeCGPA:
			return e.CGPA.Percentage
		case q.MarksTypeGrade:
			return e.Grade.Percentage
		}
	case q.FieldMarksObtained:
		return e.Marks.Obtained
	case q.FieldTotalMarks:
		return e.Marks.Total
	case q.FieldComputedPercentage:
		if p, ok := e.ComputedPercentage(); ok {
			return q.FormatPercentage(p) + "%"
		}
	}
	return ""
}

// isNumeric reports whether the field only takes numeric input.
func isNumeric(f q.Field) bool {
	switch f {
	case q.FieldPercentage, q.FieldMarksObtained, q.FieldTotalMarks:
		return true
	}
	return false
}
