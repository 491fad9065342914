package qualification

import "fmt"

// Field names an editable attribute of an Entry.
type Field string

const (
	FieldCredentialType     Field = "credentialType"
	FieldBranch             Field = "branch"
	FieldResultStatus       Field = "resultStatus"
	FieldPassingYear        Field = "passingYear"
	FieldMarksType          Field = "marksType"
	FieldBoardUniversity    Field = "boardUniversity"
	FieldPercentage         Field = "percentage"
	FieldGrade              Field = "grade"
	FieldMarksObtained      Field = "marksObtained"
	FieldTotalMarks         Field = "totalMarks"
	FieldComputedPercentage Field = "computedPercentage"
)

var allFields = []Field{
	FieldCredentialType,
	FieldBranch,
	FieldResultStatus,
	FieldPassingYear,
	FieldMarksType,
	FieldBoardUniversity,
	FieldPercentage,
	FieldGrade,
	FieldMarksObtained,
	FieldTotalMarks,
	FieldComputedPercentage,
}

// ParseField returns the Field with the given name.
func ParseField(name string) (Field, error) {
	for _, f := range allFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Label returns the form label for the field.
func (f Field) Label() string {
	switch f {
	case FieldCredentialType:
		return "Qualification Type"
	case FieldBranch:
		return "Branch/Stream"
	case FieldResultStatus:
		return "Result Status"
	case FieldPassingYear:
		return "Year of Passing"
	case FieldMarksType:
		return "Marks Type"
	case FieldBoardUniversity:
		return "Board/University"
	case FieldPercentage:
		return "Percentage"
	case FieldGrade:
		return "Grade"
	case FieldMarksObtained:
		return "Marks Obtained"
	case FieldTotalMarks:
		return "Total Marks"
	case FieldComputedPercentage:
		return "Computed Percentage"
	}
	return string(f)
}
