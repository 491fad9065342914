package qualification

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// entryRules is the validation view of an entry. Only the active marks
// branch is copied in, so inactive payloads never produce failures.
type entryRules struct {
	CredentialType  string `field:"credentialType" validate:"required"`
	Branch          string `field:"branch" validate:"required"`
	ResultStatus    string `field:"resultStatus" validate:"required"`
	PassingYear     int    `field:"passingYear" validate:"required"`
	MarksType       string `field:"marksType" validate:"required"`
	BoardUniversity string `field:"boardUniversity" validate:"required"`
	Percentage      string `field:"percentage" validate:"required_if=MarksType CGPA,required_if=MarksType Grade,percentage"`
	Grade           string `field:"grade" validate:"required_if=MarksType Grade"`
	MarksObtained   string `field:"marksObtained" validate:"required_if=MarksType Marks,marks_obtained"`
	TotalMarks      string `field:"totalMarks" validate:"required_if=MarksType Marks,total_marks,ratio=MarksObtained"`
}

var rules = newRules()

func newRules() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	mustRegister(v, "percentage", func(n float64) bool { return n <= 100 })
	mustRegister(v, "marks_obtained", func(n float64) bool { return n >= 0 })
	mustRegister(v, "total_marks", func(n float64) bool { return n > 0 })
	if err := v.RegisterValidation("ratio", ratioComputes); err != nil {
		panic(err)
	}
	return v
}

// ratioComputes checks that the field named by the param, divided by this
// field, gives a finite percentage. Unparseable inputs are left to the
// other rules.
func ratioComputes(fl validator.FieldLevel) bool {
	total := fl.Field().String()
	obtained := fl.Parent().FieldByName(fl.Param()).String()
	o, oerr := parseNumber(obtained)
	t, terr := parseNumber(total)
	if oerr != nil || terr != nil || o < 0 || t <= 0 {
		return true
	}
	_, ok := ComputePercentage(obtained, total)
	return ok
}

// mustRegister adds a rule for a numeric text field. Blank values pass;
// presence is enforced by required_if.
func mustRegister(v *validator.Validate, tag string, ok func(float64) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if strings.TrimSpace(s) == "" {
			return true
		}
		n, err := parseNumber(s)
		return err == nil && ok(n)
	})
	if err != nil {
		panic(err)
	}
}

func rulesFor(e Entry) entryRules {
	r := entryRules{
		CredentialType:  string(e.CredentialType),
		Branch:          string(e.Branch),
		ResultStatus:    string(e.ResultStatus),
		PassingYear:     e.PassingYear,
		MarksType:       string(e.MarksType),
		BoardUniversity: strings.TrimSpace(e.BoardUniversity),
	}
	switch sc := e.Score().(type) {
	case CGPAScore:
		r.Percentage = strings.TrimSpace(sc.Percentage)
	case GradeScore:
		r.Grade = string(sc.Grade)
		r.Percentage = strings.TrimSpace(sc.Percentage)
	case MarksScore:
		r.MarksObtained = strings.TrimSpace(sc.Obtained)
		r.TotalMarks = strings.TrimSpace(sc.Total)
	}
	return r
}

// checkEntry returns every failure of e, in field order.
func checkEntry(e Entry) []FieldFailure {
	err := rules.Struct(rulesFor(e))
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable if entryRules stops being a struct.
		panic(err)
	}
	failures := make([]FieldFailure, 0, len(verrs))
	for _, fe := range verrs {
		failures = append(failures, FieldFailure{
			EntryID: e.ID,
			Field:   Field(fe.Field()),
			Kind:    kindFor(fe.Tag()),
		})
	}
	return failures
}

func kindFor(tag string) error {
	switch tag {
	case "percentage":
		return ErrPercentageOutOfRange
	case "marks_obtained", "total_marks", "ratio":
		return ErrMarksOutOfRange
	}
	return ErrRequiredFieldMissing
}
