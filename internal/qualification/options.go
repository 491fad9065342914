package qualification

import (
	"slices"
	"time"
)

const (
	// DefaultMinYear is the oldest selectable passing year.
	DefaultMinYear = 1990

	// DefaultMaxDocumentSize is the largest accepted attachment (2 MiB).
	DefaultMaxDocumentSize int64 = 2 * 1024 * 1024

	// PDFMIMEType is the only accepted attachment type.
	PDFMIMEType = "application/pdf"
)

// Options is the static configuration of a Set: the allowed values of every
// enumerated field and the attachment limits. The unselected value of each
// field is always allowed and is not listed.
type Options struct {
	CredentialTypes []CredentialType
	Branches        []Branch
	ResultStatuses  []ResultStatus
	MarksTypes      []MarksType
	Grades          []Grade
	Years           []int

	MaxDocumentSize  int64
	DocumentMIMEType string
}

// DefaultOptions returns the standard option lists with passing years from
// now's calendar year down to DefaultMinYear.
func DefaultOptions(now time.Time) Options {
	return Options{
		CredentialTypes: []CredentialType{
			CredentialSSC,
			CredentialHSC,
			CredentialDiploma,
			CredentialBachelors,
			CredentialMasters,
			CredentialPhD,
		},
		Branches: []Branch{
			BranchScience,
			BranchCommerce,
			BranchArts,
			BranchEngineering,
			BranchMedical,
		},
		ResultStatuses: []ResultStatus{
			ResultPass,
			ResultFail,
			ResultAppearing,
		},
		MarksTypes: []MarksType{
			MarksTypeCGPA,
			MarksTypeGrade,
			MarksTypeMarks,
		},
		Grades: []Grade{
			GradeAPlus, GradeA,
			GradeBPlus, GradeB,
			GradeCPlus, GradeC,
			GradeD, GradeF,
		},
		Years:            YearRange(now.Year(), DefaultMinYear),
		MaxDocumentSize:  DefaultMaxDocumentSize,
		DocumentMIMEType: PDFMIMEType,
	}
}

// YearRange returns the years from newest down to oldest inclusive.
// It returns nil if newest < oldest.
func YearRange(newest, oldest int) []int {
	if newest < oldest {
		return nil
	}
	years := make([]int, 0, newest-oldest+1)
	for y := newest; y >= oldest; y-- {
		years = append(years, y)
	}
	return years
}

// allowed reports whether v is the zero value or listed in opts.
func allowed[T comparable](opts []T, v T) bool {
	var zero T
	return v == zero || slices.Contains(opts, v)
}
