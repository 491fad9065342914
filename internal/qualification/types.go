package qualification

// CredentialType is the kind of academic credential an entry reports.
type CredentialType string

const (
	CredentialUnselected CredentialType = ""
	CredentialSSC        CredentialType = "SSC/Matric/High School"
	CredentialHSC        CredentialType = "HSC/Intermediate"
	CredentialDiploma    CredentialType = "Diploma"
	CredentialBachelors  CredentialType = "Bachelor's Degree"
	CredentialMasters    CredentialType = "Master's Degree"
	CredentialPhD        CredentialType = "PhD"
)

// Branch is the stream or discipline of a credential.
type Branch string

const (
	BranchUnselected  Branch = ""
	BranchScience     Branch = "Science"
	BranchCommerce    Branch = "Commerce"
	BranchArts        Branch = "Arts"
	BranchEngineering Branch = "Engineering"
	BranchMedical     Branch = "Medical"
)

// ResultStatus is the outcome reported for a credential.
type ResultStatus string

const (
	ResultUnselected ResultStatus = ""
	ResultPass       ResultStatus = "Pass"
	ResultFail       ResultStatus = "Fail"
	ResultAppearing  ResultStatus = "Appearing"
)

// MarksType selects which score branch of an entry is active.
type MarksType string

const (
	MarksTypeUnselected MarksType = ""
	MarksTypeCGPA       MarksType = "CGPA"
	MarksTypeGrade      MarksType = "Grade"
	MarksTypeMarks      MarksType = "Marks"
)

// Grade is a letter grade used by the Grade score branch.
type Grade string

const (
	GradeUnselected Grade = ""
	GradeAPlus      Grade = "A+"
	GradeA          Grade = "A"
	GradeBPlus      Grade = "B+"
	GradeB          Grade = "B"
	GradeCPlus      Grade = "C+"
	GradeC          Grade = "C"
	GradeD          Grade = "D"
	GradeF          Grade = "F"
)

// Document describes an uploaded file. The file content is never read by
// this package; Handle is whatever the caller uses to find it again.
type Document struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mimeType"`
	Handle   string `json:"handle,omitempty"`
}

// Score is the payload of the active marks branch of an entry.
// It is one of CGPAScore, GradeScore or MarksScore.
type Score interface {
	Kind() MarksType
}

// CGPAScore holds the equivalent percentage for a CGPA result.
type CGPAScore struct {
	Percentage string `json:"percentage,omitempty"`
}

// GradeScore holds a letter grade with its equivalent percentage.
type GradeScore struct {
	Grade      Grade  `json:"grade,omitempty"`
	Percentage string `json:"percentage,omitempty"`
}

// MarksScore holds raw marks. Computed is derived and only set while the
// Marks branch is active and both inputs parse with Total > 0.
type MarksScore struct {
	Obtained string   `json:"marksObtained,omitempty"`
	Total    string   `json:"totalMarks,omitempty"`
	Computed *float64 `json:"computedPercentage,omitempty"`
}

func (CGPAScore) Kind() MarksType  { return MarksTypeCGPA }
func (GradeScore) Kind() MarksType { return MarksTypeGrade }
func (MarksScore) Kind() MarksType { return MarksTypeMarks }

// Entry is one qualification record within a Set.
//
// Each marks branch keeps its own payload so that switching MarksType never
// loses what was typed under another branch; only the branch named by
// MarksType takes part in validation.
type Entry struct {
	ID              int            `json:"id"`
	CredentialType  CredentialType `json:"credentialType"`
	Branch          Branch         `json:"branch"`
	ResultStatus    ResultStatus   `json:"resultStatus"`
	PassingYear     int            `json:"passingYear,omitempty"`
	MarksType       MarksType      `json:"marksType"`
	BoardUniversity string         `json:"boardUniversity"`
	Attachment      *Document      `json:"attachment,omitempty"`

	CGPA  CGPAScore  `json:"cgpa"`
	Grade GradeScore `json:"grade"`
	Marks MarksScore `json:"marks"`
}

// Score returns the payload of the active marks branch, or nil when no
// marks type has been selected.
func (e Entry) Score() Score {
	switch e.MarksType {
	case MarksTypeCGPA:
		return e.CGPA
	case MarksTypeGrade:
		return e.Grade
	case MarksTypeMarks:
		return e.Marks
	}
	return nil
}

// ComputedPercentage returns the derived percentage of the Marks branch.
func (e Entry) ComputedPercentage() (float64, bool) {
	if e.Marks.Computed == nil {
		return 0, false
	}
	return *e.Marks.Computed, true
}

// recompute refreshes derived fields from the current inputs.
func (e *Entry) recompute() {
	e.Marks.Computed = nil
	if e.MarksType != MarksTypeMarks {
		return
	}
	if p, ok := ComputePercentage(e.Marks.Obtained, e.Marks.Total); ok {
		e.Marks.Computed = &p
	}
}

// clone returns a copy that shares no pointers with e.
func (e Entry) clone() Entry {
	c := e
	if e.Attachment != nil {
		doc := *e.Attachment
		c.Attachment = &doc
	}
	if e.Marks.Computed != nil {
		p := *e.Marks.Computed
		c.Marks.Computed = &p
	}
	return c
}

// Snapshot is an ordered copy of every entry, taken when the set passes
// validation.
type Snapshot struct {
	Entries []Entry `json:"entries"`
}
