package qualification

import (
	"slices"
	"strconv"
	"strings"
)

// Set is the ordered collection of entries behind one qualifications form.
// It always holds at least one entry. A Set is owned by a single session and
// is not safe for concurrent use.
type Set struct {
	opts    Options
	entries []Entry
	lastID  int
}

// NewSet creates a set holding one empty entry with id 1.
func NewSet(opts Options) *Set {
	s := &Set{opts: opts}
	s.AddEntry()
	return s
}

// Options returns the option lists the set validates against.
func (s *Set) Options() Options {
	return s.opts
}

// AddEntry appends an empty entry with a fresh id and returns it.
func (s *Set) AddEntry() Entry {
	s.lastID = max(s.lastID, s.maxID()) + 1
	e := Entry{ID: s.lastID}
	s.entries = append(s.entries, e)
	return e
}

// RemoveEntry removes the entry with the given id. It is a no-op returning
// false when id is unknown or when it would leave the set empty.
func (s *Set) RemoveEntry(id int) bool {
	if len(s.entries) <= 1 {
		return false
	}
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.clone()
	}
	return out
}

// Entry returns a copy of the entry with the given id.
func (s *Set) Entry(id int) (Entry, bool) {
	i := s.index(id)
	if i < 0 {
		return Entry{}, false
	}
	return s.entries[i].clone(), true
}

// SetField stores value into field of the entry with the given id.
//
// Enumerated fields accept "" (unselected) or one of the configured options.
// Numeric text fields are stored verbatim, without clamping; validation
// reports bad values at submission time. The derived percentage is
// recomputed after every accepted change.
func (s *Set) SetField(id int, field Field, value string) error {
	i := s.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}

	e := s.entries[i]
	if err := s.apply(&e, field, value); err != nil {
		return &FieldError{EntryID: id, Field: field, Err: err}
	}
	e.recompute()
	s.entries[i] = e
	return nil
}

func (s *Set) apply(e *Entry, field Field, value string) error {
	switch field {
	case FieldCredentialType:
		v := CredentialType(value)
		if !allowed(s.opts.CredentialTypes, v) {
			return ErrUnknownOption
		}
		e.CredentialType = v
	case FieldBranch:
		v := Branch(value)
		if !allowed(s.opts.Branches, v) {
			return ErrUnknownOption
		}
		e.Branch = v
	case FieldResultStatus:
		v := ResultStatus(value)
		if !allowed(s.opts.ResultStatuses, v) {
			return ErrUnknownOption
		}
		e.ResultStatus = v
	case FieldMarksType:
		v := MarksType(value)
		if !allowed(s.opts.MarksTypes, v) {
			return ErrUnknownOption
		}
		e.MarksType = v
	case FieldGrade:
		v := Grade(value)
		if !allowed(s.opts.Grades, v) {
			return ErrUnknownOption
		}
		e.Grade.Grade = v
	case FieldPassingYear:
		year, err := s.parseYear(value)
		if err != nil {
			return err
		}
		e.PassingYear = year
	case FieldBoardUniversity:
		e.BoardUniversity = value
	case FieldPercentage:
		switch e.MarksType {
		case MarksTypeCGPA:
			e.CGPA.Percentage = value
		case MarksTypeGrade:
			e.Grade.Percentage = value
		default:
			return ErrInactiveField
		}
	case FieldMarksObtained:
		e.Marks.Obtained = value
	case FieldTotalMarks:
		e.Marks.Total = value
	case FieldComputedPercentage:
		return ErrReadOnlyField
	default:
		return ErrUnknownField
	}
	return nil
}

func (s *Set) parseYear(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(value)
	if err != nil || !slices.Contains(s.opts.Years, year) {
		return 0, ErrUnknownOption
	}
	return year, nil
}

// AttachDocument records doc as the entry's document, replacing any previous
// one. Documents over the size limit or of a type other than PDF are
// rejected with an *AttachmentError and the entry is left unchanged.
func (s *Set) AttachDocument(id int, doc Document) error {
	i := s.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	if doc.Size > s.opts.MaxDocumentSize {
		return &AttachmentError{EntryID: id, Document: doc, Err: ErrFileTooLarge}
	}
	if doc.MIMEType != s.opts.DocumentMIMEType {
		return &AttachmentError{EntryID: id, Document: doc, Err: ErrUnsupportedFileType}
	}
	s.entries[i].Attachment = &doc
	return nil
}

// DetachDocument clears the entry's document, if any.
func (s *Set) DetachDocument(id int) error {
	i := s.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	s.entries[i].Attachment = nil
	return nil
}

// ValidateForSubmission checks every entry against the requirements of its
// active marks branch. It returns a *ValidationError listing all failures,
// or a snapshot of the entries. The set stays editable either way.
func (s *Set) ValidateForSubmission() (Snapshot, error) {
	var failures []FieldFailure
	for _, e := range s.entries {
		failures = append(failures, checkEntry(e)...)
	}
	if len(failures) > 0 {
		return Snapshot{}, &ValidationError{Failures: failures}
	}
	return Snapshot{Entries: s.Entries()}, nil
}

// Problems returns the current failures of each entry that has any.
func (s *Set) Problems() map[int][]FieldFailure {
	m := make(map[int][]FieldFailure)
	for _, e := range s.entries {
		if f := checkEntry(e); len(f) > 0 {
			m[e.ID] = f
		}
	}
	return m
}

func (s *Set) index(id int) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.ID == id })
}

func (s *Set) maxID() int {
	m := 0
	for _, e := range s.entries {
		m = max(m, e.ID)
	}
	return m
}
