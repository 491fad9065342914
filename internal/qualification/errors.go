package qualification

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is matched by *NotFoundError.
	ErrNotFound = errors.New("entry not found")

	ErrUnknownField        = errors.New("unknown field")
	ErrUnknownOption       = errors.New("value is not an allowed option")
	ErrReadOnlyField       = errors.New("field is derived and cannot be set")
	ErrInactiveField       = errors.New("field does not belong to the active marks type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")

	ErrRequiredFieldMissing = errors.New("required field missing")
	ErrPercentageOutOfRange = errors.New("percentage out of range")
	ErrMarksOutOfRange      = errors.New("marks out of range")
)

// NotFoundError reports an operation on an entry id absent from the set.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.ID, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// FieldError reports a rejected SetField call.
type FieldError struct {
	EntryID int
	Field   Field
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("entry %d: %s: %v", e.EntryID, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// AttachmentError reports a rejected document. The entry is left untouched.
type AttachmentError struct {
	EntryID  int
	Document Document
	Err      error
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("entry %d: attach %q: %v", e.EntryID, e.Document.Filename, e.Err)
}

func (e *AttachmentError) Unwrap() error { return e.Err }

// FieldFailure is a single submission-time problem with one field of one
// entry. Kind is one of ErrRequiredFieldMissing, ErrPercentageOutOfRange or
// ErrMarksOutOfRange.
type FieldFailure struct {
	EntryID int   `json:"entryId"`
	Field   Field `json:"field"`
	Kind    error `json:"-"`
}

func (f FieldFailure) Error() string {
	return fmt.Sprintf("entry %d: %s: %v", f.EntryID, f.Field, f.Kind)
}

func (f FieldFailure) Unwrap() error { return f.Kind }

// ValidationError lists every failure found by ValidateForSubmission, in
// entry order.
type ValidationError struct {
	Failures []FieldFailure
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	noun := "failures"
	if len(e.Failures) == 1 {
		noun = "failure"
	}
	return fmt.Sprintf("%d validation %s: %s", len(e.Failures), noun, strings.Join(parts, "; "))
}

// Unwrap exposes each failure so errors.Is can match on the failure kinds.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// ByEntry groups the failures by entry id.
func (e *ValidationError) ByEntry() map[int][]FieldFailure {
	m := make(map[int][]FieldFailure)
	for _, f := range e.Failures {
		m[f.EntryID] = append(m[f.EntryID], f)
	}
	return m
}
