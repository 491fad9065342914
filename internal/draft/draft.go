// Package draft loads a qualifications form from a JSON file and replays it
// through the qualification.Set operations, so a file-based draft is held to
// exactly the same rules as one typed into the form.
package draft

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/credform/internal/qualification"
)

// SupportedMajor is the draft format major version this build reads.
const SupportedMajor = "v1"

//go:embed schema.json
var schemaJSON []byte

var (
	ErrInvalidDraft       = errors.New("invalid draft")
	ErrUnsupportedVersion = errors.New("unsupported draft version")
)

// Draft is the on-disk form of a qualifications set.
type Draft struct {
	Version string  `json:"version"`
	Entries []Entry `json:"entries"`
}

// Entry is one qualification in a draft. Empty values are left unselected.
type Entry struct {
	CredentialType  string `json:"credentialType,omitempty"`
	Branch          string `json:"branch,omitempty"`
	ResultStatus    string `json:"resultStatus,omitempty"`
	PassingYear     int    `json:"passingYear,omitempty"`
	MarksType       string `json:"marksType,omitempty"`
	BoardUniversity string `json:"boardUniversity,omitempty"`
	Percentage      Text   `json:"percentage,omitempty"`
	Grade           string `json:"grade,omitempty"`
	MarksObtained   Text   `json:"marksObtained,omitempty"`
	TotalMarks      Text   `json:"totalMarks,omitempty"`
	Document        string `json:"document,omitempty"`
}

// Text is a form input that may be written as a JSON string or number.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Parse reads and checks a draft. The document must match the embedded
// schema and carry a version with major SupportedMajor.
func Parse(r io.Reader) (*Draft, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	compiled, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile draft schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	if !semver.IsValid(d.Version) || semver.Major(d.Version) != SupportedMajor {
		return nil, fmt.Errorf("%w: %q (this build reads %s.x)", ErrUnsupportedVersion, d.Version, SupportedMajor)
	}
	return &d, nil
}

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://credform-draft.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile(url)
	})
	return schemaCompiled, schemaErr
}

// ProbeFunc describes a document on disk.
type ProbeFunc func(path string) (qualification.Document, error)

// Apply replays the draft into set. Draft entries fill the set's existing
// entries in order, and new entries are added for the rest. Documents are
// resolved with probe. Apply stops at the first rejected value.
func (d *Draft) Apply(set *qualification.Set, probe ProbeFunc) error {
	existing := set.Entries()
	for i, de := range d.Entries {
		var id int
		if i < len(existing) {
			id = existing[i].ID
		} else {
			id = set.AddEntry().ID
		}
		if err := de.apply(set, id, probe); err != nil {
			return fmt.Errorf("draft entry %d: %w", i+1, err)
		}
	}
	return nil
}

func (de Entry) apply(set *qualification.Set, id int, probe ProbeFunc) error {
	year := ""
	if de.PassingYear != 0 {
		year = strconv.Itoa(de.PassingYear)
	}

	// marksType goes first so percentage lands in the active branch.
	values := []struct {
		field qualification.Field
		value string
	}{
		{qualification.FieldMarksType, de.MarksType},
		{qualification.FieldCredentialType, de.CredentialType},
		{qualification.FieldBranch, de.Branch},
		{qualification.FieldResultStatus, de.ResultStatus},
		{qualification.FieldPassingYear, year},
		{qualification.FieldBoardUniversity, de.BoardUniversity},
		{qualification.FieldPercentage, string(de.Percentage)},
		{qualification.FieldGrade, de.Grade},
		{qualification.FieldMarksObtained, string(de.MarksObtained)},
		{qualification.FieldTotalMarks, string(de.TotalMarks)},
	}
	for _, v := range values {
		if v.value == "" {
			continue
		}
		if err := set.SetField(id, v.field, v.value); err != nil {
			return err
		}
	}

	if de.Document == "" {
		return nil
	}
	if probe == nil {
		return fmt.Errorf("document %q: no file probe configured", de.Document)
	}
	doc, err := probe(de.Document)
	if err != nil {
		return err
	}
	return set.AttachDocument(id, doc)
}
