package summary

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/credform/internal/qualification"
	"github.com/abhisek/credform/internal/router"
	"github.com/abhisek/credform/internal/submit"
)

func testEnvelope() submit.Envelope {
	pct := 85.0
	return submit.Envelope{
		ID:          uuid.MustParse("6f1c2a3e-0000-4000-8000-000000000001"),
		SubmittedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Entries: []qualification.Entry{
			{
				ID:              1,
				CredentialType:  qualification.CredentialBachelors,
				Branch:          qualification.BranchEngineering,
				ResultStatus:    qualification.ResultPass,
				PassingYear:     2020,
				MarksType:       qualification.MarksTypeCGPA,
				BoardUniversity: "Delhi University",
				CGPA:            qualification.CGPAScore{Percentage: "85.5"},
				Attachment:      &qualification.Document{Filename: "degree.pdf", Size: 1024, MIMEType: "application/pdf"},
			},
			{
				ID:              2,
				CredentialType:  qualification.CredentialHSC,
				MarksType:       qualification.MarksTypeMarks,
				BoardUniversity: "CBSE",
				Marks:           qualification.MarksScore{Obtained: "425", Total: "500", Computed: &pct},
			},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	assert.Equal(t, "Submission Summary", New(testEnvelope(), "").Title())
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testEnvelope(), "Form submitted successfully!").View(120, 30)
	assert.Contains(t, view, "Form submitted successfully!")
	assert.Contains(t, view, "6f1c2a3e")
	assert.Contains(t, view, "degree.pdf")
}

func TestEntryLine(t *testing.T) {
	env := testEnvelope()
	assert.Equal(t,
		"1. Bachelor's Degree  ·  Engineering  ·  2020  ·  Pass  ·  Delhi University  ·  CGPA 85.5%  ·  degree.pdf",
		EntryLine(1, env.Entries[0]))
	assert.Equal(t,
		"2. HSC/Intermediate  ·  CBSE  ·  Marks 425/500 (85.00%)",
		EntryLine(2, env.Entries[1]))
}

func TestSummaryScreen_NavigationPops(t *testing.T) {
	for _, key := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testEnvelope(), "")
		_, cmd := s.Update(tea.KeyPressMsg{Code: key})
		require.NotNil(t, cmd)
		assert.IsType(t, router.PopScreenMsg{}, cmd())
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	assert.Len(t, New(testEnvelope(), "").KeyHints(), 2)
}
