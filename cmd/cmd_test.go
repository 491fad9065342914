package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/credform/internal/qualification"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestLoadDraftResolvesDocumentsNextToDraft(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "degree.pdf", []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"))
	path := writeFile(t, dir, "draft.json", []byte(`{
		"version": "v1",
		"entries": [{
			"credentialType": "Bachelor's Degree",
			"branch": "Engineering",
			"resultStatus": "Pass",
			"passingYear": 2020,
			"marksType": "CGPA",
			"boardUniversity": "Delhi University",
			"percentage": 85.5,
			"document": "degree.pdf"
		}]
	}`))

	set := qualification.NewSet(qualification.DefaultOptions(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, loadDraft(path, set))

	e, ok := set.Entry(1)
	require.True(t, ok)
	require.NotNil(t, e.Attachment)
	assert.Equal(t, "degree.pdf", e.Attachment.Filename)
	assert.Equal(t, filepath.Join(dir, "degree.pdf"), e.Attachment.Handle)

	_, err := set.ValidateForSubmission()
	assert.NoError(t, err)
}

func TestPrintFailures(t *testing.T) {
	set := qualification.NewSet(qualification.DefaultOptions(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	_, err := set.ValidateForSubmission()
	var verr *qualification.ValidationError
	require.ErrorAs(t, err, &verr)

	var buf bytes.Buffer
	printFailures(&buf, set, verr)

	out := buf.String()
	assert.Contains(t, out, "Qualification 1")
	assert.Contains(t, out, "Qualification Type")
	assert.Contains(t, out, "required field missing")
}

func TestCheckInvalidDraftReportsFailuresOnce(t *testing.T) {
	t.Setenv("CREDFORM_WEBHOOK_URL", "")
	path := writeFile(t, t.TempDir(), "draft.json", []byte(`{
		"version": "v1",
		"entries": [{"credentialType": "Bachelor's Degree", "marksType": "CGPA"}]
	}`))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"check", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	require.ErrorIs(t, err, errDraftNotReady)
	assert.Contains(t, out.String(), "QUALIFICATION")
	assert.Contains(t, out.String(), "problem(s)")
	assert.NotContains(t, errOut.String(), "required field missing")
	assert.Contains(t, errOut.String(), "draft is not ready to submit")
}

func TestPrintOptions(t *testing.T) {
	var buf bytes.Buffer
	printOptions(&buf, qualification.DefaultOptions(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	out := buf.String()
	assert.Contains(t, out, "SSC/Matric/High School")
	assert.Contains(t, out, "1990 – 2025")
	assert.Contains(t, out, "application/pdf, at most 2097152 bytes")
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credform.log")
	logger, closeLog, err := newLogger(path, nil)
	require.NoError(t, err)
	logger.Info("hello", "entries", 2)
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello entries=2")
}
