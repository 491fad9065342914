package form

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/credform/internal/notify"
	q "github.com/abhisek/credform/internal/qualification"
	"github.com/abhisek/credform/internal/router"
	"github.com/abhisek/credform/internal/screens/summary"
	"github.com/abhisek/credform/internal/submit"
	"github.com/abhisek/credform/internal/ui/components"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type failingTransport struct{}

func (failingTransport) Send(context.Context, submit.Envelope) error {
	return errors.New("connection refused")
}

func newTestForm(t *testing.T, transport submit.Transport, probe func(string) (q.Document, error)) *FormScreen {
	t.Helper()
	return New(Config{
		Set:           q.NewSet(q.DefaultOptions(testNow)),
		Transport:     transport,
		Probe:         probe,
		Now:           func() time.Time { return testNow },
		ToastDuration: time.Millisecond,
	})
}

func keyMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func typeText(f *FormScreen, s string) {
	for _, r := range s {
		f.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func fillCGPA(t *testing.T, set *q.Set, id int) {
	t.Helper()
	for _, kv := range []struct {
		field q.Field
		value string
	}{
		{q.FieldCredentialType, string(q.CredentialBachelors)},
		{q.FieldBranch, string(q.BranchEngineering)},
		{q.FieldResultStatus, string(q.ResultPass)},
		{q.FieldPassingYear, "2020"},
		{q.FieldMarksType, string(q.MarksTypeCGPA)},
		{q.FieldBoardUniversity, "Delhi University"},
		{q.FieldPercentage, "85.5"},
	} {
		require.NoError(t, set.SetField(id, kv.field, kv.value))
	}
}

func toastText(t *testing.T, f *FormScreen) (string, notify.Severity) {
	t.Helper()
	n, ok := f.toast.Current()
	require.True(t, ok, "expected a visible toast")
	return n.Message, n.Severity
}

// focusTarget moves focus straight to the first target matching ok.
func focusTarget(f *FormScreen, ok func(target) bool) {
	f.focusOn(ok)
	f.focusEditor()
}

// runBatch executes cmd and flattens any batch into the produced messages.
func runBatch(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runBatch(c)...)
	}
	return out
}

func TestFormStartsWithOneEntry(t *testing.T) {
	f := newTestForm(t, nil, nil)

	assert.Equal(t, "Qualifications Details", f.Title())
	assert.Equal(t, 1, f.Set().Len())
	assert.Equal(t, "0 of 1 complete", f.Status())

	view := f.View(100, 60)
	assert.Contains(t, view, "Qualification 1")
	assert.Contains(t, view, "--Please Select--")
	assert.Contains(t, view, "Add More Qualifications")
	assert.Contains(t, view, "Save & Next")
	assert.NotContains(t, view, "Remove")
}

func TestFormSelectCyclesCredentialType(t *testing.T) {
	f := newTestForm(t, nil, nil)

	f.Update(keyMsg(tea.KeyRight))
	e, _ := f.Set().Entry(1)
	assert.Equal(t, q.CredentialSSC, e.CredentialType)

	f.Update(keyMsg(tea.KeyLeft))
	e, _ = f.Set().Entry(1)
	assert.Equal(t, q.CredentialUnselected, e.CredentialType)
}

func TestFormMarksTypeChangesControls(t *testing.T) {
	f := newTestForm(t, nil, nil)
	require.NoError(t, f.Set().SetField(1, q.FieldMarksType, string(q.MarksTypeMarks)))

	view := f.View(100, 60)
	assert.Contains(t, view, "Marks Obtained")
	assert.Contains(t, view, "Total Marks")
	assert.Contains(t, view, "Computed Percentage")
}

func TestFormTypingUpdatesSet(t *testing.T) {
	f := newTestForm(t, nil, nil)
	focusTarget(f, func(tg target) bool { return tg.field == q.FieldBoardUniversity })

	typeText(f, "CBSE")

	e, _ := f.Set().Entry(1)
	assert.Equal(t, "CBSE", e.BoardUniversity)
}

func TestFormNumericFieldsDropLetters(t *testing.T) {
	f := newTestForm(t, nil, nil)
	require.NoError(t, f.Set().SetField(1, q.FieldMarksType, string(q.MarksTypeMarks)))
	focusTarget(f, func(tg target) bool { return tg.field == q.FieldMarksObtained })

	typeText(f, "4x25")
	focusTarget(f, func(tg target) bool { return tg.field == q.FieldTotalMarks })
	typeText(f, "500")

	e, _ := f.Set().Entry(1)
	assert.Equal(t, "425", e.Marks.Obtained)
	p, ok := e.ComputedPercentage()
	require.True(t, ok)
	assert.InDelta(t, 85.0, p, 0.001)
	assert.Contains(t, f.View(100, 60), "85.00%")
}

func TestFormPercentageGuard(t *testing.T) {
	f := newTestForm(t, nil, nil)
	require.NoError(t, f.Set().SetField(1, q.FieldMarksType, string(q.MarksTypeCGPA)))
	focusTarget(f, func(tg target) bool { return tg.field == q.FieldPercentage })

	typeText(f, "101")

	e, _ := f.Set().Entry(1)
	assert.Equal(t, "10", e.CGPA.Percentage)
	assert.Equal(t, "10", f.editor.Value())
	text, sev := toastText(t, f)
	assert.Equal(t, "Percentage cannot be greater than 100", text)
	assert.Equal(t, notify.SeverityError, sev)
}

func TestFormEditorReseedsAfterMarksTypeSwitch(t *testing.T) {
	f := newTestForm(t, nil, nil)
	set := f.Set()
	require.NoError(t, set.SetField(1, q.FieldMarksType, string(q.MarksTypeCGPA)))
	require.NoError(t, set.SetField(1, q.FieldPercentage, "70"))
	focusTarget(f, func(tg target) bool { return tg.field == q.FieldPercentage })
	assert.Equal(t, "70", f.editor.Value())

	focusTarget(f, func(tg target) bool { return tg.field == q.FieldMarksType })
	f.Update(keyMsg(tea.KeyRight))
	focusTarget(f, func(tg target) bool { return tg.field == q.FieldPercentage })

	assert.Equal(t, "", f.editor.Value(), "grade branch keeps its own percentage")
}

func TestFormAddAndRemoveEntries(t *testing.T) {
	f := newTestForm(t, nil, nil)

	f.Update(ctrl('n'))
	require.Equal(t, 2, f.Set().Len())
	assert.Equal(t, 2, f.current().entryID, "focus moves to the new entry")
	assert.Contains(t, f.View(100, 80), "Qualification 2")
	assert.Contains(t, f.View(100, 80), "Remove")

	f.Update(ctrl('d'))
	assert.Equal(t, 1, f.Set().Len())
	assert.Equal(t, 1, f.current().entryID)

	f.Update(ctrl('d'))
	assert.Equal(t, 1, f.Set().Len(), "last entry cannot be removed")
}

func TestFormRemoveButton(t *testing.T) {
	f := newTestForm(t, nil, nil)
	f.Set().AddEntry()
	focusTarget(f, func(tg target) bool { return tg.kind == kindRemove && tg.entryID == 1 })

	f.Update(keyMsg(tea.KeyEnter))

	entries := f.Set().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].ID)
}

func TestFormAttachDocument(t *testing.T) {
	docs := map[string]q.Document{
		"degree.pdf": {Filename: "degree.pdf", Size: 1024, MIMEType: q.PDFMIMEType, Handle: "/tmp/degree.pdf"},
		"big.pdf":    {Filename: "big.pdf", Size: 3 * 1024 * 1024, MIMEType: q.PDFMIMEType},
		"photo.png":  {Filename: "photo.png", Size: 1024, MIMEType: "image/png"},
	}
	probe := func(path string) (q.Document, error) {
		d, ok := docs[path]
		if !ok {
			return q.Document{}, errors.New("no such file")
		}
		return d, nil
	}

	tests := []struct {
		path     string
		attached bool
		toast    string
	}{
		{"degree.pdf", true, "Selected: degree.pdf"},
		{"big.pdf", false, "File size exceeds 2MB limit"},
		{"photo.png", false, "Please upload a PDF file"},
		{"missing.pdf", false, "Cannot read missing.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f := newTestForm(t, nil, probe)
			focusTarget(f, func(tg target) bool { return tg.kind == kindDocument })

			typeText(f, tt.path)
			f.Update(keyMsg(tea.KeyEnter))

			e, _ := f.Set().Entry(1)
			assert.Equal(t, tt.attached, e.Attachment != nil)
			text, _ := toastText(t, f)
			assert.Equal(t, tt.toast, text)
			if tt.attached {
				assert.Contains(t, f.View(100, 60), "Selected: degree.pdf")
			}
		})
	}
}

func TestFormDetachDocument(t *testing.T) {
	f := newTestForm(t, nil, nil)
	require.NoError(t, f.Set().AttachDocument(1, q.Document{Filename: "a.pdf", Size: 1, MIMEType: q.PDFMIMEType}))
	focusTarget(f, func(tg target) bool { return tg.kind == kindDocument })

	f.Update(ctrl('x'))

	e, _ := f.Set().Entry(1)
	assert.Nil(t, e.Attachment)
}

func TestFormSubmitIncompleteShowsProblems(t *testing.T) {
	rec := &submit.Recorder{}
	f := newTestForm(t, rec, nil)
	focusTarget(f, func(tg target) bool { return tg.kind == kindSave })

	_, cmd := f.Update(keyMsg(tea.KeyEnter))

	for _, msg := range runBatch(cmd) {
		assert.IsNotType(t, submittedMsg{}, msg)
	}
	_, sent := rec.Last()
	assert.False(t, sent)

	text, sev := toastText(t, f)
	assert.Contains(t, text, "Please fix")
	assert.Equal(t, notify.SeverityError, sev)
	assert.Equal(t, q.FieldCredentialType, f.current().field, "focus jumps to the first problem")
	assert.Contains(t, f.View(100, 60), "Required")
}

func TestFormSubmitSuccess(t *testing.T) {
	rec := &submit.Recorder{}
	f := newTestForm(t, rec, nil)
	fillCGPA(t, f.Set(), 1)
	assert.Equal(t, "1 of 1 complete", f.Status())

	_, cmd := f.Update(ctrl('s'))
	msgs := runBatch(cmd)
	require.Len(t, msgs, 1)
	done, ok := msgs[0].(submittedMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)

	env, sent := rec.Last()
	require.True(t, sent)
	assert.Equal(t, testNow, env.SubmittedAt)
	require.Len(t, env.Entries, 1)
	assert.Equal(t, "85.5", env.Entries[0].CGPA.Percentage)

	_, cmd = f.Update(done)
	text, sev := toastText(t, f)
	assert.Equal(t, "Form submitted successfully!", text)
	assert.Equal(t, notify.SeveritySuccess, sev)

	var pushed bool
	for _, msg := range runBatch(cmd) {
		if push, ok := msg.(router.PushScreenMsg); ok {
			pushed = true
			assert.IsType(t, &summary.SummaryScreen{}, push.Screen)
		}
	}
	assert.True(t, pushed)
	assert.Equal(t, 1, f.Set().Len(), "the set stays editable")
}

func TestFormSubmitTransportFailure(t *testing.T) {
	f := newTestForm(t, failingTransport{}, nil)
	fillCGPA(t, f.Set(), 1)

	_, cmd := f.Update(ctrl('s'))
	msgs := runBatch(cmd)
	require.Len(t, msgs, 1)
	f.Update(msgs[0])

	text, sev := toastText(t, f)
	assert.Contains(t, text, "connection refused")
	assert.Equal(t, notify.SeverityError, sev)
	assert.False(t, f.submitting)
}

func TestFormToastExpires(t *testing.T) {
	f := newTestForm(t, nil, nil)
	require.NoError(t, f.Set().SetField(1, q.FieldMarksType, string(q.MarksTypeCGPA)))
	focusTarget(f, func(tg target) bool { return tg.field == q.FieldPercentage })

	typeText(f, "20")
	_, cmd := f.Update(tea.KeyPressMsg{Code: '0', Text: "0"})
	require.NotNil(t, cmd)
	_, visible := f.toast.Current()
	require.True(t, visible)

	for _, msg := range runBatch(cmd) {
		if expired, ok := msg.(components.ToastExpiredMsg); ok {
			f.Update(expired)
		}
	}
	_, visible = f.toast.Current()
	assert.False(t, visible)
}

func TestSizeLabel(t *testing.T) {
	assert.Equal(t, "2MB", sizeLabel(2*1024*1024))
	assert.Equal(t, "512KB", sizeLabel(512*1024))
	assert.Equal(t, "1000 bytes", sizeLabel(1000))
}
