package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/credform/internal/notify"
	q "github.com/abhisek/credform/internal/qualification"
	"github.com/abhisek/credform/internal/router"
	"github.com/abhisek/credform/internal/screen"
	"github.com/abhisek/credform/internal/screens/summary"
	"github.com/abhisek/credform/internal/submit"
	"github.com/abhisek/credform/internal/ui/components"
	"github.com/abhisek/credform/internal/ui/layout"
)

const placeholder = "--Please Select--"

const (
	msgSubmitted    = "Form submitted successfully!"
	msgPercentLimit = "Percentage cannot be greater than 100"
	msgNotPDF       = "Please upload a PDF file"
)

// Config holds the dependencies of the form screen.
type Config struct {
	Set       *q.Set
	Transport submit.Transport
	// Probe turns a file path into a document descriptor.
	Probe  func(path string) (q.Document, error)
	Logger *slog.Logger
	Now    func() time.Time
	// ToastDuration overrides how long notifications stay visible.
	ToastDuration time.Duration
}

// FormScreen edits a qualification set and submits it.
type FormScreen struct {
	set       *q.Set
	transport submit.Transport
	probe     func(path string) (q.Document, error)
	logger    *slog.Logger
	now       func() time.Time

	focus     int
	editor    components.TextInput
	editorFor target
	toast     components.Toast

	// attempted is set by the first submit; problems are shown from then on.
	attempted  bool
	submitting bool
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)
var _ screen.StatusProvider = (*FormScreen)(nil)

// New creates a form screen over cfg.Set. A nil Set starts a fresh one with
// default options.
func New(cfg Config) *FormScreen {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Set == nil {
		cfg.Set = q.NewSet(q.DefaultOptions(cfg.Now()))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	f := &FormScreen{
		set:       cfg.Set,
		transport: cfg.Transport,
		probe:     cfg.Probe,
		logger:    cfg.Logger,
		now:       cfg.Now,
		editor:    components.NewTextInput("", false, 0),
		toast:     components.NewToast(cfg.ToastDuration),
		editorFor: target{kind: -1},
	}
	f.syncEditor()
	return f
}

// submittedMsg carries the outcome of a transport send.
type submittedMsg struct {
	Envelope submit.Envelope
	Err      error
}

func (f *FormScreen) Init() tea.Cmd {
	if !f.current().isEditor() {
		return nil
	}
	return f.editor.Init()
}

func (f *FormScreen) Title() string {
	return "Qualifications Details"
}

func (f *FormScreen) Status() string {
	complete := f.set.Len() - len(f.set.Problems())
	return fmt.Sprintf("%d of %d complete", complete, f.set.Len())
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab/↑↓", Description: "Move"}}
	switch f.current().kind {
	case kindSelect:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Choose"})
	case kindDocument:
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Attach"},
			layout.KeyHint{Key: "Ctrl+X", Description: "Detach"},
		)
	case kindRemove, kindAdd, kindSave:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Press"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Ctrl+N", Description: "Add"},
		layout.KeyHint{Key: "Ctrl+S", Description: "Submit"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
	return hints
}

// Set returns the set being edited.
func (f *FormScreen) Set() *q.Set {
	return f.set
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ToastExpiredMsg:
		f.toast.Update(msg)
		return f, nil

	case submittedMsg:
		return f.handleSubmitted(msg)

	case router.ResumedMsg:
		f.toast.Dismiss()
		return f, f.focusEditor()

	case tea.KeyMsg:
		return f.handleKey(msg)
	}

	if f.current().isEditor() {
		var cmd tea.Cmd
		f.editor, cmd = f.editor.Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *FormScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return f, f.submit()
	case "ctrl+n":
		return f, f.addEntry()
	case "ctrl+d":
		return f, f.removeEntry(f.current().entryID)
	case "tab", "down":
		return f, f.move(1)
	case "shift+tab", "up":
		return f, f.move(-1)
	}

	t := f.current()
	switch t.kind {
	case kindSelect:
		if msg.String() == "enter" {
			return f, f.move(1)
		}
		return f, f.updateSelect(t, msg)
	case kindText:
		if msg.String() == "enter" {
			return f, f.move(1)
		}
		return f, f.updateText(t, msg)
	case kindDocument:
		switch msg.String() {
		case "enter":
			return f, f.attach(t.entryID)
		case "ctrl+x":
			return f, f.detach(t.entryID)
		}
		var cmd tea.Cmd
		f.editor, cmd = f.editor.Update(msg)
		return f, cmd
	case kindRemove, kindAdd, kindSave:
		if msg.String() == "enter" || msg.String() == "space" {
			return f, f.press(t)
		}
	}
	return f, nil
}

// current returns the focused target.
func (f *FormScreen) current() target {
	ts := allTargets(f.set)
	f.focus = min(max(f.focus, 0), len(ts)-1)
	return ts[f.focus]
}

func (f *FormScreen) move(delta int) tea.Cmd {
	n := len(allTargets(f.set))
	f.focus = (f.focus + delta + n) % n
	return f.focusEditor()
}

// focusOn moves focus to the first target matching ok.
func (f *FormScreen) focusOn(ok func(target) bool) {
	for i, t := range allTargets(f.set) {
		if ok(t) {
			f.focus = i
			return
		}
	}
}

// focusEditor reseeds the shared editor when focus lands on a new text
// control and returns its focus command.
func (f *FormScreen) focusEditor() tea.Cmd {
	if !f.syncEditor() {
		return nil
	}
	return f.editor.Init()
}

func (f *FormScreen) syncEditor() bool {
	t := f.current()
	if !t.isEditor() {
		f.editorFor = target{kind: -1}
		return false
	}
	if t == f.editorFor {
		return false
	}
	f.editorFor = t

	value := ""
	if e, ok := f.set.Entry(t.entryID); ok {
		if t.kind == kindDocument {
			if e.Attachment != nil {
				value = e.Attachment.Handle
			}
		} else {
			value = fieldValue(e, t.field)
		}
	}

	hint := ""
	if t.kind == kindDocument {
		hint = "path/to/document.pdf"
	}
	f.editor = components.NewTextInput(hint, isNumeric(t.field), 0)
	f.editor.Reset(value)
	return true
}

func (f *FormScreen) updateSelect(t target, msg tea.KeyMsg) tea.Cmd {
	e, ok := f.set.Entry(t.entryID)
	if !ok {
		return nil
	}
	sel := components.NewSelect(placeholder, selectOptions(f.set.Options(), t.field), fieldValue(e, t.field))
	sel, changed := sel.Update(msg)
	if !changed {
		return nil
	}
	if err := f.set.SetField(t.entryID, t.field, sel.Value()); err != nil {
		return f.notifyErr(err)
	}
	return nil
}

func (f *FormScreen) updateText(t target, msg tea.KeyMsg) tea.Cmd {
	before := f.editor.Value()
	var cmd tea.Cmd
	f.editor, cmd = f.editor.Update(msg)
	value := f.editor.Value()
	if value == before {
		return cmd
	}

	if t.field == q.FieldPercentage && exceedsHundred(value) {
		f.editor.Reset(before)
		return tea.Batch(cmd, f.toast.Show(notify.Error(msgPercentLimit)))
	}
	if err := f.set.SetField(t.entryID, t.field, value); err != nil {
		f.editor.Reset(before)
		return tea.Batch(cmd, f.notifyErr(err))
	}
	return cmd
}

func exceedsHundred(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && v > 100
}

func (f *FormScreen) attach(id int) tea.Cmd {
	path := strings.TrimSpace(f.editor.Value())
	if path == "" {
		return nil
	}
	if f.probe == nil {
		return f.toast.Show(notify.Error("Document upload is not available"))
	}
	doc, err := f.probe(path)
	if err != nil {
		f.logger.Warn("probe document", "path", path, "error", err)
		return f.toast.Show(notify.Error(fmt.Sprintf("Cannot read %s", path)))
	}
	if err := f.set.AttachDocument(id, doc); err != nil {
		return f.notifyErr(err)
	}
	return f.toast.Show(notify.Info("Selected: " + doc.Filename))
}

func (f *FormScreen) detach(id int) tea.Cmd {
	if err := f.set.DetachDocument(id); err != nil {
		return f.notifyErr(err)
	}
	f.editor.Reset("")
	return nil
}

func (f *FormScreen) press(t target) tea.Cmd {
	switch t.kind {
	case kindRemove:
		return f.removeEntry(t.entryID)
	case kindAdd:
		return f.addEntry()
	case kindSave:
		return f.submit()
	}
	return nil
}

func (f *FormScreen) addEntry() tea.Cmd {
	e := f.set.AddEntry()
	f.focusOn(func(t target) bool { return t.entryID == e.ID })
	return f.focusEditor()
}

func (f *FormScreen) removeEntry(id int) tea.Cmd {
	entries := f.set.Entries()
	pos := -1
	for i, e := range entries {
		if e.ID == id {
			pos = i
		}
	}
	if pos < 0 || !f.set.RemoveEntry(id) {
		return nil
	}
	next := f.set.Entries()[min(pos, f.set.Len()-1)].ID
	f.focusOn(func(t target) bool { return t.entryID == next })
	f.editorFor = target{kind: -1}
	return f.focusEditor()
}

func (f *FormScreen) submit() tea.Cmd {
	if f.submitting {
		return nil
	}
	f.attempted = true

	snap, err := f.set.ValidateForSubmission()
	if err != nil {
		var verr *q.ValidationError
		if errors.As(err, &verr) && len(verr.Failures) > 0 {
			first := verr.Failures[0]
			f.focusOn(func(t target) bool { return t.entryID == first.EntryID && t.field == first.Field })
			return tea.Batch(
				f.focusEditor(),
				f.toast.Show(notify.Error(fmt.Sprintf("Please fix %d field(s) before submitting", len(verr.Failures)))),
			)
		}
		return f.notifyErr(err)
	}

	env := submit.NewEnvelope(snap, f.now())
	if f.transport == nil {
		return func() tea.Msg { return submittedMsg{Envelope: env} }
	}
	f.submitting = true
	transport := f.transport
	return func() tea.Msg {
		return submittedMsg{Envelope: env, Err: transport.Send(context.Background(), env)}
	}
}

func (f *FormScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	f.submitting = false
	if msg.Err != nil {
		f.logger.Error("submit", "id", msg.Envelope.ID, "error", msg.Err)
		return f, f.toast.Show(notify.Error("Submission failed: " + msg.Err.Error()))
	}
	f.logger.Info("submitted", "id", msg.Envelope.ID, "entries", len(msg.Envelope.Entries))
	return f, tea.Batch(
		f.toast.Show(notify.Success(msgSubmitted)),
		func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(msg.Envelope, msgSubmitted)}
		},
	)
}

// notifyErr turns a model error into a user-facing toast.
func (f *FormScreen) notifyErr(err error) tea.Cmd {
	var text string
	switch {
	case errors.Is(err, q.ErrFileTooLarge):
		text = fmt.Sprintf("File size exceeds %s limit", sizeLabel(f.set.Options().MaxDocumentSize))
	case errors.Is(err, q.ErrUnsupportedFileType):
		text = msgNotPDF
	default:
		text = err.Error()
	}
	return f.toast.Show(notify.Error(text))
}

// sizeLabel formats a byte limit the way the upload hint shows it.
func sizeLabel(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	if n >= 1024 && n%1024 == 0 {
		return fmt.Sprintf("%dKB", n/1024)
	}
	return fmt.Sprintf("%d bytes", n)
}
