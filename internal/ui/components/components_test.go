package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/credform/internal/notify"
)

func TestSelectStartsOnPlaceholder(t *testing.T) {
	s := NewSelect("--Please Select--", []string{"CGPA", "Grade", "Marks"}, "")
	assert.Equal(t, "", s.Value())
	assert.Contains(t, s.View(false), "--Please Select--")
}

func TestSelectPositionsOnValue(t *testing.T) {
	s := NewSelect("--Please Select--", []string{"CGPA", "Grade", "Marks"}, "Grade")
	assert.Equal(t, "Grade", s.Value())
}

func TestSelectCyclesThroughPlaceholder(t *testing.T) {
	s := NewSelect("--Please Select--", []string{"CGPA", "Grade"}, "")

	var changed bool
	s, changed = s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	require.True(t, changed)
	assert.Equal(t, "CGPA", s.Value())

	s, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	s, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, "", s.Value(), "wraps back to the placeholder")

	s, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, "Grade", s.Value())
}

func TestSelectIgnoresOtherKeys(t *testing.T) {
	s := NewSelect("--Please Select--", []string{"CGPA"}, "")
	s, changed := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.False(t, changed)
	assert.Equal(t, "", s.Value())
}

func TestTextInputNumericOnly(t *testing.T) {
	ti := NewTextInput("", true, 0)
	for _, r := range "9a5.x5" {
		ti, _ = ti.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	assert.Equal(t, "95.5", ti.Value())
}

func TestTextInputNumericRejectsSpace(t *testing.T) {
	ti := NewTextInput("", true, 0)
	for _, k := range []tea.KeyPressMsg{
		{Code: '4', Text: "4"},
		{Code: tea.KeySpace, Text: " "},
		{Code: '2', Text: "2"},
	} {
		ti, _ = ti.Update(k)
	}
	assert.Equal(t, "42", ti.Value())

	ti, _ = ti.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	assert.Equal(t, "4", ti.Value())
}

func TestTextInputNumericRejectsSecondPoint(t *testing.T) {
	ti := NewTextInput("", true, 0)
	for _, r := range "-8.5.1-" {
		ti, _ = ti.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	assert.Equal(t, "-8.51", ti.Value())
}

func TestTextInputReset(t *testing.T) {
	ti := NewTextInput("", false, 0)
	ti.Reset("Delhi University")
	assert.Equal(t, "Delhi University", ti.Value())
}

func TestCompletionRatio(t *testing.T) {
	assert.Equal(t, 0.0, Completion{Complete: 0, Total: 0}.Ratio())
	assert.Equal(t, 0.5, Completion{Complete: 1, Total: 2}.Ratio())
	assert.Contains(t, Completion{Complete: 2, Total: 2, Width: 40}.View(), "2/2 complete")
}

func TestButtonPressable(t *testing.T) {
	b := NewButton("Save & Next")
	assert.False(t, b.Pressable())
	b.Focused = true
	assert.True(t, b.Pressable())
	b.Disabled = true
	assert.False(t, b.Pressable())
}

func TestToastExpiresOnlyItsOwnMessage(t *testing.T) {
	toast := NewToast(0)
	require.NotNil(t, toast.Show(notify.Error("File size exceeds 2MB limit")))
	toast.Show(notify.Success("Form submitted successfully!"))

	toast.Update(ToastExpiredMsg{Seq: 1})
	n, ok := toast.Current()
	require.True(t, ok, "stale expiry must not hide the newer toast")
	assert.Equal(t, "Form submitted successfully!", n.Message)
	assert.Contains(t, toast.View(), "Form submitted successfully!")

	toast.Update(ToastExpiredMsg{Seq: 2})
	_, ok = toast.Current()
	assert.False(t, ok)
	assert.Empty(t, toast.View())
}
