package components

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/credform/internal/notify"
	"github.com/abhisek/credform/internal/ui/theme"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 6 * time.Second

// ToastExpiredMsg is sent when the toast with Seq should auto-hide.
type ToastExpiredMsg struct {
	Seq uint64
}

// Toast renders the most recent notification and hides it after
// ToastDuration unless a newer one replaced it.
type Toast struct {
	center   notify.Center
	duration time.Duration
}

// NewToast creates an empty toast that hides after d, or after
// ToastDuration when d is not positive.
func NewToast(d time.Duration) Toast {
	if d <= 0 {
		d = ToastDuration
	}
	return Toast{duration: d}
}

// Show displays n and returns the command that expires it.
func (t *Toast) Show(n notify.Notification) tea.Cmd {
	seq := t.center.Publish(n)
	d := t.duration
	if d <= 0 {
		d = ToastDuration
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}

// Update hides the toast on its own expiry message.
func (t *Toast) Update(msg tea.Msg) {
	if m, ok := msg.(ToastExpiredMsg); ok {
		t.center.Dismiss(m.Seq)
	}
}

// Dismiss hides the toast immediately.
func (t *Toast) Dismiss() {
	t.center.Close()
}

// Current returns the visible notification, if any.
func (t Toast) Current() (notify.Notification, bool) {
	return t.center.Current()
}

// View renders the toast or "" when nothing is showing.
func (t Toast) View() string {
	n, ok := t.center.Current()
	if !ok {
		return ""
	}
	switch n.Severity {
	case notify.SeveritySuccess:
		return theme.ToastSuccess.Render("✓ " + n.Message)
	case notify.SeverityError:
		return theme.ToastError.Render("✗ " + n.Message)
	default:
		return theme.ToastInfo.Render(n.Message)
	}
}
