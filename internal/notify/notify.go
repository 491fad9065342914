// Package notify carries short-lived user feedback from the form to
// whatever displays it.
package notify

// Severity ranks a notification for display.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is one message for the user.
type Notification struct {
	Message  string
	Severity Severity
}

func Info(msg string) Notification    { return Notification{Message: msg, Severity: SeverityInfo} }
func Success(msg string) Notification { return Notification{Message: msg, Severity: SeveritySuccess} }
func Error(msg string) Notification   { return Notification{Message: msg, Severity: SeverityError} }

// Center holds the notification currently on screen. A newer notification
// replaces the older one; Dismiss only closes the notification it was issued
// for, so a stale timer cannot hide a newer message.
type Center struct {
	current Notification
	seq     uint64
	open    bool
}

// Publish shows n and returns its sequence number.
func (c *Center) Publish(n Notification) uint64 {
	c.seq++
	c.current = n
	c.open = true
	return c.seq
}

// Dismiss closes the notification with sequence seq if it is still showing.
func (c *Center) Dismiss(seq uint64) {
	if c.open && seq == c.seq {
		c.open = false
	}
}

// Close hides whatever is showing.
func (c *Center) Close() {
	c.open = false
}

// Current returns the notification on screen, if any.
func (c *Center) Current() (Notification, bool) {
	return c.current, c.open
}
