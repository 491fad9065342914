// Package router keeps the stack of screens shown by the app. Only the top
// screen receives messages and is drawn.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/credform/internal/screen"
)

// PushScreenMsg asks the router to show Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to return to the previous screen.
type PopScreenMsg struct{}

// ResumedMsg is sent to a screen that is on top again after a pop.
type ResumedMsg struct{}

// Router is a stack of screens. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push shows s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the top screen and returns a command that resumes the one
// below. It returns nil when only the root is left.
func (r *Router) Pop() tea.Cmd {
	if r.top() < 1 {
		return nil
	}
	r.stack[r.top()] = nil
	r.stack = r.stack[:r.top()]
	return func() tea.Msg { return ResumedMsg{} }
}

// Active returns the screen on top, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if r.top() < 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update handles push and pop requests and hands every other message to
// the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	}
	if r.top() < 0 {
		return nil
	}
	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
