package app

import (
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/credform/internal/qualification"
	"github.com/abhisek/credform/internal/router"
	"github.com/abhisek/credform/internal/screen"
	"github.com/abhisek/credform/internal/screens/form"
	"github.com/abhisek/credform/internal/submit"
	"github.com/abhisek/credform/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Set       *qualification.Set
	Transport submit.Transport
	Probe     func(path string) (qualification.Document, error)
	Logger    *slog.Logger
	Now       func() time.Time
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the form screen.
func newAppModel(opts Options) AppModel {
	formScreen := form.New(form.Config{
		Set:       opts.Set,
		Transport: opts.Transport,
		Probe:     opts.Probe,
		Logger:    opts.Logger,
		Now:       opts.Now,
	})
	return AppModel{
		router: router.New(formScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	switch {
	case m.width == 0 || m.height == 0:
		return ""
	case layout.IsTooSmall(m.width, m.height):
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)
	body := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	return layout.RenderFrame(header, m.router.View(m.width, body), footer, m.width, m.height)
}

// hints returns the footer hints for s, falling back to the global keys.
func (m AppModel) hints(s screen.Screen) []layout.KeyHint {
	if kp, ok := s.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{quit}
}

// Run blocks until the user quits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
