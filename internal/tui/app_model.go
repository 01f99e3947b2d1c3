package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morenav/morenav/internal/menu"
	"github.com/morenav/morenav/internal/metrics"
)

// Screen identifies which top-level screen is active.
type Screen int

const (
	ScreenLoading   Screen = iota // Backend starting
	ScreenDashboard               // Nav bar and panels
)

// Backend is what a started backend hands to the dashboard.
type Backend struct {
	Items    []menu.Item
	Gap      int
	Recorder metrics.Recorder
	Logger   *slog.Logger
	Cleanup  func()
}

// StartBackendFunc is the signature for the function that starts backend services.
type StartBackendFunc func(bus *EventBus) (Backend, error)

// backendStartedMsg carries the result of starting the backend.
type backendStartedMsg struct {
	bus     *EventBus
	backend Backend
	err     error
}

// AppModel is the root Bubble Tea model for the local terminal. It starts the
// backend, then hands over to the dashboard.
type AppModel struct {
	screen       Screen
	dashboard    Model
	startBackend StartBackendFunc
	cleanup      func()
	width        int
	height       int
	err          error
}

// NewApp creates the root application model.
func NewApp(startBackend StartBackendFunc) AppModel {
	return AppModel{
		screen:       ScreenLoading,
		startBackend: startBackend,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.startBackendCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.screen == ScreenDashboard {
			dm, cmd := m.dashboard.Update(msg)
			m.dashboard = dm.(Model)
			return m, cmd
		}
		return m, nil

	case backendStartedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.cleanup = msg.backend.Cleanup
		m.screen = ScreenDashboard
		m.dashboard = New(Options{
			Items:    msg.backend.Items,
			Bus:      msg.bus,
			Gap:      msg.backend.Gap,
			Recorder: msg.backend.Recorder,
			Logger:   msg.backend.Logger,
		})
		if m.width > 0 {
			m.dashboard.SetSize(m.width, m.height)
		}
		return m, m.dashboard.Init()

	case tea.KeyMsg:
		if m.screen != ScreenDashboard {
			if msg.String() == "ctrl+c" || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	if m.screen == ScreenDashboard {
		dm, cmd := m.dashboard.Update(msg)
		m.dashboard = dm.(Model)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) View() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n\nPress q to exit."
	}

	switch m.screen {
	case ScreenLoading:
		return "\n  Loading menu..."
	case ScreenDashboard:
		return m.dashboard.View()
	}
	return ""
}

// Shutdown closes the dashboard and runs the backend cleanup. Call it on the
// final model once the program has exited.
func (m AppModel) Shutdown() {
	if m.screen == ScreenDashboard {
		m.dashboard.Close()
	}
	if m.cleanup != nil {
		m.cleanup()
	}
}

func (m AppModel) startBackendCmd() tea.Cmd {
	startFn := m.startBackend
	return func() tea.Msg {
		bus := NewEventBus(512)
		backend, err := startFn(bus)
		return backendStartedMsg{bus: bus, backend: backend, err: err}
	}
}
