package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morenav/morenav/internal/menu"
	"github.com/morenav/morenav/internal/metrics"
)

// eventMsg wraps an Event for the Bubble Tea message loop.
type eventMsg Event

// Options configures a dashboard model.
type Options struct {
	Items    []menu.Item
	Bus      *EventBus
	Gap      int
	Recorder metrics.Recorder
	Logger   *slog.Logger
	// Session names the viewer in navigation events, e.g. an SSH user.
	Session string
}

// Model is the dashboard: the responsive nav bar, the page for the active
// link, the fit panel and the activity log.
type Model struct {
	bus     *EventBus
	sub     <-chan Event
	unsub   func()
	signal  *menu.Signal
	nav     navModel
	logs    logsModel
	help    help.Model
	logger  *slog.Logger
	session string
	active  menu.Item
	width   int
	height  int
	ready   bool
}

// New creates a dashboard model. Call Close when the program exits.
func New(opts Options) Model {
	var (
		sub   <-chan Event
		unsub func()
	)
	if opts.Bus != nil {
		sub, unsub = opts.Bus.Subscribe()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gap := opts.Gap
	if gap < 0 {
		gap = menu.DefaultGap
	}

	signal := menu.NewSignal()
	return Model{
		bus:     opts.Bus,
		sub:     sub,
		unsub:   unsub,
		signal:  signal,
		nav:     newNavModel(opts.Items, signal, opts.Recorder, gap),
		logs:    newLogsModel(),
		help:    help.New(),
		logger:  logger,
		session: opts.Session,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listenForEvents(m.sub),
		m.nav.mountCmd(),
	)
}

// Close releases the bus subscription and the resize subscription.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
	m.nav.detach()
}

// SetSize applies a terminal size outside the message loop.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true
	m.signal.Notify(width)
	m.nav.setWidth(width)
	m.help.Width = width
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		var cmd tea.Cmd
		m.nav, cmd = m.nav.Update(msg)
		return m, cmd

	case navigateMsg:
		m.active = msg.Item
		m.logger.Debug("navigate", "item", msg.Item.ID, "href", msg.Item.Href, "session", m.session)
		if m.bus != nil {
			m.bus.Publish(Event{
				Type: EventNavigate,
				Data: NavigateEvent{Session: m.session, ItemID: msg.Item.ID, Href: msg.Item.Href},
			})
		}
		return m, nil

	case eventMsg:
		m.logs.addEntry(Event(msg))
		return m, listenForEvents(m.sub)
	}

	var cmd tea.Cmd
	m.nav, cmd = m.nav.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing morenav..."
	}

	var parts []string
	headerRows := 0
	if header := m.nav.View(); header != "" {
		parts = append(parts, header)
		headerRows = 1 + m.nav.panelHeight()
	}

	pageH, logH := bodyHeights(m.height, headerRows+lipgloss.Height(m.help.View(keys))-1)
	left, right := layoutColumns(m.width, layoutMode(m.width))

	top := pageView(m.active, left, pageH)
	if right > 0 {
		top = lipgloss.JoinHorizontal(lipgloss.Top, top, fitView(m.nav, right, pageH))
	}

	m.logs.width = m.width - 2
	m.logs.height = logH - 2

	parts = append(parts, top, m.logs.View(), m.help.View(keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// --- tea.Cmd helpers ---

func listenForEvents(sub <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if sub == nil {
			return nil
		}
		e, ok := <-sub
		if !ok {
			return nil
		}
		return eventMsg(e)
	}
}
