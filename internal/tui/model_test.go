package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morenav/morenav/internal/menu"
)

func newTestModel(t *testing.T, bus *EventBus) Model {
	t.Helper()
	m := New(Options{Items: testItems(), Bus: bus, Gap: menu.DefaultGap, Session: "test"})
	t.Cleanup(m.Close)
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	tm, cmd := m.Update(msg)
	return tm.(Model), cmd
}

func TestModelNotReadyBeforeSize(t *testing.T) {
	m := newTestModel(t, nil)
	if !strings.Contains(m.View(), "Initializing") {
		t.Fatalf("unexpected view before size: %q", m.View())
	}
	if m.Init() == nil {
		t.Fatal("expected init cmd")
	}
}

func TestModelResizeReachesNav(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 30, Height: 24})
	m, _ = update(m, mountedMsg{gen: m.nav.gen})
	if got := m.nav.tracker.Last(); got != 1 {
		t.Fatalf("last at 30 = %d, want 1", got)
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 24})
	if got := m.nav.tracker.Last(); got != 3 {
		t.Fatalf("last at 120 = %d, want 3", got)
	}
	m, _ = update(m, tea.WindowSizeMsg{Width: 25, Height: 24})
	if got := m.nav.tracker.Last(); got != 0 {
		t.Fatalf("last at 25 = %d, want 0", got)
	}
}

func TestModelNavigatePublishes(t *testing.T) {
	bus := NewEventBus(8)
	m := newTestModel(t, bus)
	watch, cancel := bus.Subscribe()
	defer cancel()

	item := menu.Item{ID: "docs", Name: "Docs", Href: "/docs"}
	m, _ = update(m, navigateMsg{Item: item})
	if m.active.ID != "docs" {
		t.Fatalf("active = %q, want docs", m.active.ID)
	}

	select {
	case e := <-watch:
		ne, ok := e.Data.(NavigateEvent)
		if e.Type != EventNavigate || !ok {
			t.Fatalf("got %+v, want navigate event", e)
		}
		if ne.Session != "test" || ne.ItemID != "docs" || ne.Href != "/docs" {
			t.Fatalf("navigate event = %+v", ne)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("no navigate event published")
	}
}

func TestModelEventsReachLogs(t *testing.T) {
	m := newTestModel(t, NewEventBus(8))
	m, cmd := update(m, eventMsg(Event{Type: EventLog, Data: LogEvent{Level: "info", Message: "hello"}}))
	if len(m.logs.entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(m.logs.entries))
	}
	if cmd == nil {
		t.Fatal("expected listener to be re-armed")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = update(m, mountedMsg{gen: m.nav.gen})

	view := m.View()
	for _, s := range []string{brandLabel, "Welcome", "Fit", "measured", "Activity"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q", s)
		}
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 40, Height: 30})
	if strings.Contains(m.View(), "Fit") {
		t.Error("compact layout should drop the fit panel")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !m.help.ShowAll {
		t.Fatal("expected full help")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestModelCloseReleasesSubscriptions(t *testing.T) {
	bus := NewEventBus(8)
	m := New(Options{Items: testItems(), Bus: bus})
	if bus.Subscribers() != 1 || m.signal.Len() != 1 {
		t.Fatalf("subscriptions = %d/%d, want 1/1", bus.Subscribers(), m.signal.Len())
	}

	m.Close()
	if bus.Subscribers() != 0 {
		t.Fatalf("bus subscribers = %d after close", bus.Subscribers())
	}
	if m.signal.Len() != 0 {
		t.Fatalf("signal subscribers = %d after close", m.signal.Len())
	}
	if msg := listenForEvents(m.sub)(); msg != nil {
		t.Fatalf("closed listener returned %T", msg)
	}
}

func TestModelCloseAfterRemountReleasesLiveSubscription(t *testing.T) {
	bus := NewEventBus(8)
	m := New(Options{Items: testItems(), Bus: bus})
	m.SetSize(80, 24)

	hide := tea.KeyMsg{Type: tea.KeyCtrlB}
	m, _ = update(m, hide)
	m, _ = update(m, hide)
	if m.signal.Len() != 1 {
		t.Fatalf("signal subscribers after remount = %d, want 1", m.signal.Len())
	}

	m.Close()
	if m.signal.Len() != 0 {
		t.Fatalf("signal subscribers = %d after close", m.signal.Len())
	}
	if m.nav.tracker.Attached() {
		t.Fatal("tracker still attached after close")
	}
	if bus.Subscribers() != 0 {
		t.Fatalf("bus subscribers = %d after close", bus.Subscribers())
	}
}
