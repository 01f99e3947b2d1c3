package tui

import (
	"strings"
	"testing"
	"time"
)

func TestEventBus_BroadcastsToAllSubscribers(t *testing.T) {
	bus := NewEventBus(8)
	sub1, cancel1 := bus.Subscribe()
	defer cancel1()
	sub2, cancel2 := bus.Subscribe()
	defer cancel2()

	want := Event{Type: EventLog, Data: LogEvent{Level: "INFO", Message: "hello"}}
	bus.Publish(want)

	select {
	case got := <-sub1:
		if got.Type != want.Type {
			t.Fatalf("sub1 type = %v, want %v", got.Type, want.Type)
		}
		if got.Timestamp.IsZero() {
			t.Fatal("publish should stamp the event")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for sub1 event")
	}

	select {
	case got := <-sub2:
		if got.Type != want.Type {
			t.Fatalf("sub2 type = %v, want %v", got.Type, want.Type)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for sub2 event")
	}
}

func TestEventBus_CancelClosesChannel(t *testing.T) {
	bus := NewEventBus(8)
	sub, cancel := bus.Subscribe()
	if bus.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", bus.Subscribers())
	}

	cancel()
	cancel()
	if bus.Subscribers() != 0 {
		t.Fatalf("subscribers = %d, want 0", bus.Subscribers())
	}
	if _, ok := <-sub; ok {
		t.Fatal("channel still open after cancel")
	}

	bus.PublishLog("info", "after cancel", nil)
}

func TestEventBus_SlowSubscriberDrops(t *testing.T) {
	bus := NewEventBus(1)
	sub, cancel := bus.Subscribe()
	defer cancel()

	bus.PublishLog("info", "first", nil)
	bus.PublishLog("info", "second", nil)

	got := <-sub
	if le := got.Data.(LogEvent); le.Message != "first" {
		t.Fatalf("message = %q, want first", le.Message)
	}
	select {
	case e := <-sub:
		t.Fatalf("unexpected buffered event %+v", e)
	default:
	}
}

func TestLogs_FormatsNavigateEvent(t *testing.T) {
	l := newLogsModel()
	l.width = 80
	l.height = 6
	l.addEntry(Event{
		Type:      EventNavigate,
		Timestamp: time.Now(),
		Data:      NavigateEvent{Session: "alice", ItemID: "docs", Href: "/docs"},
	})

	view := l.View()
	for _, s := range []string{"NAV", "alice", "docs", "(/docs)"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q:\n%s", s, view)
		}
	}
}

func TestLogs_FormatsFieldsSorted(t *testing.T) {
	got := formatFields(map[string]any{"b": 2, "a": "x"})
	if got != " a=x b=2" {
		t.Fatalf("formatFields = %q", got)
	}
}

func TestLogs_KeepsTail(t *testing.T) {
	l := newLogsModel()
	l.height = 4
	for i := 0; i < maxLogEntries+10; i++ {
		l.addEntry(Event{Type: EventLog, Data: LogEvent{Level: "info", Message: "x"}})
	}
	if len(l.entries) != maxLogEntries {
		t.Fatalf("entries = %d, want %d", len(l.entries), maxLogEntries)
	}
	if l.offset != maxLogEntries-2 {
		t.Fatalf("offset = %d, want %d", l.offset, maxLogEntries-2)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 5, "hell…"},
		{"a\nb", 5, "a b"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
