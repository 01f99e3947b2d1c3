package ssh

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	gliderssh "github.com/charmbracelet/ssh"
	gossh "golang.org/x/crypto/ssh"

	"github.com/morenav/morenav/internal/menu"
	"github.com/morenav/morenav/internal/metrics"
	"github.com/morenav/morenav/internal/tui"
)

type countingRecorder struct {
	mu      sync.Mutex
	started int
	ended   int
}

func (c *countingRecorder) ObserveProbe(menu.Dimensions)       {}
func (c *countingRecorder) ObserveResolve(menu.Dimensions, int) {}

func (c *countingRecorder) SessionStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started++
}

func (c *countingRecorder) SessionEnded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ended++
}

func (c *countingRecorder) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started, c.ended
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServerServesNavOverSSH(t *testing.T) {
	rec := &countingRecorder{}
	bus := tui.NewEventBus(16)
	srv, err := New(Config{
		Addr:       "127.0.0.1:0",
		HostKeyDir: t.TempDir(),
		Items:      menu.DefaultItems(),
		Gap:        menu.DefaultGap,
		Recorder:   rec,
	}, bus)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(ctx, ln) }()

	client, err := gossh.Dial("tcp", ln.Addr().String(), &gossh.ClientConfig{
		User:            "alice",
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	if err != nil {
		cancel()
		t.Fatalf("dial: %v", err)
	}

	session, err := client.NewSession()
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if err := session.RequestPty("xterm-256color", 24, 100, gossh.TerminalModes{}); err != nil {
		t.Fatalf("pty: %v", err)
	}
	var out syncBuffer
	session.Stdout = &out
	if err := session.Shell(); err != nil {
		t.Fatalf("shell: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "morenav") {
		if time.Now().After(deadline) {
			t.Fatalf("no nav bar rendered; got %q", out.String())
		}
		time.Sleep(20 * time.Millisecond)
	}
	if started, _ := rec.counts(); started != 1 {
		t.Fatalf("sessions started = %d, want 1", started)
	}

	session.Close()
	client.Close()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
	deadline = time.Now().Add(5 * time.Second)
	for {
		if _, ended := rec.counts(); ended == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("session end was not recorded")
		}
		time.Sleep(20 * time.Millisecond)
	}
	if n := bus.Subscribers(); n != 0 {
		t.Fatalf("bus subscribers = %d after session end, want 0", n)
	}
}

func TestFinalModelFallsBackToInitial(t *testing.T) {
	bus := tui.NewEventBus(4)
	cfg := Config{Items: menu.DefaultItems(), Gap: menu.DefaultGap, Logger: slog.Default(), Recorder: metrics.Nop{}}
	initial := newSessionModel(cfg, bus, "bob", gliderssh.Window{Width: 80, Height: 24})
	if bus.Subscribers() != 1 {
		t.Fatalf("bus subscribers = %d, want 1", bus.Subscribers())
	}

	finalModel(nil, initial).Close()
	if n := bus.Subscribers(); n != 0 {
		t.Fatalf("bus subscribers = %d after close, want 0", n)
	}
}

func TestServeReportsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	srv, err := New(Config{Addr: ln.Addr().String(), HostKeyDir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := srv.Serve(context.Background()); err == nil {
		t.Fatal("expected error binding a busy address")
	}
}
