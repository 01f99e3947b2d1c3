package ssh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/morenav/morenav/internal/menu"
	"github.com/morenav/morenav/internal/metrics"
	"github.com/morenav/morenav/internal/tui"
)

const shutdownTimeout = 5 * time.Second

// Config holds SSH server configuration.
type Config struct {
	Addr       string // listen address, e.g. ":2222"
	HostKeyDir string // directory to store/read host keys
	Logger     *slog.Logger

	Items    []menu.Item
	Gap      int
	Recorder metrics.Recorder
}

// Server wraps a Wish SSH server that serves one nav bar per session.
type Server struct {
	srv    *ssh.Server
	logger *slog.Logger
}

// New creates a new SSH server. Each session gets its own dashboard model
// subscribed to the shared EventBus, released when the session ends.
func New(cfg Config, bus *tui.EventBus) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.Nop{}
	}

	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Addr),
		wish.WithHostKeyPath(filepath.Join(cfg.HostKeyDir, "ssh_host_key")),
		wish.WithMiddleware(
			teaMiddleware(cfg, bus),
			activeterm.Middleware(),
			sessionMiddleware(cfg.Logger, cfg.Recorder),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("wish server: %w", err)
	}

	return &Server{srv: srv, logger: cfg.Logger}, nil
}

// teaMiddleware runs one dashboard program per session. The model the program
// finished with is closed once Run returns, so teardown never overlaps Update.
func teaMiddleware(cfg Config, bus *tui.EventBus) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			pty, windowChanges, ok := s.Pty()
			if !ok {
				wish.Fatalln(s, "no active terminal, skipping")
				return
			}

			model := newSessionModel(cfg, bus, s.User(), pty.Window)
			opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, bm.MakeOptions(s)...)
			p := tea.NewProgram(model, opts...)

			ctx, cancel := context.WithCancel(s.Context())
			go func() {
				for {
					select {
					case <-ctx.Done():
						p.Quit()
						return
					case w := <-windowChanges:
						p.Send(tea.WindowSizeMsg{Width: w.Width, Height: w.Height})
					}
				}
			}()

			final, err := p.Run()
			if err != nil {
				cfg.Logger.Error("session program exited", "user", s.User(), "error", err)
			}
			p.Kill()
			cancel()
			finalModel(final, model).Close()
			next(s)
		}
	}
}

func newSessionModel(cfg Config, bus *tui.EventBus, user string, win ssh.Window) tui.Model {
	model := tui.New(tui.Options{
		Items:    cfg.Items,
		Bus:      bus,
		Gap:      cfg.Gap,
		Recorder: cfg.Recorder,
		Logger:   cfg.Logger.With("session", user),
		Session:  user,
	})
	model.SetSize(win.Width, win.Height)
	return model
}

// finalModel picks the model to tear down: the one Run returned, or the
// initial model when the program never produced one.
func finalModel(final tea.Model, initial tui.Model) tui.Model {
	if m, ok := final.(tui.Model); ok {
		return m
	}
	return initial
}

// sessionMiddleware logs and counts sessions around the rest of the chain.
func sessionMiddleware(logger *slog.Logger, rec metrics.Recorder) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			start := time.Now()
			rec.SessionStarted()
			logger.Info("ssh session started", "user", s.User(), "remote", s.RemoteAddr().String())
			defer func() {
				rec.SessionEnded()
				logger.Info("ssh session ended", "user", s.User(), "duration", time.Since(start).Round(time.Millisecond))
			}()
			next(s)
		}
	}
}

// Serve accepts SSH connections until ctx is canceled, then shuts down.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("ssh listen %s: %w", s.srv.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("SSH server listening", "addr", ln.Addr().String())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down SSH server")
		if err := s.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			_ = s.srv.Close()
			return fmt.Errorf("ssh shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}
