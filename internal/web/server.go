package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"

	"github.com/morenav/morenav/internal/menu"
	"github.com/morenav/morenav/internal/retry"
	"github.com/morenav/morenav/internal/tui"
)

//go:embed static
var staticFS embed.FS

const (
	shutdownTimeout = 5 * time.Second
	maxBarWidth     = 1000
)

// DefaultDialPolicy retries the local SSH dial while the SSH server is still
// coming up.
var DefaultDialPolicy = retry.Policy{Attempts: 5, Base: 100 * time.Millisecond, Max: 2 * time.Second}

// Config holds web terminal server configuration.
type Config struct {
	Addr    string // HTTP listen address, e.g. ":8080"
	SSHAddr string // local SSH server address for bridging, e.g. "127.0.0.1:2222"
	Logger  *slog.Logger

	// Metrics serves /metrics when set.
	Metrics http.Handler
	// Items and Gap back the plain-text /bar endpoint.
	Items []menu.Item
	Gap   int

	DialPolicy retry.Policy
}

// Server serves the xterm.js web terminal and bridges WebSocket connections
// to the local SSH server.
type Server struct {
	httpSrv *http.Server
	cfg     Config
}

// New creates a new web terminal server.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DialPolicy.Attempts == 0 {
		cfg.DialPolicy = DefaultDialPolicy
	}

	sub, _ := fs.Sub(staticFS, "static")
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(sub)))
	mux.HandleFunc("/ws", handleWebSocket(cfg))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/bar", handleBar(cfg))
	if cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics)
	}

	return &Server{
		httpSrv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		cfg: cfg,
	}
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Serve listens on the configured address until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("web listen %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.cfg.Logger.Info("web terminal listening", "addr", ln.Addr().String())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.cfg.Logger.Info("shutting down web server")
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleBar renders the nav bar for ?width=N columns as plain text, with the
// overflow dropdown expanded.
func handleBar(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		width := 80
		if v := r.URL.Query().Get("width"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > maxBarWidth {
				http.Error(w, "width must be an integer between 1 and 1000", http.StatusBadRequest)
				return
			}
			width = n
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(tui.RenderBar(cfg.Items, cfg.Gap, width) + "\n"))
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: websocketCheckOrigin,
}

type resizeMsg struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// dialSSH connects to the local SSH server, retrying while it starts.
func dialSSH(ctx context.Context, cfg Config, user string) (*gossh.Client, error) {
	sshConfig := &gossh.ClientConfig{
		User:            user,
		Auth:            []gossh.AuthMethod{gossh.Password("")},
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	}

	var client *gossh.Client
	err := retry.Do(ctx, cfg.DialPolicy, func(attempt int) error {
		c, err := gossh.Dial("tcp", cfg.SSHAddr, sshConfig)
		if err != nil {
			cfg.Logger.Debug("ssh dial failed", "attempt", attempt, "error", err)
			return err
		}
		client = c
		return nil
	})
	return client, err
}

// handleWebSocket bridges a WebSocket connection to the local SSH server.
// Each connection gets its own SSH session with a PTY, providing a full TUI.
//
// Protocol:
//   - Client text messages  -> terminal input (stdin)
//   - Client binary messages -> JSON control (resize: {"cols":N,"rows":N})
//   - Server binary messages -> terminal output (stdout)
func handleWebSocket(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			cfg.Logger.Error("websocket upgrade failed", "error", err)
			return
		}
		defer ws.Close()

		sshClient, err := dialSSH(r.Context(), cfg, "web")
		if err != nil {
			cfg.Logger.Error("ssh dial failed", "error", err, "addr", cfg.SSHAddr)
			_ = ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "terminal unavailable"))
			return
		}
		defer sshClient.Close()

		session, err := sshClient.NewSession()
		if err != nil {
			cfg.Logger.Error("ssh session failed", "error", err)
			return
		}
		defer session.Close()

		// The client sends its size first.
		cols, rows := 80, 24
		ws.SetReadDeadline(deadlineForInitialResize())
		msgType, msg, err := ws.ReadMessage()
		ws.SetReadDeadline(noDeadline())
		if err == nil && msgType == websocket.BinaryMessage {
			if sz, ok := parseResize(msg); ok {
				cols, rows = sz.Cols, sz.Rows
			}
		}

		if err := session.RequestPty("xterm-256color", rows, cols, gossh.TerminalModes{
			gossh.ECHO: 1,
		}); err != nil {
			cfg.Logger.Error("ssh pty request failed", "error", err)
			return
		}

		stdin, err := session.StdinPipe()
		if err != nil {
			cfg.Logger.Error("ssh stdin pipe failed", "error", err)
			return
		}

		stdout, err := session.StdoutPipe()
		if err != nil {
			cfg.Logger.Error("ssh stdout pipe failed", "error", err)
			return
		}

		if err := session.Shell(); err != nil {
			cfg.Logger.Error("ssh shell failed", "error", err)
			return
		}

		// SSH stdout -> WebSocket.
		done := make(chan struct{})
		go func() {
			defer close(done)
			buf := make([]byte, 32*1024)
			for {
				n, err := stdout.Read(buf)
				if n > 0 {
					if werr := ws.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
						return
					}
				}
				if err != nil {
					return
				}
			}
		}()

		// WebSocket -> SSH stdin (text=input, binary=resize).
	loop:
		for {
			msgType, msg, err := ws.ReadMessage()
			if err != nil {
				break
			}
			if len(msg) == 0 {
				continue
			}

			switch msgType {
			case websocket.TextMessage:
				if _, err := stdin.Write(msg); err != nil {
					break loop
				}
			case websocket.BinaryMessage:
				if sz, ok := parseResize(msg); ok {
					_ = session.WindowChange(sz.Rows, sz.Cols)
				}
			}
		}

		stdin.Close()
		session.Close()
		<-done
	}
}

func parseResize(msg []byte) (resizeMsg, bool) {
	var sz resizeMsg
	if err := json.Unmarshal(msg, &sz); err != nil {
		return resizeMsg{}, false
	}
	return sz, sz.Cols > 0 && sz.Rows > 0
}
