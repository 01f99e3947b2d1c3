package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/morenav/morenav/internal/app"
	"github.com/morenav/morenav/internal/config"
	sshsrv "github.com/morenav/morenav/internal/ssh"
	"github.com/morenav/morenav/internal/tui"
	"github.com/morenav/morenav/internal/web"
)

const defaultPrintWidth = 80

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			runServe(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}
	runLocal()
}

// runLocal is the default mode: the nav bar in the local terminal.
func runLocal() {
	printMode := flag.Bool("print", false, "Print the bar once and exit")
	width := flag.Int("width", 0, "Width for -print (default: terminal width, or 80)")
	flag.Parse()

	_ = config.LoadDotEnvFile(".env")

	if *printMode || !term.IsTerminal(int(os.Stdin.Fd())) {
		runPrint(*width)
		return
	}

	p := tea.NewProgram(
		tui.NewApp(app.StartBackend),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if m, ok := final.(tui.AppModel); ok {
		m.Shutdown()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runPrint renders the bar for a fixed width to stdout.
func runPrint(width int) {
	items, cfg, err := app.LoadItems()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(tui.RenderBar(items, cfg.MenuGap, printWidth(width)))
}

func printWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultPrintWidth
}

// runImport replaces the stored menu with a YAML or TOML file.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: morenav import <menu.yaml|menu.toml>")
	}
	fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	_ = config.LoadDotEnvFile(".env")

	n, err := app.ImportFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "import: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("imported %d menu items from %s\n", n, fs.Arg(0))
}

// runServe serves the nav bar over SSH and the web terminal until interrupted.
func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	sshAddr := fs.String("ssh-addr", "", "SSH listen address (overrides SSH_ADDR env, default :2222)")
	webAddr := fs.String("web-addr", "", "Web terminal listen address (overrides WEB_TERMINAL_ADDR env, default 127.0.0.1:8080)")
	sshOnly := fs.Bool("ssh-only", false, "Start SSH server only (no web terminal)")
	fs.Parse(args)

	_ = config.LoadDotEnvFile(".env")

	bus := tui.NewEventBus(512)
	rt, err := app.Start(bus, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backend: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	applyServeOverrides(rt.Config, *sshAddr, *webAddr)
	if err := validateWebTerminalExposure(rt.Config.WebTerminalAddr, *sshOnly); err != nil {
		fmt.Fprintln(os.Stderr, err)
		rt.Close()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serveComponents(ctx, rt, *sshOnly); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		rt.Close()
		os.Exit(1)
	}
}

// serveComponents runs the SSH server and, unless sshOnly, the web terminal
// until ctx is canceled or one of them fails.
func serveComponents(ctx context.Context, rt *app.Runtime, sshOnly bool) error {
	cfg := rt.Config
	sshServer, err := sshsrv.New(sshsrv.Config{
		Addr:       cfg.SSHAddr,
		HostKeyDir: cfg.DataDir,
		Logger:     rt.Logger,
		Items:      rt.Items,
		Gap:        cfg.MenuGap,
		Recorder:   rt.Metrics,
	}, rt.Bus)
	if err != nil {
		return fmt.Errorf("ssh server: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return sshServer.Serve(gCtx) })

	if !sshOnly {
		webServer := web.New(web.Config{
			Addr:    cfg.WebTerminalAddr,
			SSHAddr: localSSHTarget(cfg.SSHAddr),
			Logger:  rt.Logger,
			Metrics: rt.Metrics.Handler(),
			Items:   rt.Items,
			Gap:     cfg.MenuGap,
		})
		g.Go(func() error { return webServer.Serve(gCtx) })
	}

	rt.Logger.Info("serving", "ssh", cfg.SSHAddr, "web", !sshOnly, "webAddr", cfg.WebTerminalAddr)
	return g.Wait()
}

func validateWebTerminalExposure(webAddr string, sshOnly bool) error {
	if sshOnly {
		return nil
	}
	if web.IsLocalOnlyAddr(webAddr) {
		return nil
	}
	return fmt.Errorf("unsafe web terminal bind %q: use -ssh-only or bind to localhost only", webAddr)
}
