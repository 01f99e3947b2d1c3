package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/morenav/morenav/internal/config"
	"github.com/morenav/morenav/internal/menu"
	"github.com/morenav/morenav/internal/metrics"
	"github.com/morenav/morenav/internal/store"
	"github.com/morenav/morenav/internal/tui"
)

// Runtime holds the services shared by every nav bar the process serves.
type Runtime struct {
	Config  *config.Config
	Logger  *slog.Logger
	Bus     *tui.EventBus
	Items   []menu.Item
	Metrics *metrics.Collectors

	shutdown *shutdown
}

// StartBackend wires the backend for the local terminal. Logs go to the
// dashboard through the event bus. The caller owns the TUI lifecycle.
func StartBackend(bus *tui.EventBus) (tui.Backend, error) {
	rt, err := Start(bus, nil)
	if err != nil {
		return tui.Backend{}, err
	}
	return tui.Backend{
		Items:    rt.Items,
		Gap:      rt.Config.MenuGap,
		Recorder: rt.Metrics,
		Logger:   rt.Logger,
		Cleanup:  rt.Close,
	}, nil
}

// Start loads configuration, sets up logging and the item store, and seeds
// the menu. When logOut is non-nil records are also written there as JSON,
// for headless use.
func Start(bus *tui.EventBus, logOut io.Writer) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	level := parseLevel(cfg.LogLevel)
	var handler slog.Handler = NewBusHandler(bus, level)
	if logOut != nil {
		handler = newFanoutHandler(
			slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}),
			handler,
		)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	logger.Info("starting morenav",
		"appName", cfg.AppName,
		"dataDir", cfg.DataDir,
		"gap", cfg.MenuGap,
	)

	db, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	sd := newShutdown(logger, db)

	items, err := seedItems(store.NewItemRepo(db), cfg.MenuFile, logger)
	if err != nil {
		sd.run()
		return nil, err
	}
	logger.Info("menu ready", "items", len(items))

	return &Runtime{
		Config:   cfg,
		Logger:   logger,
		Bus:      bus,
		Items:    items,
		Metrics:  metrics.New(),
		shutdown: sd,
	}, nil
}

// AddCloser registers fn to run on Close, before the store is closed.
func (r *Runtime) AddCloser(fn func()) {
	r.shutdown.addCloser(fn)
}

// Close releases everything Start opened. It is safe to call more than once.
func (r *Runtime) Close() {
	r.shutdown.run()
}

// seedItems returns the stored items. An empty store is filled from the menu
// file when one is configured, otherwise from the built-in list.
func seedItems(repo *store.ItemRepo, menuFile string, logger *slog.Logger) ([]menu.Item, error) {
	items, err := repo.List()
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}

	source := "defaults"
	items = menu.DefaultItems()
	if menuFile != "" {
		items, err = menu.LoadFile(menuFile)
		if err != nil {
			return nil, fmt.Errorf("menu file: %w", err)
		}
		source = menuFile
	}
	if err := repo.Replace(items); err != nil {
		return nil, fmt.Errorf("seed menu: %w", err)
	}
	logger.Info("seeded menu", "source", source, "items", len(items))
	return items, nil
}

// ImportFile replaces the stored items with the contents of path.
func ImportFile(path string) (int, error) {
	cfg, err := config.Load()
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	items, err := menu.LoadFile(path)
	if err != nil {
		return 0, err
	}

	db, err := store.Open(cfg.DataDir)
	if err != nil {
		return 0, fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := store.NewItemRepo(db).Replace(items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// LoadItems reads the menu without touching the log setup, for one-shot
// commands. It falls back the same way Start does.
func LoadItems() ([]menu.Item, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	db, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	items, err := seedItems(store.NewItemRepo(db), cfg.MenuFile, logger)
	if err != nil {
		return nil, nil, err
	}
	return items, cfg, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
