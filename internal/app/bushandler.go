package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/morenav/morenav/internal/tui"
)

// BusHandler is a slog.Handler that publishes log records to the TUI event bus.
type BusHandler struct {
	bus    *tui.EventBus
	level  slog.Level
	attrs  []slog.Attr
	prefix string
}

func NewBusHandler(bus *tui.EventBus, level slog.Level) *BusHandler {
	return &BusHandler{bus: bus, level: level}
}

func (h *BusHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.bus != nil && level >= h.level
}

func (h *BusHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]any)
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[h.prefix+a.Key] = a.Value.Any()
		return true
	})

	var level string
	switch {
	case r.Level >= slog.LevelError:
		level = "ERROR"
	case r.Level >= slog.LevelWarn:
		level = "WARN"
	case r.Level >= slog.LevelInfo:
		level = "INFO"
	default:
		level = "DEBUG"
	}

	h.bus.PublishLog(level, r.Message, fields)
	return nil
}

func (h *BusHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		newAttrs = append(newAttrs, a)
	}
	return &BusHandler{bus: h.bus, level: h.level, attrs: newAttrs, prefix: h.prefix}
}

// WithGroup flattens groups into dotted keys.
func (h *BusHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &BusHandler{bus: h.bus, level: h.level, attrs: h.attrs, prefix: h.prefix + name + "."}
}

// fanoutHandler sends each record to every handler that accepts its level.
type fanoutHandler []slog.Handler

func newFanoutHandler(handlers ...slog.Handler) fanoutHandler {
	return fanoutHandler(handlers)
}

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
