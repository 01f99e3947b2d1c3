// Package metrics exposes Prometheus collectors for nav bar probing and
// fitting.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/morenav/morenav/internal/menu"
)

// Resolve outcomes.
const (
	OutcomeEmpty   = "empty"
	OutcomeAllFit  = "all_fit"
	OutcomePartial = "partial"
	OutcomeFloor   = "floor"
)

// Recorder receives widget lifecycle observations.
type Recorder interface {
	ObserveProbe(d menu.Dimensions)
	ObserveResolve(d menu.Dimensions, index int)
	SessionStarted()
	SessionEnded()
}

// Nop discards every observation.
type Nop struct{}

func (Nop) ObserveProbe(menu.Dimensions) {}

func (Nop) ObserveResolve(menu.Dimensions, int) {}

func (Nop) SessionStarted() {}

func (Nop) SessionEnded() {}

// Collectors is a Recorder backed by a Prometheus registry.
type Collectors struct {
	registry *prometheus.Registry
	probes   *prometheus.CounterVec
	resolves *prometheus.CounterVec
	visible  prometheus.Histogram
	sessions prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Collectors {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry registers the collectors on reg.
func NewWithRegistry(reg *prometheus.Registry) *Collectors {
	c := &Collectors{
		registry: reg,
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "morenav_probes_total",
			Help: "Width probes by result.",
		}, []string{"result"}),
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "morenav_resolves_total",
			Help: "Fit resolutions by outcome.",
		}, []string{"outcome"}),
		visible: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "morenav_visible_items",
			Help:    "Number of inline items after a fit resolution.",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "morenav_sessions_active",
			Help: "Currently open nav bar sessions.",
		}),
	}
	reg.MustRegister(c.probes, c.resolves, c.visible, c.sessions)
	return c
}

func (c *Collectors) ObserveProbe(d menu.Dimensions) {
	if d.Empty() {
		c.probes.WithLabelValues("empty").Inc()
		return
	}
	c.probes.WithLabelValues("ok").Inc()
}

func (c *Collectors) ObserveResolve(d menu.Dimensions, index int) {
	c.resolves.WithLabelValues(Outcome(d, index)).Inc()
	if !d.Empty() {
		c.visible.Observe(float64(index + 1))
	}
}

func (c *Collectors) SessionStarted() { c.sessions.Inc() }

func (c *Collectors) SessionEnded() { c.sessions.Dec() }

// Handler serves the registry in the Prometheus text format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}

// Outcome classifies a resolved index.
func Outcome(d menu.Dimensions, index int) string {
	n := len(d.NecessaryWidths)
	switch {
	case n == 0:
		return OutcomeEmpty
	case d.NecessaryWidths[n-1] < d.ContainerWidth:
		return OutcomeAllFit
	case index == 0 && d.NecessaryWidths[0]+d.MoreWidth >= d.ContainerWidth:
		return OutcomeFloor
	default:
		return OutcomePartial
	}
}
