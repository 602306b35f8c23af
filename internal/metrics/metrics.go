// Package metrics holds the Prometheus instruments the patch engine
// reports against: edits applied, bytes rewritten, and patch duration.
// Callers embed a *Registry into their own process (a debug mux, an
// existing /metrics endpoint); this package never listens on a port
// itself.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles the instruments behind an independent prometheus
// registry, so constructing one never collides with collectors an
// embedding program has already registered under the default registry.
type Registry struct {
	reg *prometheus.Registry

	EditsApplied   prometheus.Counter
	BytesRewritten prometheus.Counter
	PatchDuration  prometheus.Histogram
}

func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		EditsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "graft",
			Name:      "edits_applied_total",
			Help:      "Number of script records successfully applied by the patcher.",
		}),
		BytesRewritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "graft",
			Name:      "bytes_rewritten_total",
			Help:      "Total bytes written by Buffer.Flush across all patch runs.",
		}),
		PatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "graft",
			Name:      "patch_duration_seconds",
			Help:      "Wall-clock time spent applying one edit script.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(r.EditsApplied, r.BytesRewritten, r.PatchDuration)
	return r
}

// Gatherer exposes the underlying registry so an embedding program can
// hand it to promhttp.HandlerFor or merge it into its own gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveDuration is a small helper for `defer
// m.ObserveDuration(time.Now())`-style call sites.
func (r *Registry) ObserveDuration(start time.Time) {
	r.PatchDuration.Observe(time.Since(start).Seconds())
}
