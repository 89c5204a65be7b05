// Package metrics exposes Prometheus collectors for recommendation runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors bundles the run-level Prometheus metrics.
type Collectors struct {
	RunsTotal     *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	RowsProcessed prometheus.Counter
}

// NewCollectors builds and registers the collectors on the given registerer.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "budget_engine",
			Name:      "runs_total",
			Help:      "Recommendation runs, by focus and experiment variant.",
		}, []string{"focus", "variant"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "budget_engine",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of recommendation runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		RowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "budget_engine",
			Name:      "rows_processed_total",
			Help:      "Performance rows fed into the engine.",
		}),
	}
	reg.MustRegister(c.RunsTotal, c.RunDuration, c.RowsProcessed)
	return c
}

// ObserveRun records one completed run.
func (c *Collectors) ObserveRun(focus, variant string, rows int, duration time.Duration) {
	c.RunsTotal.WithLabelValues(focus, variant).Inc()
	c.RunDuration.Observe(duration.Seconds())
	c.RowsProcessed.Add(float64(rows))
}
