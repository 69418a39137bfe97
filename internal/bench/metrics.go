package bench

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the prometheus instruments a benchmark run feeds. All of
// them are observational; nothing in the search path reads them back.
type Metrics struct {
	Searches       prometheus.Counter
	NoPath         prometheus.Counter
	Duration       prometheus.Histogram
	PathLength     prometheus.Histogram
	NodesAllocated prometheus.Histogram
}

// NewMetrics registers the benchmark instruments with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Searches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gridnav",
			Name:      "searches_total",
			Help:      "Total number of pathfinding searches executed.",
		}),
		NoPath: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gridnav",
			Name:      "searches_no_path_total",
			Help:      "Searches that returned the no-path sentinel.",
		}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gridnav",
			Name:      "search_duration_seconds",
			Help:      "Wall time per search.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		PathLength: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gridnav",
			Name:      "search_path_length",
			Help:      "Length of returned paths in moves.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}),
		NodesAllocated: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gridnav",
			Name:      "search_nodes_allocated",
			Help:      "Search nodes created per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
	}
}

// Observe records one run.
func (m *Metrics) Observe(d RunData) {
	m.Searches.Inc()
	m.Duration.Observe(d.Duration.Seconds())
	m.NodesAllocated.Observe(float64(d.NodesAllocated))
	if d.PathLength < 0 {
		m.NoPath.Inc()
		return
	}
	m.PathLength.Observe(float64(d.PathLength))
}
