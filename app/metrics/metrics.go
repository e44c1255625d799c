package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "strike_cal"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the counters and gauges describing calendar builds.
type Metrics struct {
	Builds         *prometheus.CounterVec // labels: outcome={success,failure}
	BuildDuration  prometheus.Histogram
	FeedItems      prometheus.Gauge
	CalendarEvents prometheus.Gauge
}

// NewMetrics creates and registers all build metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Builds,
		m.BuildDuration,
		m.FeedItems,
		m.CalendarEvents,
	)

	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as
// many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Calendar builds by outcome.",
		}, []string{"outcome"}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of a fetch-parse-filter-write cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FeedItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_items",
			Help:      "Entries in the last successfully parsed feed.",
		}),
		CalendarEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "calendar_events",
			Help:      "Events written by the last successful build.",
		}),
	}
}
