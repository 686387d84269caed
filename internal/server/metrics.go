package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors serve mode exports under /metrics.
type Metrics struct {
	// RunsStarted counts runs that entered the running state.
	RunsStarted prometheus.Counter

	// RunsFinished counts finished runs by terminal status
	// (completed, failed, cancelled).
	RunsFinished *prometheus.CounterVec

	// Trials counts evaluated trials by benchmark and algorithm.
	Trials *prometheus.CounterVec

	// RunDuration observes wall-clock run duration in seconds.
	RunDuration prometheus.Histogram
}

// NewMetrics registers the collectors with reg and returns them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RunsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "steppe",
			Name:      "runs_started_total",
			Help:      "Number of optimization runs started.",
		}),
		RunsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "steppe",
			Name:      "runs_finished_total",
			Help:      "Number of optimization runs finished, by terminal status.",
		}, []string{"status"}),
		Trials: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "steppe",
			Name:      "trials_total",
			Help:      "Number of evaluated trials, by benchmark and algorithm.",
		}, []string{"benchmark", "algorithm"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "steppe",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of optimization runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
	}
}
