package langcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks LangCache API requests by operation and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langcache_requests_total",
			Help: "Total LangCache API requests by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RequestDuration tracks LangCache API request duration by operation.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langcache_request_duration_seconds",
			Help:    "LangCache API request duration in seconds by operation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// ProbeHits tracks shadow probes that found at least one candidate.
	ProbeHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "langcache_probe_hits_total",
			Help: "Total shadow probes that returned at least one candidate",
		},
	)

	// ProbeMisses tracks shadow probes that found no candidate.
	ProbeMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "langcache_probe_misses_total",
			Help: "Total shadow probes that returned no candidate",
		},
	)

	// ProbeFailures tracks swallowed probe-path failures by operation.
	ProbeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langcache_probe_failures_total",
			Help: "Total swallowed probe-path failures by operation",
		},
		[]string{"operation"}, // "search", "store"
	)
)
