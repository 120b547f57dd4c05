package shadow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks wrapped LLM calls by outcome.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shadow_requests_total",
			Help: "Total wrapped production LLM calls by outcome",
		},
		[]string{"outcome"}, // "success", "llm_error"
	)

	// RecordsWritten tracks persisted shadow records by backend.
	RecordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shadow_records_total",
			Help: "Total shadow records persisted by backend",
		},
		[]string{"backend"}, // "redis", "file"
	)

	// RecordFailures tracks swallowed record persistence failures by backend.
	RecordFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shadow_record_failures_total",
			Help: "Total swallowed shadow record persistence failures by backend",
		},
		[]string{"backend"},
	)

	// TasksDropped tracks background comparisons dropped because the
	// dispatcher queue was full.
	TasksDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shadow_tasks_dropped_total",
			Help: "Total background comparison tasks dropped at submission",
		},
	)

	// TaskPanics tracks panics recovered inside background comparison work.
	TaskPanics = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shadow_task_panics_total",
			Help: "Total panics recovered in background comparison work",
		},
	)

	// LLMDuration tracks the wall-clock duration of the wrapped LLM call.
	LLMDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shadow_llm_duration_seconds",
			Help:    "Wall-clock duration of the wrapped production LLM call",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)
)
