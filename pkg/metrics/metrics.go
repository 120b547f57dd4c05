// Package metrics provides the centralized Prometheus metrics reference for
// the shadow pipeline. Metrics are defined in their respective packages
// (langcache, shadow) to maintain modularity and avoid circular dependencies.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the pipeline.
// All metrics are automatically registered via promauto in their packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// LangCache API Metrics (pkg/langcache):
//   - langcache_requests_total{operation, status} (Counter): API requests by
//     operation (health, search, add_entry, delete_entry, delete_entries) and
//     HTTP status or "network_error"
//   - langcache_request_duration_seconds{operation} (Histogram): API request
//     duration by operation
//   - langcache_probe_hits_total (Counter): Shadow probes with >= 1 candidate
//   - langcache_probe_misses_total (Counter): Shadow probes with no candidate
//   - langcache_probe_failures_total{operation} (Counter): Swallowed
//     probe-path failures ("search", "store")
//
// Shadow Pipeline Metrics (pkg/shadow):
//   - shadow_requests_total{outcome} (Counter): Wrapped LLM calls by outcome
//     ("success", "llm_error")
//   - shadow_records_total{backend} (Counter): Records persisted by backend
//     ("redis", "file")
//   - shadow_record_failures_total{backend} (Counter): Swallowed persistence
//     failures by backend
//   - shadow_tasks_dropped_total (Counter): Background comparisons dropped at
//     submission because the queue was full
//   - shadow_task_panics_total (Counter): Panics recovered in background work
//   - shadow_llm_duration_seconds (Histogram): Wall-clock duration of the
//     wrapped production LLM call
//
// Example Prometheus Queries:
//
//   # Observed cache hit rate
//   rate(langcache_probe_hits_total[5m]) /
//   (rate(langcache_probe_hits_total[5m]) + rate(langcache_probe_misses_total[5m]))
//
//   # Record loss (dropped tasks + failed writes)
//   rate(shadow_tasks_dropped_total[5m]) + sum(rate(shadow_record_failures_total[5m]))
//
//   # P95 LLM latency
//   histogram_quantile(0.95, rate(shadow_llm_duration_seconds_bucket[5m]))
//
//   # Cache probe error rate
//   sum(rate(langcache_probe_failures_total[5m]))
