package shadow

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jenverse/langcache-shadow/pkg/extract"
	"github.com/jenverse/langcache-shadow/pkg/langcache"
)

// CacheProber is the cache side of the comparison: a semantic search that
// never fails (failures are reported as misses) and a best-effort insert.
// *langcache.Client satisfies it.
type CacheProber interface {
	Probe(ctx context.Context, query string) langcache.ProbeResult
	Store(ctx context.Context, query, response string) bool
}

// Config holds orchestrator configuration.
type Config struct {
	// Enabled turns the background comparison pipeline on. When false the
	// orchestrator is a transparent pass-through and never touches the
	// cache service or the recorder.
	Enabled bool

	// GuardTimeout bounds one whole background comparison (probe, optional
	// insert, record write). It should exceed the cache client timeout.
	GuardTimeout time.Duration

	// Workers and QueueSize size the background dispatcher.
	// Zero values use the dispatcher defaults.
	Workers   int
	QueueSize int
}

// DefaultConfig returns a safe orchestrator configuration.
func DefaultConfig(enabled bool) Config {
	return Config{
		Enabled:      enabled,
		GuardTimeout: 30 * time.Second,
	}
}

// Orchestrator wraps production LLM calls with shadow-mode comparison work.
type Orchestrator struct {
	enabled      bool
	guardTimeout time.Duration
	prober       CacheProber
	recorder     Recorder
	dispatcher   *Dispatcher
	logger       zerolog.Logger
}

// New creates an orchestrator. prober and recorder may be nil when shadow
// mode is disabled; they are required otherwise.
func New(cfg Config, prober CacheProber, recorder Recorder) *Orchestrator {
	o := &Orchestrator{
		enabled:      cfg.Enabled,
		guardTimeout: cfg.GuardTimeout,
		prober:       prober,
		recorder:     recorder,
		logger:       log.With().Str("component", "shadow-orchestrator").Logger(),
	}

	if o.guardTimeout <= 0 {
		o.guardTimeout = 30 * time.Second
	}

	if o.enabled {
		if prober == nil {
			panic("shadow: prober is required when shadow mode is enabled")
		}
		if recorder == nil {
			panic("shadow: recorder is required when shadow mode is enabled")
		}
		o.dispatcher = NewDispatcher(cfg.Workers, cfg.QueueSize)
	}

	return o
}

// Do invokes the production LLM call and returns its result unchanged,
// synchronously. Any call error is propagated as-is and no record is
// written: without ground truth there is nothing to compare. When shadow
// mode is enabled, the cache probe and record write run in the background
// after Do has already returned to the caller.
func (o *Orchestrator) Do(ctx context.Context, query string, call func() (any, error)) (any, error) {
	requestedAt := time.Now()
	result, err := call()
	elapsed := time.Since(requestedAt)
	LLMDuration.Observe(elapsed.Seconds())

	if err != nil {
		RequestsTotal.WithLabelValues("llm_error").Inc()
		return result, err
	}
	RequestsTotal.WithLabelValues("success").Inc()

	if !o.enabled {
		return result, nil
	}

	llmLatency := float64(elapsed) / float64(time.Millisecond)
	responseText := extract.Text(result)

	o.dispatcher.Submit(func() {
		o.compare(requestedAt, query, responseText, llmLatency)
	})

	return result, nil
}

// compare is the background half of one query: probe the cache, populate it
// on miss, and persist the comparison record. Every failure in here is
// swallowed; nothing crosses back into the caller path.
func (o *Orchestrator) compare(requestedAt time.Time, query, responseText string, llmLatencyMillis float64) {
	ctx, cancel := context.WithTimeout(context.Background(), o.guardTimeout)
	defer cancel()

	probe := o.prober.Probe(ctx, query)
	if !probe.Hit {
		o.prober.Store(ctx, query, responseText)
	}

	rec := NewRecord(requestedAt, query, responseText, llmLatencyMillis, probe)

	if err := o.recorder.Write(ctx, rec); err != nil {
		RecordFailures.WithLabelValues(o.recorder.Backend()).Inc()
		o.logger.Warn().
			Err(err).
			Str("request_id", rec.RequestID).
			Str("backend", o.recorder.Backend()).
			Msg("Shadow record dropped")
		return
	}

	RecordsWritten.WithLabelValues(o.recorder.Backend()).Inc()
	o.logger.Debug().
		Str("request_id", rec.RequestID).
		Bool("cache_hit", rec.CacheHit).
		Float64("llm_latency_ms", rec.LLMLatencyMillis).
		Float64("cache_latency_ms", rec.CacheLatencyMillis).
		Msg("Shadow record written")
}

// Close drains in-flight background work and releases the recorder.
// Production processes may exit without calling it; orphaned background
// work is acceptable under the pipeline's at-most-once contract.
func (o *Orchestrator) Close() error {
	if o.dispatcher != nil {
		o.dispatcher.Close()
	}
	if o.recorder != nil {
		return o.recorder.Close()
	}
	return nil
}
