package langcache

import (
	"context"
	"time"
)

// ProbeResult is the outcome of one shadow-mode cache probe.
type ProbeResult struct {
	// Hit is true iff the search returned at least one candidate.
	Hit bool

	// Matches holds the candidates, best first. Empty on miss or failure.
	Matches []Match

	// LatencyMillis is the wall-clock duration of the search call.
	// Zero when the call failed.
	LatencyMillis float64
}

// Best returns the best match, or nil on miss.
func (r ProbeResult) Best() *Match {
	if !r.Hit {
		return nil
	}
	return &r.Matches[0]
}

// Probe performs a semantic search with shadow-mode error semantics: any
// failure (network, timeout, non-2xx) is swallowed and reported as a miss
// with zero latency. It never returns an error.
func (c *Client) Probe(ctx context.Context, query string) ProbeResult {
	start := time.Now()
	matches, err := c.Search(ctx, SearchRequest{Prompt: query})
	if err != nil {
		ProbeFailures.WithLabelValues("search").Inc()
		c.logger.Warn().Err(err).Msg("Cache probe failed, treating as miss")
		return ProbeResult{}
	}

	latency := float64(time.Since(start)) / float64(time.Millisecond)

	if len(matches) == 0 {
		ProbeMisses.Inc()
		return ProbeResult{LatencyMillis: latency}
	}

	ProbeHits.Inc()
	c.logger.Debug().
		Float64("distance", matches[0].Distance).
		Float64("cache_latency_ms", latency).
		Msg("Cache probe hit")

	return ProbeResult{
		Hit:           true,
		Matches:       matches,
		LatencyMillis: latency,
	}
}

// Store inserts a query/response pair, swallowing any failure. Shadow mode
// populates the cache on miss so a later pilot run sees improving hit rates;
// a failed insert costs nothing and is not retried.
func (c *Client) Store(ctx context.Context, query, response string) bool {
	if _, err := c.AddEntry(ctx, EntryRequest{Prompt: query, Response: response}); err != nil {
		ProbeFailures.WithLabelValues("store").Inc()
		c.logger.Warn().Err(err).Msg("Cache insert failed, ignoring")
		return false
	}
	return true
}
