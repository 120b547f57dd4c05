// Package shadow implements the shadow recording pipeline: it runs the
// production LLM call synchronously, probes the semantic cache in the
// background, and persists one comparison record per query without ever
// affecting the caller-visible result.
package shadow

import (
	"time"

	"github.com/google/uuid"

	"github.com/jenverse/langcache-shadow/pkg/langcache"
)

// KeyPrefix prefixes every record key in the Redis backend.
const KeyPrefix = "shadow:"

// Record is one shadow comparison entry, written exactly once per processed
// query and never mutated afterwards. The three cache detail fields are nil
// whenever CacheHit is false.
type Record struct {
	// RequestID uniquely identifies this record, assigned at orchestration start.
	RequestID string `json:"request_id"`

	// Timestamp is the capture time of the originating request, in UTC.
	Timestamp time.Time `json:"timestamp"`

	// Query is the original user text.
	Query string `json:"query"`

	// LLMResponse is the ground-truth text extracted from the production LLM call.
	LLMResponse string `json:"llm_response"`

	// LLMLatencyMillis is the wall-clock duration of the LLM call.
	LLMLatencyMillis float64 `json:"llm_latency_ms"`

	// CacheHit is true iff the cache probe returned at least one candidate.
	CacheHit bool `json:"cache_hit"`

	// CacheResponse is the best candidate's cached response text.
	CacheResponse *string `json:"cache_response"`

	// MatchedQuery is the prompt the best candidate was stored under.
	MatchedQuery *string `json:"matched_query"`

	// SimilarityScore is 1 - distance for the best candidate.
	SimilarityScore *float64 `json:"similarity_score"`

	// CacheLatencyMillis is the wall-clock duration of the cache search call,
	// present regardless of hit or miss. Zero when the probe itself failed.
	CacheLatencyMillis float64 `json:"cache_latency_ms"`
}

// NewRecord builds a record from the LLM result and the probe outcome.
func NewRecord(requestedAt time.Time, query, llmResponse string, llmLatencyMillis float64, probe langcache.ProbeResult) *Record {
	rec := &Record{
		RequestID:          uuid.NewString(),
		Timestamp:          requestedAt.UTC(),
		Query:              query,
		LLMResponse:        llmResponse,
		LLMLatencyMillis:   llmLatencyMillis,
		CacheLatencyMillis: probe.LatencyMillis,
	}

	if best := probe.Best(); best != nil {
		similarity := best.Similarity()
		rec.CacheHit = true
		rec.CacheResponse = &best.Response
		rec.MatchedQuery = &best.Prompt
		rec.SimilarityScore = &similarity
	}

	return rec
}

// Key returns the storage key for the Redis backend.
func (r *Record) Key() string {
	return KeyPrefix + r.RequestID
}
