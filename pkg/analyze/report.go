package analyze

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/jenverse/langcache-shadow/pkg/shadow"
)

// Report summarizes a set of shadow records.
type Report struct {
	Summary         Summary        `json:"summary"`
	LLMLatency      Percentiles    `json:"llm_latency_ms"`
	CacheLatency    Percentiles    `json:"cache_latency_ms"`
	Similarity      map[string]int `json:"similarity_distribution"`
	Recommendations []string       `json:"recommendations"`
}

// Summary holds the headline numbers.
type Summary struct {
	TotalQueries             int     `json:"total_queries"`
	CacheHits                int     `json:"cache_hits"`
	CacheMisses              int     `json:"cache_misses"`
	HitRatePercent           float64 `json:"hit_rate_percent"`
	AvgLLMLatencyMillis      float64 `json:"avg_llm_latency_ms"`
	AvgCacheLatencyMillis    float64 `json:"avg_cache_latency_ms"`
	LatencyImprovementMillis float64 `json:"latency_improvement_ms"`
	AvgSimilarity            float64 `json:"avg_similarity_score"`
}

// Percentiles holds a latency distribution snapshot.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// similarityBuckets orders the distribution buckets for stable output.
var similarityBuckets = []string{"0.9-1.0", "0.8-0.9", "0.7-0.8", "below-0.7"}

// Analyze computes a report over the given records.
func Analyze(records []*shadow.Record) *Report {
	report := &Report{
		Similarity: make(map[string]int),
	}
	if len(records) == 0 {
		report.Recommendations = []string{"No shadow records found; run shadow mode against production traffic first."}
		return report
	}

	var llmLatencies, cacheLatencies, similarities []float64
	hits := 0

	for _, rec := range records {
		llmLatencies = append(llmLatencies, rec.LLMLatencyMillis)
		if rec.CacheLatencyMillis > 0 {
			cacheLatencies = append(cacheLatencies, rec.CacheLatencyMillis)
		}
		if rec.CacheHit {
			hits++
			if rec.SimilarityScore != nil {
				s := *rec.SimilarityScore
				similarities = append(similarities, s)
				report.Similarity[bucketFor(s)]++
			}
		}
	}

	total := len(records)
	avgLLM := mean(llmLatencies)
	avgCache := mean(cacheLatencies)

	report.Summary = Summary{
		TotalQueries:             total,
		CacheHits:                hits,
		CacheMisses:              total - hits,
		HitRatePercent:           round2(float64(hits) / float64(total) * 100),
		AvgLLMLatencyMillis:      round2(avgLLM),
		AvgCacheLatencyMillis:    round2(avgCache),
		LatencyImprovementMillis: round2(avgLLM - avgCache),
		AvgSimilarity:            round3(mean(similarities)),
	}
	report.LLMLatency = percentiles(llmLatencies)
	report.CacheLatency = percentiles(cacheLatencies)
	report.Recommendations = recommendations(report.Summary)

	return report
}

// WriteText renders the report for terminal consumption.
func (r *Report) WriteText(w io.Writer) {
	fmt.Fprintln(w, "Shadow Mode Analysis")
	fmt.Fprintln(w, "====================")
	fmt.Fprintf(w, "Total queries:        %d\n", r.Summary.TotalQueries)
	fmt.Fprintf(w, "Cache hits:           %d (%.2f%%)\n", r.Summary.CacheHits, r.Summary.HitRatePercent)
	fmt.Fprintf(w, "Cache misses:         %d\n", r.Summary.CacheMisses)
	fmt.Fprintf(w, "Avg LLM latency:      %.2f ms (p50 %.2f, p95 %.2f, p99 %.2f)\n",
		r.Summary.AvgLLMLatencyMillis, r.LLMLatency.P50, r.LLMLatency.P95, r.LLMLatency.P99)
	fmt.Fprintf(w, "Avg cache latency:    %.2f ms (p50 %.2f, p95 %.2f, p99 %.2f)\n",
		r.Summary.AvgCacheLatencyMillis, r.CacheLatency.P50, r.CacheLatency.P95, r.CacheLatency.P99)
	fmt.Fprintf(w, "Latency improvement:  %.2f ms\n", r.Summary.LatencyImprovementMillis)
	fmt.Fprintf(w, "Avg similarity:       %.3f\n", r.Summary.AvgSimilarity)

	if len(r.Similarity) > 0 {
		fmt.Fprintln(w, "\nSimilarity distribution:")
		for _, bucket := range similarityBuckets {
			if count, ok := r.Similarity[bucket]; ok {
				fmt.Fprintf(w, "  %-10s %d\n", bucket, count)
			}
		}
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
}

func bucketFor(similarity float64) string {
	switch {
	case similarity >= 0.9:
		return "0.9-1.0"
	case similarity >= 0.8:
		return "0.8-0.9"
	case similarity >= 0.7:
		return "0.7-0.8"
	default:
		return "below-0.7"
	}
}

func recommendations(s Summary) []string {
	var recs []string

	switch {
	case s.HitRatePercent >= 30:
		recs = append(recs, fmt.Sprintf("Hit rate of %.1f%% suggests caching would deliver meaningful savings; consider a pilot cutover.", s.HitRatePercent))
	case s.HitRatePercent >= 10:
		recs = append(recs, "Moderate hit rate; collect more traffic before deciding, or review the distance threshold.")
	default:
		recs = append(recs, "Low hit rate; the query mix may be too diverse for semantic caching, or shadow mode needs a longer run.")
	}

	if s.AvgSimilarity > 0 && s.AvgSimilarity < 0.8 {
		recs = append(recs, "Average similarity below 0.8; verify matched responses are actually interchangeable before serving them.")
	}

	if s.LatencyImprovementMillis > 500 {
		recs = append(recs, fmt.Sprintf("Cache responses are %.0f ms faster on average; users would see a noticeable speedup on hits.", s.LatencyImprovementMillis))
	}

	return recs
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// percentiles computes p50/p95/p99 using nearest-rank on a sorted copy.
func percentiles(values []float64) Percentiles {
	if len(values) == 0 {
		return Percentiles{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := func(q float64) float64 {
		idx := int(math.Ceil(q*float64(len(sorted)))) - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		return round2(sorted[idx])
	}

	return Percentiles{
		P50: rank(0.50),
		P95: rank(0.95),
		P99: rank(0.99),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
