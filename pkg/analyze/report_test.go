package analyze

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jenverse/langcache-shadow/pkg/shadow"
)

func ptr(v float64) *float64 { return &v }
func strp(s string) *string  { return &s }

func hitRecord(similarity, llmMs, cacheMs float64) *shadow.Record {
	return &shadow.Record{
		RequestID:          "hit",
		Query:              "q",
		LLMResponse:        "r",
		LLMLatencyMillis:   llmMs,
		CacheHit:           true,
		CacheResponse:      strp("cached"),
		MatchedQuery:       strp("matched"),
		SimilarityScore:    ptr(similarity),
		CacheLatencyMillis: cacheMs,
	}
}

func missRecord(llmMs, cacheMs float64) *shadow.Record {
	return &shadow.Record{
		RequestID:          "miss",
		Query:              "q",
		LLMResponse:        "r",
		LLMLatencyMillis:   llmMs,
		CacheLatencyMillis: cacheMs,
	}
}

func TestAnalyze_Empty(t *testing.T) {
	report := Analyze(nil)

	if report.Summary.TotalQueries != 0 {
		t.Errorf("TotalQueries = %d, want 0", report.Summary.TotalQueries)
	}
	if len(report.Recommendations) == 0 {
		t.Error("Empty input should still yield a recommendation")
	}
}

func TestAnalyze_Counts(t *testing.T) {
	records := []*shadow.Record{
		hitRecord(0.88, 800, 10),
		hitRecord(0.92, 600, 8),
		missRecord(900, 12),
		missRecord(700, 15),
	}

	report := Analyze(records)

	if report.Summary.TotalQueries != 4 {
		t.Errorf("TotalQueries = %d, want 4", report.Summary.TotalQueries)
	}
	if report.Summary.CacheHits != 2 || report.Summary.CacheMisses != 2 {
		t.Errorf("Hits/misses = %d/%d, want 2/2", report.Summary.CacheHits, report.Summary.CacheMisses)
	}
	if report.Summary.HitRatePercent != 50 {
		t.Errorf("HitRatePercent = %v, want 50", report.Summary.HitRatePercent)
	}
	if report.Summary.AvgLLMLatencyMillis != 750 {
		t.Errorf("AvgLLMLatencyMillis = %v, want 750", report.Summary.AvgLLMLatencyMillis)
	}
	if report.Summary.AvgCacheLatencyMillis != 11.25 {
		t.Errorf("AvgCacheLatencyMillis = %v, want 11.25", report.Summary.AvgCacheLatencyMillis)
	}
	if report.Summary.AvgSimilarity != 0.9 {
		t.Errorf("AvgSimilarity = %v, want 0.9", report.Summary.AvgSimilarity)
	}
}

func TestAnalyze_SimilarityBuckets(t *testing.T) {
	records := []*shadow.Record{
		hitRecord(0.95, 100, 5),
		hitRecord(0.85, 100, 5),
		hitRecord(0.86, 100, 5),
		hitRecord(0.45, 100, 5),
	}

	report := Analyze(records)

	if report.Similarity["0.9-1.0"] != 1 {
		t.Errorf("0.9-1.0 bucket = %d, want 1", report.Similarity["0.9-1.0"])
	}
	if report.Similarity["0.8-0.9"] != 2 {
		t.Errorf("0.8-0.9 bucket = %d, want 2", report.Similarity["0.8-0.9"])
	}
	if report.Similarity["below-0.7"] != 1 {
		t.Errorf("below-0.7 bucket = %d, want 1", report.Similarity["below-0.7"])
	}
}

func TestPercentiles(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1) // 1..100
	}

	p := percentiles(values)
	if p.P50 != 50 {
		t.Errorf("P50 = %v, want 50", p.P50)
	}
	if p.P95 != 95 {
		t.Errorf("P95 = %v, want 95", p.P95)
	}
	if p.P99 != 99 {
		t.Errorf("P99 = %v, want 99", p.P99)
	}
}

func TestPercentiles_Empty(t *testing.T) {
	p := percentiles(nil)
	if p.P50 != 0 || p.P95 != 0 || p.P99 != 0 {
		t.Errorf("Empty percentiles = %+v, want zeros", p)
	}
}

func TestWriteText(t *testing.T) {
	records := []*shadow.Record{
		hitRecord(0.88, 800, 10),
		missRecord(900, 12),
	}

	var buf bytes.Buffer
	Analyze(records).WriteText(&buf)

	out := buf.String()
	for _, want := range []string{"Total queries:", "Cache hits:", "Similarity distribution:", "Recommendations:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report output missing %q:\n%s", want, out)
		}
	}
}
