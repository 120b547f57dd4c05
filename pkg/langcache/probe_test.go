package langcache

import (
	"context"
	"testing"
	"time"

	"github.com/jenverse/langcache-shadow/internal/testutil"
)

func TestProbe_Hit(t *testing.T) {
	mock := testutil.NewMockLangCache(testCacheID)
	defer mock.Close()

	mock.SetSearchResponse(testutil.NewMatchResponse(
		"entry-1", "What is machine learning?", "Machine learning is a subset of AI...", 0.14))

	client := newTestClient(t, mock)

	result := client.Probe(context.Background(), "How does machine learning work?")

	if !result.Hit {
		t.Fatal("Expected hit")
	}
	if result.Best() == nil {
		t.Fatal("Best() returned nil on hit")
	}
	if result.Best().Prompt != "What is machine learning?" {
		t.Errorf("Best prompt = %q", result.Best().Prompt)
	}
	if result.LatencyMillis <= 0 {
		t.Errorf("LatencyMillis = %v, want > 0", result.LatencyMillis)
	}

	sim := result.Best().Similarity()
	if diff := sim - 0.86; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Similarity = %v, want 0.86", sim)
	}
}

func TestProbe_Miss(t *testing.T) {
	mock := testutil.NewMockLangCache(testCacheID)
	defer mock.Close()

	mock.SetSearchResponse(testutil.NewEmptySearchResponse())

	client := newTestClient(t, mock)

	result := client.Probe(context.Background(), "never seen before")

	if result.Hit {
		t.Error("Expected miss")
	}
	if result.Best() != nil {
		t.Error("Best() should be nil on miss")
	}
	if result.LatencyMillis <= 0 {
		t.Errorf("Miss should still carry latency, got %v", result.LatencyMillis)
	}
}

func TestProbe_ServerErrorIsMiss(t *testing.T) {
	mock := testutil.NewMockLangCache(testCacheID)
	defer mock.Close()

	mock.SetSearchResponse(testutil.NewServerErrorResponse())

	client := newTestClient(t, mock)

	result := client.Probe(context.Background(), "anything")

	if result.Hit {
		t.Error("Probe failure must be reported as miss")
	}
	if result.LatencyMillis != 0 {
		t.Errorf("Failed probe should have zero latency, got %v", result.LatencyMillis)
	}
}

func TestProbe_UnreachableServiceIsMiss(t *testing.T) {
	mock := testutil.NewMockLangCache(testCacheID)
	url := mock.URL()
	mock.Close() // service down before the probe

	client, err := New(Config{
		BaseURL: url,
		APIKey:  "test-api-key",
		CacheID: testCacheID,
		Timeout: 1 * time.Second,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result := client.Probe(context.Background(), "anything")

	if result.Hit {
		t.Error("Unreachable service must be a miss")
	}
	if result.LatencyMillis != 0 {
		t.Errorf("LatencyMillis = %v, want 0", result.LatencyMillis)
	}
}

func TestStore_Success(t *testing.T) {
	mock := testutil.NewMockLangCache(testCacheID)
	defer mock.Close()

	mock.SetInsertResponse(testutil.NewEntryReceiptResponse("entry-7"))

	client := newTestClient(t, mock)

	if !client.Store(context.Background(), "q", "r") {
		t.Error("Store should report success")
	}
	if mock.GetInsertCount() != 1 {
		t.Errorf("Insert count = %d, want 1", mock.GetInsertCount())
	}
}

func TestStore_FailureSwallowed(t *testing.T) {
	mock := testutil.NewMockLangCache(testCacheID)
	defer mock.Close()

	mock.SetInsertResponse(testutil.NewServerErrorResponse())

	client := newTestClient(t, mock)

	if client.Store(context.Background(), "q", "r") {
		t.Error("Store should report failure on 500")
	}
}
