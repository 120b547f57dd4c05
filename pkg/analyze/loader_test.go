package analyze

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jenverse/langcache-shadow/pkg/langcache"
	"github.com/jenverse/langcache-shadow/pkg/shadow"
)

// setupTestRedis creates a test Redis client, skipping when unavailable.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shadow_mode.log")
	rec := shadow.NewFileRecorder(path)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		r := shadow.NewRecord(time.Now(), "q", "r", 100, langcache.ProbeResult{LatencyMillis: 5})
		if err := rec.Write(ctx, r); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	records, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("Loaded %d records, want 5", len(records))
	}
}

func TestLoadFromFile_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shadow_mode.log")

	good, _ := json.Marshal(shadow.NewRecord(time.Now(), "q", "r", 1, langcache.ProbeResult{}))
	content := string(good) + "\n" + "{truncated\n" + "\n" + string(good) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	records, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Loaded %d records, want 2 (malformed line skipped)", len(records))
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.log")); err == nil {
		t.Error("LoadFromFile should fail on a missing file")
	}
}

func TestLoadFromRedis(t *testing.T) {
	client := setupTestRedis(t)
	rec := shadow.NewRedisRecorder(client)
	ctx := context.Background()

	for i := 0; i < 120; i++ { // force multiple SCAN batches
		r := shadow.NewRecord(time.Now(), "q", "r", 100, langcache.ProbeResult{LatencyMillis: 5})
		if err := rec.Write(ctx, r); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	// An unrelated key must not surface as a record.
	if err := client.Set(ctx, "other:key", "value", 0).Err(); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	records, err := LoadFromRedis(ctx, client)
	if err != nil {
		t.Fatalf("LoadFromRedis failed: %v", err)
	}
	if len(records) != 120 {
		t.Errorf("Loaded %d records, want 120", len(records))
	}
}

func TestLoadFromRedis_SkipsMalformedValues(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	if err := client.Set(ctx, shadow.KeyPrefix+"bad", "{not json", 0).Err(); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	rec := shadow.NewRedisRecorder(client)
	if err := rec.Write(ctx, shadow.NewRecord(time.Now(), "q", "r", 1, langcache.ProbeResult{})); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	records, err := LoadFromRedis(ctx, client)
	if err != nil {
		t.Fatalf("LoadFromRedis failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Loaded %d records, want 1 (malformed value skipped)", len(records))
	}
}
