package shadow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// connectProbeTimeout bounds the one-time Redis connectivity check at startup.
const connectProbeTimeout = 5 * time.Second

// Recorder persists shadow records for later batch analysis. Implementations
// must be safe for concurrent use; Write failures are the caller's to swallow.
type Recorder interface {
	Write(ctx context.Context, rec *Record) error
	Backend() string
	Close() error
}

// NewRecorder selects the record backend once for the process lifetime:
// Redis when a connection can be established at startup, otherwise an
// append-only local log. The decision is not revisited; a Redis instance
// that comes up later is picked up on the next process start.
func NewRecorder(redisURL, logFile string) Recorder {
	logger := log.With().Str("component", "shadow-recorder").Logger()

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err == nil {
			client := redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), connectProbeTimeout)
			err = client.Ping(ctx).Err()
			cancel()

			if err == nil {
				logger.Info().Str("backend", "redis").Msg("Shadow records will be stored in Redis")
				return &RedisRecorder{client: client}
			}
			client.Close()
		}
		logger.Warn().Err(err).Str("backend", "file").Msg("Redis unavailable, falling back to log file")
	}

	logger.Info().Str("backend", "file").Str("path", logFile).Msg("Shadow records will be appended to file")
	return &FileRecorder{path: logFile}
}

// RedisRecorder stores each record as a keyed JSON value under
// KeyPrefix + request_id. A second write with the same request id overwrites
// the first without error.
type RedisRecorder struct {
	client *redis.Client
}

// NewRedisRecorder creates a recorder on an existing Redis client.
func NewRedisRecorder(client *redis.Client) *RedisRecorder {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisRecorder{client: client}
}

// Write persists one record. Retention is the store's concern; no TTL is set.
func (r *RedisRecorder) Write(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal shadow record: %w", err)
	}

	if err := r.client.Set(ctx, rec.Key(), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Backend identifies this recorder in logs and metrics.
func (r *RedisRecorder) Backend() string { return "redis" }

// Close releases the Redis connection.
func (r *RedisRecorder) Close() error {
	return r.client.Close()
}

// FileRecorder appends one JSON record per line to a local log file.
// The file is opened per write so a rotated or deleted log is recreated.
type FileRecorder struct {
	path string
	mu   sync.Mutex
}

// NewFileRecorder creates a recorder appending to the given path.
func NewFileRecorder(path string) *FileRecorder {
	return &FileRecorder{path: path}
}

// Write appends one serialized record line.
func (r *FileRecorder) Write(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal shadow record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open shadow log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append shadow record: %w", err)
	}

	return nil
}

// Backend identifies this recorder in logs and metrics.
func (r *FileRecorder) Backend() string { return "file" }

// Close is a no-op; the file handle is not held between writes.
func (r *FileRecorder) Close() error { return nil }
