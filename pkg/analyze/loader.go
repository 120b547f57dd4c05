// Package analyze loads persisted shadow records and summarizes cache
// performance for a pilot decision: hit rate, latency, similarity spread.
package analyze

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jenverse/langcache-shadow/pkg/shadow"
)

// scanBatchSize is the number of keys fetched per SCAN iteration.
const scanBatchSize = 100

// LoadFromRedis loads all shadow records from the key-value store,
// scanning shadow:* in batches.
func LoadFromRedis(ctx context.Context, client *redis.Client) ([]*shadow.Record, error) {
	logger := log.With().Str("component", "shadow-analyze").Logger()

	var records []*shadow.Record
	var cursor uint64

	for {
		keys, next, err := client.Scan(ctx, cursor, shadow.KeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("scan shadow keys: %w", err)
		}

		if len(keys) > 0 {
			values, err := client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, fmt.Errorf("fetch shadow records: %w", err)
			}

			for i, value := range values {
				data, ok := value.(string)
				if !ok {
					continue
				}
				var rec shadow.Record
				if err := json.Unmarshal([]byte(data), &rec); err != nil {
					logger.Warn().Err(err).Str("key", keys[i]).Msg("Skipping malformed record")
					continue
				}
				records = append(records, &rec)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return records, nil
}

// LoadFromFile loads shadow records from a newline-delimited JSON log.
// Malformed lines are skipped, not fatal: a crashed writer may leave a
// truncated final line.
func LoadFromFile(path string) ([]*shadow.Record, error) {
	logger := log.With().Str("component", "shadow-analyze").Logger()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shadow log: %w", err)
	}
	defer f.Close()

	var records []*shadow.Record
	lineNo := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec shadow.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			logger.Warn().Err(err).Int("line", lineNo).Msg("Skipping malformed record")
			continue
		}
		records = append(records, &rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read shadow log: %w", err)
	}

	return records, nil
}
