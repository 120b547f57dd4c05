// Command shadow-analyze summarizes shadow mode records collected by the
// recording pipeline, from either the Redis store or the fallback log file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/jenverse/langcache-shadow/pkg/analyze"
	"github.com/jenverse/langcache-shadow/pkg/logging"
	"github.com/jenverse/langcache-shadow/pkg/shadow"
)

func main() {
	logging.Setup(logging.Config{Level: "warn", Format: "console", Output: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		source   string
		file     string
		redisURL string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "shadow-analyze",
		Short: "Analyze shadow mode comparison records",
		Long: `shadow-analyze loads the comparison records written by the shadow
recording pipeline and reports cache hit rate, latency percentiles, and
similarity distribution to support a caching pilot decision.`,
		Example: `  shadow-analyze --source redis
  shadow-analyze --source redis --redis-url redis://cache.internal:6379
  shadow-analyze --source file --file shadow_mode.log --json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(cmd.Context(), source, file, redisURL)
			if err != nil {
				return err
			}

			report := analyze.Analyze(records)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			report.WriteText(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "record source: redis or file (required)")
	cmd.Flags().StringVar(&file, "file", "shadow_mode.log", "shadow log file path (source=file)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "redis://localhost:6379", "Redis URL (source=redis)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	cmd.MarkFlagRequired("source")

	return cmd
}

func loadRecords(ctx context.Context, source, file, redisURL string) ([]*shadow.Record, error) {
	switch source {
	case "file":
		return analyze.LoadFromFile(file)
	case "redis":
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL: %w", err)
		}

		client := redis.NewClient(opts)
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}

		return analyze.LoadFromRedis(ctx, client)
	default:
		return nil, fmt.Errorf("invalid source %q (must be redis or file)", source)
	}
}
