package langcache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the LangCache API base URL, e.g. "https://api.langcache.com".
	BaseURL string

	// APIKey is the bearer credential sent with every request.
	APIKey string

	// CacheID identifies the target cache instance.
	CacheID string

	// Timeout bounds each HTTP call. Exceeding it abandons the call;
	// there is no retry.
	Timeout time.Duration
}

// Client is an HTTP client for one LangCache cache instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cacheID    string
	logger     zerolog.Logger
}

// DefaultTimeout is used when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// New creates a new LangCache client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.CacheID == "" {
		return nil, ErrMissingCacheID
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		cacheID: cfg.CacheID,
		logger:  log.With().Str("component", "langcache-client").Logger(),
	}, nil
}

// Health checks the cache instance health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, c.cacheURL("health"), nil, nil)
}

// Search performs a semantic search for the given request.
// Candidates are returned best match first; an empty slice is a miss.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Match, error) {
	var matches []Match
	if err := c.do(ctx, "search", http.MethodPost, c.cacheURL("search"), req, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// AddEntry stores a new prompt/response pair in the cache.
func (c *Client) AddEntry(ctx context.Context, req EntryRequest) (*EntryReceipt, error) {
	var receipt EntryReceipt
	if err := c.do(ctx, "add_entry", http.MethodPost, c.cacheURL("entries"), req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// DeleteEntry removes a single cache entry by id.
func (c *Client) DeleteEntry(ctx context.Context, entryID string) error {
	if entryID == "" {
		return fmt.Errorf("entry id is required")
	}
	return c.do(ctx, "delete_entry", http.MethodDelete, c.cacheURL("entries/"+entryID), nil, nil)
}

// DeleteEntries removes all cache entries matching the attribute filter.
func (c *Client) DeleteEntries(ctx context.Context, attributes map[string]string) error {
	body := struct {
		Attributes map[string]string `json:"attributes"`
	}{Attributes: attributes}
	return c.do(ctx, "delete_entries", http.MethodPost, c.cacheURL("entries/delete"), body, nil)
}

// cacheURL builds the URL for an operation on the configured cache instance.
func (c *Client) cacheURL(suffix string) string {
	return fmt.Sprintf("%s/v1/caches/%s/%s", c.baseURL, c.cacheID, suffix)
}

// do executes one API call: JSON request body, bearer auth, JSON response
// decoding into out when non-nil. Non-2xx responses become an *APIError.
func (c *Client) do(ctx context.Context, operation, method, url string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", operation, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	RequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		RequestsTotal.WithLabelValues(operation, "network_error").Inc()
		return fmt.Errorf("%s request: %w", operation, err)
	}
	defer resp.Body.Close()

	RequestsTotal.WithLabelValues(operation, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
		c.logger.Warn().
			Str("operation", operation).
			Int("status", resp.StatusCode).
			Msg("LangCache request error")
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
	}

	return nil
}
