// Package testutil provides testing utilities for the shadow pipeline.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock LangCache endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockLangCache is a configurable mock LangCache API server for testing.
type MockLangCache struct {
	server   *httptest.Server
	cacheID  string
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount   int
	SearchCount    int
	InsertCount    int
	LastAuthHeader string
	LastSearchBody map[string]any
	LastInsertBody map[string]any
}

// NewMockLangCache creates a new mock LangCache server for the given cache id.
func NewMockLangCache(cacheID string) *MockLangCache {
	mock := &MockLangCache{
		cacheID:  cacheID,
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Buffer the body so custom handlers can read it again after the
		// tracking decode below.
		data, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(data))

		mock.mu.Lock()
		mock.RequestCount++
		mock.LastAuthHeader = r.Header.Get("Authorization")

		switch r.URL.Path {
		case mock.path("search"):
			mock.SearchCount++
			var body map[string]any
			if err := json.Unmarshal(data, &body); err == nil {
				mock.LastSearchBody = body
			}
		case mock.path("entries"):
			mock.InsertCount++
			var body map[string]any
			if err := json.Unmarshal(data, &body); err == nil {
				mock.LastInsertBody = body
			}
		}
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockLangCache) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockLangCache) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockLangCache) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.SearchCount = 0
	m.InsertCount = 0
	m.LastAuthHeader = ""
	m.LastSearchBody = nil
	m.LastInsertBody = nil
}

// path builds the API path for an operation on the configured cache.
func (m *MockLangCache) path(suffix string) string {
	return fmt.Sprintf("/v1/caches/%s/%s", m.cacheID, suffix)
}

// SetHandler sets a custom handler for a specific path.
func (m *MockLangCache) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a canned response for a path.
func (m *MockLangCache) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetSearchResponse configures the search endpoint response.
func (m *MockLangCache) SetSearchResponse(resp MockResponse) {
	m.SetResponse(m.path("search"), resp)
}

// SetInsertResponse configures the entry insertion endpoint response.
func (m *MockLangCache) SetInsertResponse(resp MockResponse) {
	m.SetResponse(m.path("entries"), resp)
}

// GetSearchCount returns the number of search requests received.
func (m *MockLangCache) GetSearchCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.SearchCount
}

// GetInsertCount returns the number of insert requests received.
func (m *MockLangCache) GetInsertCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.InsertCount
}

// GetRequestCount returns the total number of requests received.
func (m *MockLangCache) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// defaultHandler provides default LangCache-like responses: an empty search
// result, a generic entry receipt, and 200 OK elsewhere.
func (m *MockLangCache) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case m.path("search"):
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	case m.path("entries"):
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"entryId": "entry-default", "timestamp": "2025-01-01T00:00:00Z"}`))
	case m.path("health"):
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	default:
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}
}

// NewMatchResponse creates a 200 search response with a single candidate.
func NewMatchResponse(id, prompt, response string, distance float64) MockResponse {
	body, _ := json.Marshal([]map[string]any{
		{
			"id":       id,
			"prompt":   prompt,
			"response": response,
			"distance": distance,
		},
	})
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
	}
}

// NewEmptySearchResponse creates a 200 search response with no candidates.
func NewEmptySearchResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `[]`,
	}
}

// NewEntryReceiptResponse creates a 201 insert response.
func NewEntryReceiptResponse(entryID string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusCreated,
		Body:       fmt.Sprintf(`{"entryId": %q, "timestamp": "2025-01-01T00:00:00Z"}`, entryID),
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "internal server error"}`,
	}
}
