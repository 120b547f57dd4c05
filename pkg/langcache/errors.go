package langcache

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrMissingAPIKey is returned when no bearer credential is configured.
	ErrMissingAPIKey = errors.New("api key is required")

	// ErrMissingCacheID is returned when no cache instance is configured.
	ErrMissingCacheID = errors.New("cache id is required")

	// ErrMissingBaseURL is returned when no API base URL is configured.
	ErrMissingBaseURL = errors.New("base url is required")
)

// APIError represents a non-2xx response from the LangCache API.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("langcache %s failed (status %d): %s", e.Operation, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("langcache %s failed (status %d)", e.Operation, e.StatusCode)
}

// IsNotFound reports whether the error is a 404 response.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}
