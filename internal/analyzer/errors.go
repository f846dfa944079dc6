package analyzer

import (
	"fmt"
	"strconv"
	"time"
)

// ProviderError indicates a provider returned a non-success HTTP status. It
// carries the status and raw body so the boundary can map 401/429/400 classes
// to user-facing messages.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// NewProviderError builds a ProviderError from a non-success response.
// retryAfterSecs is honored only for 429 responses; 0 defaults to 60s.
func NewProviderError(provider string, status int, body []byte, retryAfterSecs int) *ProviderError {
	e := &ProviderError{
		Provider:   provider,
		StatusCode: status,
		Body:       string(body),
	}
	if status == 429 {
		if retryAfterSecs <= 0 {
			retryAfterSecs = 60
		}
		e.RetryAfter = time.Duration(retryAfterSecs) * time.Second
	}
	return e
}

// NetworkError indicates the provider could not be reached at the transport
// level; no HTTP status was obtained.
type NetworkError struct {
	Provider string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("calling %s API: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}
