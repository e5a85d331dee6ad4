package lingocache

import (
	"errors"
	"fmt"
	"time"
)

// ErrRecordNotFound is returned by catalog stores when an id does not exist.
var ErrRecordNotFound = errors.New("record not found")

// ErrCircuitOpen is returned by the circuit breaker when calls are being
// fast-failed without contacting the provider. It never escapes the
// translation path.
var ErrCircuitOpen = errors.New("circuit breaker open")

// ProviderError indicates a translation provider failure.
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure. Callers treat it as a
// cache miss, never as a request failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates a malformed request, rejected before any work
// starts.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthError indicates a missing or invalid API key.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// RateLimitError indicates the client exceeded its request budget for the
// current window.
type RateLimitError struct {
	ClientID   string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s, retry after %s", e.ClientID, e.RetryAfter)
}
