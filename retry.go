package lingocache

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxAttempts int           // Total attempts including the first call
	BaseDelay   time.Duration // Delay before the first retry
	MaxDelay    time.Duration // Cap on the backoff delay
	Jitter      time.Duration // Random extra delay added to each backoff
}

// DefaultRetryConfig returns sensible defaults: three attempts with
// 1s/2s/4s backoff plus a small jitter to avoid synchronized retry storms.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    30 * time.Second,
		Jitter:      250 * time.Millisecond,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes a function with exponential backoff retry. Only
// transient failures are retried; permanent failures and context
// cancellation return immediately.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < attempts-1 {
			delay := cfg.BaseDelay * time.Duration(1<<attempt)
			if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
			if cfg.Jitter > 0 {
				delay += time.Duration(rand.Int63n(int64(cfg.Jitter)))
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// An open circuit is a deliberate fast-fail; retrying defeats it.
	if errors.Is(err, ErrCircuitOpen) {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}

	return false
}

// RetryProvider wraps a Provider with retry logic.
type RetryProvider struct {
	provider Provider
	config   RetryConfig
}

// NewRetryProvider creates a provider decorator that retries transient
// failures.
func NewRetryProvider(provider Provider, cfg RetryConfig) *RetryProvider {
	return &RetryProvider{
		provider: provider,
		config:   cfg,
	}
}

// Translate implements Provider with retry logic.
func (p *RetryProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return WithRetry(ctx, p.config, func() (string, error) {
		return p.provider.Translate(ctx, text, sourceLang, targetLang)
	})
}
