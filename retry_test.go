package lingocache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   5 * time.Millisecond,
		MaxDelay:    50 * time.Millisecond,
		Jitter:      time.Millisecond,
	}
}

func TestWithRetry_Success(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), fastRetryConfig(), func() (string, error) {
		callCount++
		return "success", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %q", result)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestWithRetry_TransientThenSuccess(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), fastRetryConfig(), func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", &ProviderError{Message: "throttled", Retryable: true}
		}
		return "success", nil
	})

	if err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %q", result)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestWithRetry_PermanentError(t *testing.T) {
	callCount := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(), func() (string, error) {
		callCount++
		return "", &ProviderError{Message: "unsupported language pair", Retryable: false}
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if callCount != 1 {
		t.Errorf("permanent errors must not be retried, got %d calls", callCount)
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	callCount := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(), func() (string, error) {
		callCount++
		return "", &ProviderError{Message: "timeout", Retryable: true}
	})

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if callCount != 3 {
		t.Errorf("expected 3 attempts, got %d", callCount)
	}

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Errorf("expected the last provider error, got %T", err)
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	callCount := 0
	_, err := WithRetry(ctx, fastRetryConfig(), func() (string, error) {
		callCount++
		return "", nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if callCount != 0 {
		t.Errorf("expected no calls on cancelled context, got %d", callCount)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transient provider", &ProviderError{Retryable: true}, true},
		{"permanent provider", &ProviderError{Retryable: false}, false},
		{"circuit open", ErrCircuitOpen, false},
		{"cancelled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryProvider_Translate(t *testing.T) {
	calls := 0
	p := NewRetryProvider(providerFunc(func(context.Context, string, string, string) (string, error) {
		calls++
		if calls == 1 {
			return "", &ProviderError{Message: "throttled", Retryable: true}
		}
		return "नमस्ते", nil
	}), fastRetryConfig())

	got, err := p.Translate(context.Background(), "Hello", "en", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "नमस्ते" {
		t.Errorf("expected translation, got %q", got)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

// providerFunc adapts a function to the Provider interface.
type providerFunc func(ctx context.Context, text, sourceLang, targetLang string) (string, error)

func (f providerFunc) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return f(ctx, text, sourceLang, targetLang)
}
