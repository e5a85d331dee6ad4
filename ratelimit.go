package lingocache

import (
	"sync"
	"sync/atomic"
	"time"
)

// RateLimitConfig configures the per-client rate limiter.
type RateLimitConfig struct {
	RequestsPerWindow int           // Maximum requests per window (default: 60)
	Window            time.Duration // Window duration (default: 1 minute)
}

// DefaultRateLimitConfig returns the default limiter settings.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerWindow: 60,
		Window:            time.Minute,
	}
}

// rateWindow is the counter state for one client identity. Both fields are
// mutated only through atomic operations so two concurrent requests can
// never both observe count=limit-1 and both be admitted.
type rateWindow struct {
	start atomic.Int64 // window start, unix nanos
	count atomic.Int64
}

// RateLimiter bounds request rate per client identity using a fixed-window
// counter. The window resets once its duration has elapsed since the
// recorded start.
type RateLimiter struct {
	limit   int64
	window  time.Duration
	clients sync.Map // clientID -> *rateWindow
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	limit := int64(cfg.RequestsPerWindow)
	if limit <= 0 {
		limit = 60
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow checks whether a request from the given client should be admitted.
// On rejection it returns the duration until the current window rolls over,
// suitable for a Retry-After hint.
func (rl *RateLimiter) Allow(clientID string) (bool, time.Duration) {
	v, _ := rl.clients.LoadOrStore(clientID, &rateWindow{})
	w := v.(*rateWindow)

	now := rl.now().UnixNano()
	start := w.start.Load()
	if now-start >= int64(rl.window) {
		// Winning the CAS makes this caller responsible for the reset.
		if w.start.CompareAndSwap(start, now) {
			w.count.Store(0)
		}
	}

	if w.count.Add(1) > rl.limit {
		elapsed := time.Duration(now - w.start.Load())
		retryAfter := rl.window - elapsed
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return false, retryAfter
	}
	return true, 0
}

// Cleanup removes client windows that have been idle longer than maxAge.
func (rl *RateLimiter) Cleanup(maxAge time.Duration) {
	cutoff := rl.now().Add(-maxAge).UnixNano()
	rl.clients.Range(func(key, value any) bool {
		if value.(*rateWindow).start.Load() < cutoff {
			rl.clients.Delete(key)
		}
		return true
	})
}

// StartCleanup runs periodic cleanup until stop is closed.
func (rl *RateLimiter) StartCleanup(interval, maxAge time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Cleanup(maxAge)
			case <-stop:
				return
			}
		}
	}()
}
