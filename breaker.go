package lingocache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Circuit breaker states.
const (
	circuitClosed int32 = iota
	circuitOpen
	circuitHalfOpen
)

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	FailureThreshold int           // Consecutive failures before opening (default: 5)
	Cooldown         time.Duration // Time the circuit stays open (default: 60s)
}

// DefaultBreakerConfig returns the default breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Cooldown:         60 * time.Second,
	}
}

// CircuitBreaker stops paying latency and per-call cost for provider calls
// that are very likely to fail. All state transitions happen through atomic
// compare-and-swap; no lock is ever held across an I/O call.
//
// Closed: calls pass through, consecutive transient failures are counted.
// Open: calls fail immediately with ErrCircuitOpen until the cooldown
// elapses. HalfOpen: exactly one trial call is allowed through; concurrent
// callers see Open semantics while the trial is in flight.
type CircuitBreaker struct {
	state    atomic.Int32
	failures atomic.Int32
	openedAt atomic.Int64 // unix nanos of the Open transition

	threshold int32
	cooldown  time.Duration
	now       func() time.Time // overridable for tests
}

// NewCircuitBreaker creates a circuit breaker in the Closed state.
func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 60 * time.Second
	}
	return &CircuitBreaker{
		threshold: int32(cfg.FailureThreshold),
		cooldown:  cfg.Cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a call may proceed. When the cooldown has elapsed
// on an open circuit, the winning caller transitions to HalfOpen and
// becomes the single trial; losers keep failing fast.
func (b *CircuitBreaker) Allow() bool {
	switch b.state.Load() {
	case circuitClosed:
		return true
	case circuitOpen:
		openedAt := b.openedAt.Load()
		if b.now().Sub(time.Unix(0, openedAt)) < b.cooldown {
			return false
		}
		// CAS guarantees only one caller wins the trial slot.
		return b.state.CompareAndSwap(circuitOpen, circuitHalfOpen)
	case circuitHalfOpen:
		return false
	default:
		return true
	}
}

// RecordSuccess notes a successful provider call.
func (b *CircuitBreaker) RecordSuccess() {
	if b.state.CompareAndSwap(circuitHalfOpen, circuitClosed) {
		b.failures.Store(0)
		return
	}
	b.failures.Store(0)
}

// RecordFailure notes a failed provider call. A failed half-open trial
// reopens the circuit with a fresh cooldown; reaching the threshold while
// closed opens it.
func (b *CircuitBreaker) RecordFailure() {
	if b.state.CompareAndSwap(circuitHalfOpen, circuitOpen) {
		b.openedAt.Store(b.now().UnixNano())
		return
	}
	if b.failures.Add(1) >= b.threshold {
		if b.state.CompareAndSwap(circuitClosed, circuitOpen) {
			b.openedAt.Store(b.now().UnixNano())
		}
	}
}

// State returns the current state as a string, for logs and metrics.
func (b *CircuitBreaker) State() string {
	switch b.state.Load() {
	case circuitOpen:
		return "open"
	case circuitHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// BreakerProvider wraps a Provider with a circuit breaker.
type BreakerProvider struct {
	provider Provider
	breaker  *CircuitBreaker
}

// NewBreakerProvider creates a provider decorator guarded by a circuit
// breaker.
func NewBreakerProvider(provider Provider, breaker *CircuitBreaker) *BreakerProvider {
	return &BreakerProvider{
		provider: provider,
		breaker:  breaker,
	}
}

// Translate implements Provider. Calls are refused with ErrCircuitOpen
// while the circuit is open; transient failures and provider timeouts feed
// the failure count, permanent failures do not (the provider is healthy,
// the input is not).
func (p *BreakerProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if !p.breaker.Allow() {
		return "", ErrCircuitOpen
	}

	result, err := p.provider.Translate(ctx, text, sourceLang, targetLang)
	if err == nil {
		p.breaker.RecordSuccess()
		return result, nil
	}

	if IsRetryable(err) || errors.Is(err, context.DeadlineExceeded) {
		p.breaker.RecordFailure()
	} else {
		p.breaker.RecordSuccess()
	}
	return "", err
}

// Breaker returns the underlying circuit breaker for inspection.
func (p *BreakerProvider) Breaker() *CircuitBreaker {
	return p.breaker
}
