// Package metrics provides the fire-and-forget metrics sink used on the
// request path.
package metrics

// Metric names emitted by the service.
const (
	CacheHits       = "cache_hits_total"
	CacheMisses     = "cache_misses_total"
	CacheWriteFails = "cache_write_failures_total"
	ProviderCalls   = "provider_calls_total"
	DegradedFields  = "degraded_fields_total"
	RateLimited     = "rate_limited_total"
	RequestDuration = "request_duration_seconds"
)

// Sink receives metric observations. Implementations must never block the
// request path.
type Sink interface {
	Emit(name string, value float64, tags map[string]string)
}

// Nop is a Sink that discards everything.
type Nop struct{}

// Emit implements Sink.
func (Nop) Emit(string, float64, map[string]string) {}
