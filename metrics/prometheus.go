package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink is a Prometheus-backed Sink. Counters and histograms are
// registered up front with fixed label sets; observations for unknown
// metric names are dropped rather than surfaced as errors.
type PromSink struct {
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPromSink creates a sink registered against the given registerer.
func NewPromSink(reg prometheus.Registerer) *PromSink {
	s := &PromSink{
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}

	counter := func(name, help string, labels ...string) {
		v := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lingocache",
			Name:      name,
			Help:      help,
		}, labels)
		reg.MustRegister(v)
		s.counters[name] = v
	}

	counter(CacheHits, "Translation cache hits.", "lang")
	counter(CacheMisses, "Translation cache misses.", "lang")
	counter(CacheWriteFails, "Asynchronous cache writes that failed.", "lang")
	counter(ProviderCalls, "Calls issued to the translation provider.", "lang", "outcome")
	counter(DegradedFields, "Fields served with source-language fallback.", "lang")
	counter(RateLimited, "Requests rejected by the rate limiter.", "client")

	dur := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lingocache",
		Name:      RequestDuration,
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path", "status"})
	reg.MustRegister(dur)
	s.histograms[RequestDuration] = dur

	return s
}

// Emit implements Sink. The value is a count for counters and a sample for
// histograms.
func (s *PromSink) Emit(name string, value float64, tags map[string]string) {
	if c, ok := s.counters[name]; ok {
		if m, err := c.GetMetricWith(prometheus.Labels(tags)); err == nil {
			m.Add(value)
		}
		return
	}
	if h, ok := s.histograms[name]; ok {
		if m, err := h.GetMetricWith(prometheus.Labels(tags)); err == nil {
			m.Observe(value)
		}
	}
}
