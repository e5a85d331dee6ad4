package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromSink_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewPromSink(reg)

	s.Emit(CacheHits, 1, map[string]string{"lang": "hi"})
	s.Emit(CacheHits, 1, map[string]string{"lang": "hi"})
	s.Emit(CacheMisses, 1, map[string]string{"lang": "ta"})

	hits := testutil.ToFloat64(s.counters[CacheHits].WithLabelValues("hi"))
	if hits != 2 {
		t.Errorf("expected 2 hits, got %v", hits)
	}
	misses := testutil.ToFloat64(s.counters[CacheMisses].WithLabelValues("ta"))
	if misses != 1 {
		t.Errorf("expected 1 miss, got %v", misses)
	}
}

func TestPromSink_IgnoresUnknownNames(t *testing.T) {
	s := NewPromSink(prometheus.NewRegistry())
	// Must not panic or register anything on the fly.
	s.Emit("no_such_metric", 1, nil)
}

func TestPromSink_WrongLabelsDropped(t *testing.T) {
	s := NewPromSink(prometheus.NewRegistry())
	// CacheHits is labeled by lang only; a mismatched tag set is dropped.
	s.Emit(CacheHits, 1, map[string]string{"client": "x"})
	if v := testutil.ToFloat64(s.counters[CacheHits].WithLabelValues("hi")); v != 0 {
		t.Errorf("mismatched labels should not count, got %v", v)
	}
}

func TestNop(t *testing.T) {
	var s Sink = Nop{}
	s.Emit(CacheHits, 1, nil)
}
