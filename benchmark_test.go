package lingocache_test

import (
	"context"
	"testing"
	"time"

	"github.com/kiranahq/lingocache"
	"github.com/kiranahq/lingocache/cache"
	"github.com/kiranahq/lingocache/provider"
	"github.com/kiranahq/lingocache/richtext"
)

// Benchmarks for performance validation

func BenchmarkHashText(b *testing.B) {
	text := "Premium aged basmati rice, long grain, 5kg pack"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lingocache.HashText(text)
	}
}

func BenchmarkCacheKey(b *testing.B) {
	hash := "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lingocache.CacheKey(hash, "en", "hi")
	}
}

func BenchmarkMemoryCache_Get(b *testing.B) {
	c := cache.NewMemoryCache(time.Hour)
	ctx := context.Background()
	c.Set(ctx, "test-key", "test-value")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(ctx, "test-key")
	}
}

func BenchmarkMemoryCache_Set(b *testing.B) {
	c := cache.NewMemoryCache(time.Hour)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(ctx, "test-key", "test-value")
	}
}

func BenchmarkRichTextParse(b *testing.B) {
	value := `<p>Premium rice</p><ul><li>Aged 2 years</li><li>Long grain</li></ul>`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		richtext.Parse(value)
	}
}

func BenchmarkRateLimiter_Allow(b *testing.B) {
	l := lingocache.NewRateLimiter(lingocache.RateLimitConfig{
		RequestsPerWindow: 1 << 30,
		Window:            time.Minute,
	})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Allow("bench-client")
	}
}

func BenchmarkTranslateRecord_WarmCache(b *testing.B) {
	tr := lingocache.NewTranslator(provider.NewMockProvider(),
		lingocache.WithCache(cache.NewMemoryCache(0)))
	record := &lingocache.Record{
		ID:         "PROD-001",
		SourceLang: "en",
		Fields: map[string]string{
			"name":     "Basmati Rice 5kg",
			"category": "Groceries",
		},
	}
	ctx := context.Background()
	tr.TranslateRecord(ctx, record, "hi")
	tr.Flush()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.TranslateRecord(ctx, record, "hi")
	}
}
