// Package cache provides translation cache implementations.
//
// The cache maps (text hash, source language, target language) keys to
// translated text. Entries are derived data: they are created on first
// successful translation, expire after a TTL, and are never explicitly
// deleted. A given key's value never logically changes, so concurrent
// writers racing on the same key are safe.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default entry lifetime.
const DefaultTTL = 30 * 24 * time.Hour

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if
	// not found or expired. A store error is reported as a miss, never as a
	// failure.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a translation in the cache.
	Set(ctx context.Context, key string, value string) error
}
