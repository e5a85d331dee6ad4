package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry holds a cached value with its creation time.
type memoryEntry struct {
	value     string
	createdAt time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support. It backs
// development and test environments; production deployments use RedisCache.
type MemoryCache struct {
	entries map[string]memoryEntry
	mu      sync.RWMutex
	ttl     time.Duration
}

// NewMemoryCache creates an in-memory cache. A non-positive ttl means
// entries never expire.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl < 0 {
		ttl = 0
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get retrieves a value from the cache. Expired entries are treated as
// absent and cleaned up on the way out.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}

	if c.ttl > 0 && time.Since(entry.createdAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}

	return entry.value, true
}

// Set stores a value in the cache.
func (c *MemoryCache) Set(_ context.Context, key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		value:     value,
		createdAt: time.Now(),
	}
	return nil
}

// Len returns the number of entries in the cache (including expired ones).
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
}

// Entries returns all non-expired entries as key-value pairs. Used for
// cache export.
func (c *MemoryCache) Entries() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]string)
	now := time.Now()
	for key, entry := range c.entries {
		if c.ttl > 0 && now.Sub(entry.createdAt) > c.ttl {
			continue
		}
		result[key] = entry.value
	}
	return result
}

// Verify MemoryCache implements TranslationCache
var _ TranslationCache = (*MemoryCache)(nil)
