package lingocache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeText trims the text and collapses runs of internal whitespace to
// a single space, so that formatting-only variants share one cache entry.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// HashText computes the SHA-256 hash of the normalized text.
func HashText(text string) string {
	hash := sha256.Sum256([]byte(NormalizeText(text)))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a text hash and language pair. The
// mapping is pure: identical inputs always produce the identical key.
func CacheKey(hash, sourceLang, targetLang string) string {
	return hash + ":" + sourceLang + ":" + targetLang
}

// TextCacheKey is a convenience combining normalization, hashing, and key
// construction for a single source text.
func TextCacheKey(text, sourceLang, targetLang string) string {
	return CacheKey(HashText(text), sourceLang, targetLang)
}
