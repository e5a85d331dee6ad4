package lingocache

import (
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Basmati Rice", "Basmati Rice"},
		{"leading and trailing", "  Basmati Rice  ", "Basmati Rice"},
		{"collapsed internal", "Basmati   Rice\t5kg", "Basmati Rice 5kg"},
		{"newlines", "Basmati\nRice", "Basmati Rice"},
		{"empty", "", ""},
		{"only whitespace", "   \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHashText_Stability(t *testing.T) {
	h1 := HashText("Fresh Tomatoes 1kg")
	h2 := HashText("Fresh Tomatoes 1kg")
	if h1 != h2 {
		t.Errorf("identical input produced different hashes: %q vs %q", h1, h2)
	}

	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestHashText_NormalizationEquivalence(t *testing.T) {
	if HashText("Fresh  Tomatoes") != HashText(" Fresh Tomatoes ") {
		t.Error("whitespace variants should share a hash")
	}
	if HashText("Fresh Tomatoes") == HashText("fresh tomatoes") {
		t.Error("case-differing inputs must not share a hash")
	}
}

func TestCacheKey(t *testing.T) {
	hash := HashText("Hello")
	key := CacheKey(hash, "en", "hi")

	if !strings.HasPrefix(key, hash) {
		t.Errorf("key %q should start with the text hash", key)
	}
	if !strings.HasSuffix(key, ":en:hi") {
		t.Errorf("key %q should end with the language pair", key)
	}

	if CacheKey(hash, "en", "hi") == CacheKey(hash, "en", "ta") {
		t.Error("different target languages must produce different keys")
	}
}

func TestTextCacheKey_MatchesManualConstruction(t *testing.T) {
	text := "  Sunflower  Oil "
	want := CacheKey(HashText(text), "en", "bn")
	if got := TextCacheKey(text, "en", "bn"); got != want {
		t.Errorf("TextCacheKey = %q, want %q", got, want)
	}
}
