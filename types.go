package lingocache

import (
	"context"
	"sort"
)

// Record is a read-only view of a catalog item as supplied by the catalog
// store. The translation service never mutates it.
type Record struct {
	ID         string            // Catalog identifier (e.g., "PROD-001")
	SourceLang string            // Language the fields are written in (default: "en")
	Fields     map[string]string // Translatable field values keyed by field name
	FieldOrder []string          // Optional stable ordering of field names
}

// FieldNames returns the record's field names in a stable order. FieldOrder
// wins when set; otherwise names are sorted.
func (r *Record) FieldNames() []string {
	if len(r.FieldOrder) > 0 {
		return r.FieldOrder
	}
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TranslatedRecord is the result of translating one record into a target
// language. Degraded lists fields that fell back to source-language text.
type TranslatedRecord struct {
	ID        string            `json:"id"`
	Language  string            `json:"language"`
	FromCache bool              `json:"from_cache"`
	Fields    map[string]string `json:"fields"`
	Degraded  []string          `json:"degraded,omitempty"`
}

// BatchResult is one positional entry of a batch translation. Exactly one
// of Record or NotFound is meaningful.
type BatchResult struct {
	ID       string
	Record   *TranslatedRecord
	NotFound bool
}

// Page is one page of translated catalog records.
type Page struct {
	Records       []*TranslatedRecord
	NextPageToken string
	HasMore       bool
}

// CatalogStore is the narrow interface to the catalog collaborator. The
// translation service only ever reads from it.
type CatalogStore interface {
	// GetByID returns the record with the given id, or ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (*Record, error)

	// ScanPage returns up to limit records with ids strictly greater than
	// afterID, in ascending id order, plus the id to resume from. An empty
	// nextID means the scan is exhausted.
	ScanPage(ctx context.Context, afterID string, limit int) (records []Record, nextID string, err error)
}

// TranslationCache is the interface for durable translation caching.
// Reads are synchronous; callers treat Set as best-effort.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if
	// not found or expired.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a translation in the cache.
	Set(ctx context.Context, key string, value string) error
}

// Provider is the interface to the external translation backend.
type Provider interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
