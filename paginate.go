package lingocache

import (
	"context"
	"encoding/base64"
)

// PageConfig configures cursor pagination.
type PageConfig struct {
	DefaultPageSize int // Page size when the caller passes 0 (default: 20)
	MaxPageSize     int // Upper clamp for page size (default: 100)
}

// DefaultPageConfig returns the default pagination settings.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

// Paginator enumerates catalog records with an opaque cursor, translating
// each returned record. Repeatedly following NextPageToken until HasMore is
// false visits every record exactly once, in id order.
type Paginator struct {
	catalog         CatalogStore
	translator      *Translator
	defaultPageSize int
	maxPageSize     int
}

// NewPaginator creates a paginator.
func NewPaginator(catalog CatalogStore, translator *Translator, cfg PageConfig) *Paginator {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &Paginator{
		catalog:         catalog,
		translator:      translator,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
	}
}

// List returns one translated page. Out-of-range page sizes are clamped,
// not rejected; a malformed page token is a validation error.
func (p *Paginator) List(ctx context.Context, pageSize int, pageToken, targetLang string) (*Page, error) {
	switch {
	case pageSize <= 0:
		pageSize = p.defaultPageSize
	case pageSize > p.maxPageSize:
		pageSize = p.maxPageSize
	}

	afterID, err := decodePageToken(pageToken)
	if err != nil {
		return nil, &ValidationError{Message: "malformed page token"}
	}

	records, nextID, err := p.catalog.ScanPage(ctx, afterID, pageSize)
	if err != nil {
		return nil, err
	}

	page := &Page{Records: make([]*TranslatedRecord, 0, len(records))}
	for i := range records {
		translated, err := p.translator.TranslateRecord(ctx, &records[i], targetLang)
		if err != nil {
			return nil, err
		}
		page.Records = append(page.Records, translated)
	}

	if nextID != "" {
		page.NextPageToken = encodePageToken(nextID)
		page.HasMore = true
	}
	return page, nil
}

// The cursor is the last-returned record id, base64-encoded so callers
// treat it as opaque and cannot build offset assumptions on it.

func encodePageToken(lastID string) string {
	return base64.URLEncoding.EncodeToString([]byte(lastID))
}

func decodePageToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
