package lingocache

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// BatchConfig configures batch translation.
type BatchConfig struct {
	MaxBatchSize int // Maximum ids per batch (default: 100)
	Concurrency  int // Worker pool size (default: 8)
}

// DefaultBatchConfig returns the default batch settings.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxBatchSize: 100,
		Concurrency:  8,
	}
}

// BatchTranslator fans the orchestrator out across a set of catalog
// records with bounded concurrency, so a large batch cannot overwhelm the
// cache or the provider.
type BatchTranslator struct {
	catalog      CatalogStore
	translator   *Translator
	maxBatchSize int
	concurrency  int
}

// NewBatchTranslator creates a batch translator.
func NewBatchTranslator(catalog CatalogStore, translator *Translator, cfg BatchConfig) *BatchTranslator {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 100
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	return &BatchTranslator{
		catalog:      catalog,
		translator:   translator,
		maxBatchSize: cfg.MaxBatchSize,
		concurrency:  cfg.Concurrency,
	}
}

// MaxBatchSize returns the configured batch ceiling.
func (b *BatchTranslator) MaxBatchSize() int {
	return b.maxBatchSize
}

// TranslateBatch translates the records for the given ids. Oversized
// batches are rejected before any work starts. Results are positionally
// aligned with the input ids regardless of completion order; an unknown id
// yields a NotFound marker at its position without affecting the others.
func (b *BatchTranslator) TranslateBatch(ctx context.Context, ids []string, targetLang string) ([]BatchResult, error) {
	if len(ids) == 0 {
		return nil, &ValidationError{Message: "no ids provided"}
	}
	if len(ids) > b.maxBatchSize {
		return nil, &ValidationError{
			Message: fmt.Sprintf("batch of %d ids exceeds limit of %d", len(ids), b.maxBatchSize),
		}
	}

	results := make([]BatchResult, len(ids))
	sem := make(chan struct{}, b.concurrency)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = b.translateOne(ctx, id, targetLang)
		}(i, id)
	}
	wg.Wait()

	return results, nil
}

func (b *BatchTranslator) translateOne(ctx context.Context, id, targetLang string) BatchResult {
	record, err := b.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return BatchResult{ID: id, NotFound: true}
		}
		// Catalog trouble degrades the single entry, not the batch.
		return BatchResult{ID: id, NotFound: true}
	}

	translated, err := b.translator.TranslateRecord(ctx, record, targetLang)
	if err != nil {
		return BatchResult{ID: id, NotFound: true}
	}
	return BatchResult{ID: id, Record: translated}
}
