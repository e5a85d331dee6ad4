package lingocache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kiranahq/lingocache/metrics"
	"github.com/kiranahq/lingocache/richtext"
)

// Translator is the fan-out orchestrator: it translates one record's fields
// by merging cache hits with concurrent provider calls, degrading per field
// when the provider cannot answer in time.
type Translator struct {
	provider    Provider
	cache       TranslationCache
	gate        *ModeGate
	sourceLang  string
	callTimeout time.Duration
	metrics     metrics.Sink
	logger      *zap.Logger

	writes sync.WaitGroup
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithSourceLang sets the default source language for records that do not
// declare one.
func WithSourceLang(lang string) TranslatorOption {
	return func(t *Translator) {
		t.sourceLang = lang
	}
}

// WithModeGate sets the runtime operation mode gate.
func WithModeGate(gate *ModeGate) TranslatorOption {
	return func(t *Translator) {
		t.gate = gate
	}
}

// WithCallTimeout sets the per-provider-call timeout, so one slow field
// cannot stall the others indefinitely.
func WithCallTimeout(d time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.callTimeout = d
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(sink metrics.Sink) TranslatorOption {
	return func(t *Translator) {
		t.metrics = sink
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator creates a Translator backed by the given provider.
func NewTranslator(provider Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		provider:    provider,
		gate:        NewModeGate(ModeFull),
		sourceLang:  "en",
		callTimeout: 10 * time.Second,
		metrics:     metrics.Nop{},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// unit is one translatable text, deduplicated by content hash across all
// fields of a record.
type unit struct {
	text string
	hash string
}

type unitResult struct {
	hash string
	text string
	err  error
}

// parsedField pairs a parsed field value with the hash of each of its
// segments.
type parsedField struct {
	field  *richtext.Field
	hashes []string
}

// TranslateRecord translates every field of the record into targetLang.
// It never fails on translation trouble: fields whose provider call
// degrades are served in the source language, and the record still comes
// back successfully. The only errors are context cancellation before any
// work completes.
func (t *Translator) TranslateRecord(ctx context.Context, record *Record, targetLang string) (*TranslatedRecord, error) {
	sourceLang := record.SourceLang
	if sourceLang == "" {
		sourceLang = t.sourceLang
	}
	sourceLang = NormalizeLang(sourceLang)
	targetLang = NormalizeLang(targetLang)

	out := &TranslatedRecord{
		ID:       record.ID,
		Language: targetLang,
		Fields:   make(map[string]string, len(record.Fields)),
	}

	// Same language means nothing to translate.
	if SameLanguage(sourceLang, targetLang) {
		for name, value := range record.Fields {
			out.Fields[name] = value
		}
		return out, nil
	}

	mode := t.gate.Current()
	switch mode {
	case ModeDisabled:
		for name, value := range record.Fields {
			out.Fields[name] = value
		}
		return out, nil
	case ModeMock:
		for name, value := range record.Fields {
			out.Fields[name] = fmt.Sprintf("[%s] %s", targetLang, value)
		}
		return out, nil
	}

	// Segment fields into translation units, deduplicated by hash.
	fields := make(map[string]*parsedField, len(record.Fields))
	units := make(map[string]unit)
	for name, value := range record.Fields {
		pf := &parsedField{field: richtext.Parse(value)}
		for _, seg := range pf.field.Segments() {
			hash := HashText(seg)
			pf.hashes = append(pf.hashes, hash)
			if _, seen := units[hash]; !seen {
				units[hash] = unit{text: NormalizeText(seg), hash: hash}
			}
		}
		fields[name] = pf
	}

	translated := make(map[string]string, len(units))
	var misses []unit
	for hash, u := range units {
		if t.cache != nil {
			if cached, ok := t.cache.Get(ctx, CacheKey(hash, sourceLang, targetLang)); ok {
				translated[hash] = cached
				t.metrics.Emit(metrics.CacheHits, 1, map[string]string{"lang": targetLang})
				continue
			}
		}
		t.metrics.Emit(metrics.CacheMisses, 1, map[string]string{"lang": targetLang})
		misses = append(misses, u)
	}

	if len(misses) > 0 && mode == ModeFull && t.provider != nil {
		t.fanOut(ctx, misses, sourceLang, targetLang, translated)
	}

	// Assemble fields, substituting source text for anything still missing.
	allCached := len(misses) == 0 && len(units) > 0
	degraded := make(map[string]bool)
	for name, pf := range fields {
		segs := pf.field.Segments()
		outSegs := make([]string, len(segs))
		for i, hash := range pf.hashes {
			if v, ok := translated[hash]; ok {
				outSegs[i] = v
			} else {
				outSegs[i] = segs[i]
				degraded[name] = true
			}
		}
		out.Fields[name] = pf.field.Apply(outSegs)
	}

	if len(degraded) > 0 {
		for _, name := range record.FieldNames() {
			if degraded[name] {
				out.Degraded = append(out.Degraded, name)
			}
		}
		t.metrics.Emit(metrics.DegradedFields, float64(len(degraded)), map[string]string{"lang": targetLang})
	}
	out.FromCache = allCached
	return out, nil
}

// fanOut issues provider calls for every cache miss concurrently, each with
// its own timeout, and writes successes back to the cache asynchronously.
// Failures are absorbed: the affected unit simply stays untranslated.
func (t *Translator) fanOut(ctx context.Context, misses []unit, sourceLang, targetLang string, translated map[string]string) {
	results := make(chan unitResult, len(misses))
	var wg sync.WaitGroup

	for _, u := range misses {
		wg.Add(1)
		go func(u unit) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, t.callTimeout)
			defer cancel()
			text, err := t.provider.Translate(callCtx, u.text, sourceLang, targetLang)
			results <- unitResult{hash: u.hash, text: text, err: err}
		}(u)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil {
			t.metrics.Emit(metrics.ProviderCalls, 1, map[string]string{"lang": targetLang, "outcome": "degraded"})
			t.logger.Warn("translation degraded to source text",
				zap.String("target_lang", targetLang),
				zap.Error(res.err))
			continue
		}
		t.metrics.Emit(metrics.ProviderCalls, 1, map[string]string{"lang": targetLang, "outcome": "ok"})
		translated[res.hash] = res.text
		t.writeCacheAsync(CacheKey(res.hash, sourceLang, targetLang), res.text, targetLang)
	}
}

// writeCacheAsync stores a fresh translation without blocking the request.
// The request already succeeded from the provider's answer, so a failed
// write is logged and swallowed.
func (t *Translator) writeCacheAsync(key, value, targetLang string) {
	if t.cache == nil {
		return
	}
	t.writes.Add(1)
	go func() {
		defer t.writes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := t.cache.Set(ctx, key, value); err != nil {
			t.metrics.Emit(metrics.CacheWriteFails, 1, map[string]string{"lang": targetLang})
			t.logger.Warn("cache write failed", zap.Error(err))
		}
	}()
}

// Flush blocks until all outstanding asynchronous cache writes complete.
// Intended for graceful shutdown and tests.
func (t *Translator) Flush() {
	t.writes.Wait()
}

// Mode returns the operation mode currently in effect.
func (t *Translator) Mode() Mode {
	return t.gate.Current()
}
