// Package gateway exposes the translation cache service over HTTP.
package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kiranahq/lingocache"
	"github.com/kiranahq/lingocache/auth"
	"github.com/kiranahq/lingocache/metrics"
)

// Gateway wires the HTTP surface to the translation subsystem.
type Gateway struct {
	translator *lingocache.Translator
	batch      *lingocache.BatchTranslator
	paginator  *lingocache.Paginator
	catalog    lingocache.CatalogStore
	limiter    *lingocache.RateLimiter
	validator  auth.Validator
	metrics    metrics.Sink
	logger     *zap.Logger

	allowedLangs map[string]bool // empty means every known language
	defaultLang  string
}

// Options configures the Gateway.
type Options struct {
	Translator       *lingocache.Translator
	Batch            *lingocache.BatchTranslator
	Paginator        *lingocache.Paginator
	Catalog          lingocache.CatalogStore
	Limiter          *lingocache.RateLimiter
	Validator        auth.Validator
	Metrics          metrics.Sink
	Logger           *zap.Logger
	AllowedLanguages []string
	DefaultLang      string // language served when Accept-Language is absent
}

// New creates a Gateway.
func New(opts Options) *Gateway {
	g := &Gateway{
		translator:  opts.Translator,
		batch:       opts.Batch,
		paginator:   opts.Paginator,
		catalog:     opts.Catalog,
		limiter:     opts.Limiter,
		validator:   opts.Validator,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		defaultLang: opts.DefaultLang,
	}
	if g.metrics == nil {
		g.metrics = metrics.Nop{}
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.defaultLang == "" {
		g.defaultLang = "en"
	}
	if len(opts.AllowedLanguages) > 0 {
		g.allowedLangs = make(map[string]bool, len(opts.AllowedLanguages))
		for _, lang := range opts.AllowedLanguages {
			g.allowedLangs[lingocache.NormalizeLang(lang)] = true
		}
	}
	return g
}

// Routes returns the http.Handler with all routes and middleware configured.
func (g *Gateway) Routes() http.Handler {
	r := chi.NewRouter()

	// Order: correlation (outermost, so rejections carry it too) ->
	// logging -> auth -> rate limit -> handler.
	r.Use(g.correlationMiddleware)
	r.Use(g.loggingMiddleware)

	r.Get("/health", g.healthHandler)
	r.Get("/version", g.versionHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(g.authMiddleware)
		r.Use(g.rateLimitMiddleware)

		r.Get("/v1/products", g.listProductsHandler)
		r.Get("/v1/products/{id}", g.getProductHandler)
		r.Post("/v1/products/batch-translate", g.batchTranslateHandler)
	})

	return r
}
