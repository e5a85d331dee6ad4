// Command lingocache runs the multilingual content translation cache
// service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kiranahq/lingocache"
	"github.com/kiranahq/lingocache/auth"
	"github.com/kiranahq/lingocache/cache"
	"github.com/kiranahq/lingocache/catalog"
	"github.com/kiranahq/lingocache/config"
	"github.com/kiranahq/lingocache/gateway"
	"github.com/kiranahq/lingocache/logging"
	"github.com/kiranahq/lingocache/metrics"
	"github.com/kiranahq/lingocache/provider"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lingocache", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to YAML config file")
	cacheImport := fs.String("cache-import", "", "Warm-start the cache from a JSON export")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", lingocache.Name, lingocache.Version)
		if lingocache.GitCommit != "unknown" && lingocache.GitCommit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", lingocache.GitCommit)
		}
		if lingocache.BuildDate != "unknown" && lingocache.BuildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", lingocache.BuildDate)
		}
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Cache store
	var translationCache lingocache.TranslationCache
	switch cfg.Cache.Backend {
	case "redis":
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			URL: cfg.Cache.RedisURL,
			TTL: cfg.CacheTTL(),
		})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rc.Close()
		translationCache = rc
	case "memory", "":
		translationCache = cache.NewMemoryCache(cfg.CacheTTL())
	default:
		return fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	if *cacheImport != "" {
		f, err := os.Open(*cacheImport)
		if err != nil {
			return fmt.Errorf("opening cache import: %w", err)
		}
		n, err := cache.Import(f, translationCache)
		f.Close()
		if err != nil {
			return err
		}
		logger.Info("cache warm-started", zap.Int("entries", n))
	}

	// Catalog store
	var catalogStore lingocache.CatalogStore
	switch cfg.Catalog.Backend {
	case "sqlite":
		ss, err := catalog.NewSQLiteStore(cfg.Catalog.SQLitePath)
		if err != nil {
			return err
		}
		defer ss.Close()
		catalogStore = ss
	case "memory", "":
		catalogStore = catalog.NewMemoryStore()
	default:
		return fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}

	// Provider with retry and circuit breaker decorators
	var base lingocache.Provider
	switch cfg.Provider.Backend {
	case "openai":
		base = provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:  cfg.Provider.APIKey,
			Model:   cfg.Provider.Model,
			BaseURL: cfg.Provider.BaseURL,
		})
	case "mock", "":
		base = provider.NewMockProvider()
	default:
		return fmt.Errorf("unknown provider backend %q", cfg.Provider.Backend)
	}

	breaker := lingocache.NewCircuitBreaker(lingocache.BreakerConfig{
		FailureThreshold: cfg.Circuit.FailureThreshold,
		Cooldown:         cfg.CircuitCooldown(),
	})
	retryCfg := lingocache.DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.Provider.MaxAttempts
	guarded := lingocache.NewRetryProvider(lingocache.NewBreakerProvider(base, breaker), retryCfg)

	mode, err := lingocache.ParseMode(cfg.Translation.OperationMode)
	if err != nil {
		return err
	}
	gate := lingocache.NewModeGate(mode)

	sink := metrics.NewPromSink(prometheus.DefaultRegisterer)

	translator := lingocache.NewTranslator(guarded,
		lingocache.WithCache(translationCache),
		lingocache.WithSourceLang(cfg.Translation.SourceLang),
		lingocache.WithModeGate(gate),
		lingocache.WithCallTimeout(cfg.Provider.CallTimeout),
		lingocache.WithMetrics(sink),
		lingocache.WithLogger(logger),
	)

	batch := lingocache.NewBatchTranslator(catalogStore, translator, lingocache.BatchConfig{
		MaxBatchSize: cfg.Translation.MaxBatchSize,
		Concurrency:  cfg.Translation.BatchConcurrency,
	})
	paginator := lingocache.NewPaginator(catalogStore, translator, lingocache.PageConfig{
		DefaultPageSize: cfg.Translation.DefaultPageSize,
		MaxPageSize:     cfg.Translation.MaxPageSize,
	})

	limiter := lingocache.NewRateLimiter(lingocache.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
		Window:            time.Minute,
	})
	stop := make(chan struct{})
	defer close(stop)
	limiter.StartCleanup(5*time.Minute, 30*time.Minute, stop)

	gw := gateway.New(gateway.Options{
		Translator:       translator,
		Batch:            batch,
		Paginator:        paginator,
		Catalog:          catalogStore,
		Limiter:          limiter,
		Validator:        auth.NewStaticValidator(cfg.Auth.APIKeys),
		Metrics:          sink,
		Logger:           logger,
		AllowedLanguages: cfg.Translation.AllowedLanguages,
		DefaultLang:      cfg.Translation.SourceLang,
	})

	server := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      gw.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.ListenAddr))
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	translator.Flush()
	return nil
}
