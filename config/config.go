// Package config loads service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Cache       CacheConfig       `yaml:"cache"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Provider    ProviderConfig    `yaml:"provider"`
	Translation TranslationConfig `yaml:"translation"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Circuit     CircuitConfig     `yaml:"circuit"`
	Auth        AuthConfig        `yaml:"auth"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	ListenAddr   string        `yaml:"listen_addr"`   // default ":8080"
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default 10s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default 30s
}

// CacheConfig contains translation cache settings.
type CacheConfig struct {
	Backend  string `yaml:"backend"`   // "redis" or "memory" (default: "memory")
	RedisURL string `yaml:"redis_url"` // e.g. "redis://localhost:6379"
	TTLDays  int    `yaml:"ttl_days"`  // default 30
}

// CatalogConfig contains catalog store settings.
type CatalogConfig struct {
	Backend    string `yaml:"backend"`     // "sqlite" or "memory" (default: "memory")
	SQLitePath string `yaml:"sqlite_path"` // path to the marketplace db
}

// ProviderConfig contains translation provider settings.
type ProviderConfig struct {
	Backend     string        `yaml:"backend"`      // "openai" or "mock" (default: "mock")
	APIKey      string        `yaml:"api_key"`      // also OPENAI_API_KEY
	Model       string        `yaml:"model"`        // default "gpt-4o-mini"
	BaseURL     string        `yaml:"base_url"`     // optional custom endpoint
	CallTimeout time.Duration `yaml:"call_timeout"` // per-call timeout, default 10s
	MaxAttempts int           `yaml:"max_attempts"` // retry budget, default 3
}

// TranslationConfig contains orchestration settings.
type TranslationConfig struct {
	SourceLang       string   `yaml:"source_lang"`       // default "en"
	AllowedLanguages []string `yaml:"allowed_languages"` // empty = every known language
	OperationMode    string   `yaml:"operation_mode"`    // disabled|mock|cache_only|full
	MaxBatchSize     int      `yaml:"max_batch_size"`    // default 100
	BatchConcurrency int      `yaml:"batch_concurrency"` // default 8
	DefaultPageSize  int      `yaml:"default_page_size"` // default 20
	MaxPageSize      int      `yaml:"max_page_size"`     // default 100
}

// RateLimitConfig contains per-client rate limiter settings.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"` // default 60
}

// CircuitConfig contains circuit breaker settings.
type CircuitConfig struct {
	FailureThreshold int `yaml:"failure_threshold"` // default 5
	CooldownSeconds  int `yaml:"cooldown_seconds"`  // default 60
}

// AuthConfig maps API keys to client identities.
type AuthConfig struct {
	APIKeys map[string]string `yaml:"api_keys"` // key -> client id
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // default "info"
	Format string `yaml:"format"` // "json" or "console"
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:   ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTLDays: 30,
		},
		Catalog: CatalogConfig{
			Backend: "memory",
		},
		Provider: ProviderConfig{
			Backend:     "mock",
			Model:       "gpt-4o-mini",
			CallTimeout: 10 * time.Second,
			MaxAttempts: 3,
		},
		Translation: TranslationConfig{
			SourceLang:       "en",
			OperationMode:    "full",
			MaxBatchSize:     100,
			BatchConcurrency: 8,
			DefaultPageSize:  20,
			MaxPageSize:      100,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Circuit: CircuitConfig{
			FailureThreshold: 5,
			CooldownSeconds:  60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the configuration file at path (optional), applies environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays the recognized environment variables.
func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString(&c.Server.ListenAddr, "LISTEN_ADDR")
	setString(&c.Cache.RedisURL, "REDIS_URL")
	setInt(&c.Cache.TTLDays, "CACHE_TTL_DAYS")
	setString(&c.Catalog.SQLitePath, "CATALOG_SQLITE_PATH")
	setString(&c.Provider.APIKey, "OPENAI_API_KEY")
	setInt(&c.Provider.MaxAttempts, "RETRY_MAX_ATTEMPTS")
	setInt(&c.Translation.MaxBatchSize, "MAX_BATCH_SIZE")
	setInt(&c.Translation.DefaultPageSize, "DEFAULT_PAGE_SIZE")
	setInt(&c.Translation.MaxPageSize, "MAX_PAGE_SIZE")
	setString(&c.Translation.OperationMode, "OPERATION_MODE")
	setInt(&c.RateLimit.RequestsPerMinute, "RATE_LIMIT_PER_MINUTE")
	setInt(&c.Circuit.FailureThreshold, "CIRCUIT_FAILURE_THRESHOLD")
	setInt(&c.Circuit.CooldownSeconds, "CIRCUIT_COOLDOWN_SECONDS")
	setString(&c.Logging.Level, "LOG_LEVEL")

	if v := os.Getenv("ALLOWED_LANGUAGES"); v != "" {
		parts := strings.Split(v, ",")
		langs := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				langs = append(langs, p)
			}
		}
		c.Translation.AllowedLanguages = langs
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Translation.OperationMode {
	case "disabled", "mock", "cache_only", "full":
	default:
		return fmt.Errorf("invalid operation_mode %q", c.Translation.OperationMode)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache backend is redis but redis_url is empty")
	}
	if c.Catalog.Backend == "sqlite" && c.Catalog.SQLitePath == "" {
		return fmt.Errorf("catalog backend is sqlite but sqlite_path is empty")
	}
	if c.Provider.Backend == "openai" && c.Provider.APIKey == "" {
		return fmt.Errorf("provider backend is openai but api_key is empty")
	}
	if c.Translation.MaxBatchSize <= 0 {
		return fmt.Errorf("max_batch_size must be positive")
	}
	if c.Translation.MaxPageSize < c.Translation.DefaultPageSize {
		return fmt.Errorf("max_page_size %d below default_page_size %d",
			c.Translation.MaxPageSize, c.Translation.DefaultPageSize)
	}
	return nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLDays) * 24 * time.Hour
}

// CircuitCooldown returns the breaker cooldown as a duration.
func (c *Config) CircuitCooldown() time.Duration {
	return time.Duration(c.Circuit.CooldownSeconds) * time.Second
}
