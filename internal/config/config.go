// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Marketplace MarketplaceConfig `yaml:"marketplace"`
	Content     ContentConfig     `yaml:"content"`
	Currency    CurrencyConfig    `yaml:"currency"`
	Logging     LoggingConfig     `yaml:"logging"`
	Tracing     TracingConfig     `yaml:"tracing"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// FetchConfig bounds calls to one upstream.
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	Backoff     time.Duration `yaml:"backoff"`
}

// RateLimitConfig defines client-side rate limiting for one upstream.
// A zero PerSecond disables limiting.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// CatalogConfig defines the product search engine settings.
type CatalogConfig struct {
	BaseURL         string          `yaml:"base_url"`
	SearchPath      string          `yaml:"search_path"`
	FeedPath        string          `yaml:"feed_path"`
	APIKey          string          `yaml:"api_key"`
	PageSize        int             `yaml:"page_size"`
	BrandFacetLimit int             `yaml:"brand_facet_limit"`
	Fetch           FetchConfig     `yaml:"fetch"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// MarketplaceConfig defines the product-detail service settings.
type MarketplaceConfig struct {
	BaseURL             string          `yaml:"base_url"`
	RegionCode          string          `yaml:"region_code"`
	RecommendationCount int             `yaml:"recommendation_count"`
	Fetch               FetchConfig     `yaml:"fetch"`
	RateLimit           RateLimitConfig `yaml:"rate_limit"`
}

// ContentConfig defines the search-suggestion feed settings.
type ContentConfig struct {
	SuggestionsURL string      `yaml:"suggestions_url"`
	Fetch          FetchConfig `yaml:"fetch"`
}

// CurrencyConfig defines the exchange-rate service settings.
type CurrencyConfig struct {
	URL     string        `yaml:"url"`
	Base    string        `yaml:"base"`
	Target  string        `yaml:"target"`
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TracingConfig defines OTLP trace export. Tracing is off unless Enabled.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // host:port of the OTLP gRPC collector
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse expands environment variables in data, decodes it, applies defaults
// and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyCatalogDefaults(&cfg.Catalog)
	applyMarketplaceDefaults(&cfg.Marketplace)
	applyContentDefaults(&cfg.Content)
	applyCurrencyDefaults(&cfg.Currency)
	applyLoggingDefaults(&cfg.Logging)
	applyTracingDefaults(&cfg.Tracing)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		// Room for three 15s attempts plus backoff.
		s.WriteTimeout = 60 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func applyFetchDefaults(f *FetchConfig, timeout time.Duration) {
	if f.Timeout == 0 {
		f.Timeout = timeout
	}
	if f.MaxAttempts == 0 {
		f.MaxAttempts = 3
	}
	if f.Backoff == 0 {
		f.Backoff = 2 * time.Second
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond > 0 && r.Burst == 0 {
		r.Burst = max(1, int(r.PerSecond))
	}
}

func applyCatalogDefaults(c *CatalogConfig) {
	if c.SearchPath == "" {
		c.SearchPath = "/search"
	}
	if c.FeedPath == "" {
		c.FeedPath = "/for-you"
	}
	if c.PageSize == 0 {
		c.PageSize = 24
	}
	if c.BrandFacetLimit == 0 {
		c.BrandFacetLimit = 1000
	}
	applyFetchDefaults(&c.Fetch, 15*time.Second)
	applyRateLimitDefaults(&c.RateLimit)
}

func applyMarketplaceDefaults(m *MarketplaceConfig) {
	if m.RegionCode == "" {
		m.RegionCode = "MN"
	}
	if m.RecommendationCount == 0 {
		m.RecommendationCount = 8
	}
	applyFetchDefaults(&m.Fetch, 10*time.Second)
	applyRateLimitDefaults(&m.RateLimit)
}

func applyContentDefaults(c *ContentConfig) {
	applyFetchDefaults(&c.Fetch, 10*time.Second)
}

func applyCurrencyDefaults(c *CurrencyConfig) {
	if c.Base == "" {
		c.Base = "USD"
	}
	if c.Target == "" {
		c.Target = "MNT"
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	c.Base = strings.ToUpper(c.Base)
	c.Target = strings.ToUpper(c.Target)
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Catalog.BaseURL == "" {
		errs = append(errs, fmt.Errorf("catalog.base_url is required"))
	}
	if cfg.Catalog.APIKey == "" {
		errs = append(errs, fmt.Errorf("catalog.api_key is required"))
	}
	if cfg.Marketplace.BaseURL == "" {
		errs = append(errs, fmt.Errorf("marketplace.base_url is required"))
	}
	if cfg.Content.SuggestionsURL == "" {
		errs = append(errs, fmt.Errorf("content.suggestions_url is required"))
	}
	if cfg.Currency.URL == "" {
		errs = append(errs, fmt.Errorf("currency.url is required"))
	}

	for name, f := range map[string]FetchConfig{
		"catalog":     cfg.Catalog.Fetch,
		"marketplace": cfg.Marketplace.Fetch,
		"content":     cfg.Content.Fetch,
	} {
		if f.MaxAttempts < 1 {
			errs = append(errs, fmt.Errorf("%s.fetch.max_attempts must be at least 1 (got %d)", name, f.MaxAttempts))
		}
		if f.Timeout < 0 || f.Backoff < 0 {
			errs = append(errs, fmt.Errorf("%s.fetch durations must not be negative", name))
		}
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1 (got %g)", cfg.Tracing.SampleRatio))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
