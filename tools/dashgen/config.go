package main

import "errors"

// KnownMetrics is the set of metric names exported by storefront-gateway
// plus recording rule names referenced in dashboards and alerts. Histogram
// series suffixes (_bucket, _sum, _count) resolve to their base name.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"sfg_http_request_duration_seconds": true,
	"sfg_http_requests_total":           true,

	// Health metrics.
	"sfg_healthz_up": true,
	"sfg_readyz_up":  true,

	// Upstream fetch metrics.
	"sfg_upstream_attempts_total":         true,
	"sfg_upstream_attempt_failures_total": true,
	"sfg_upstream_failures_total":         true,
	"sfg_upstream_duration_seconds":       true,

	// Rate limiting metrics.
	"sfg_rate_limit_wait_seconds": true,
	"sfg_daily_limit_hits_total":  true,

	// Aggregation metrics.
	"sfg_enrichment_failures_total": true,
	"sfg_brand_facet_missing_total": true,
	"sfg_normalized_dropped_total":  true,

	// Recording rules.
	"sfg:http_requests:rate5m":       true,
	"sfg:http_errors:rate5m":         true,
	"sfg:upstream_attempts:rate5m":   true,
	"sfg:upstream_failures:rate5m":   true,
	"sfg:upstream_duration:p95_5m":   true,
	"sfg:enrichment_failures:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
