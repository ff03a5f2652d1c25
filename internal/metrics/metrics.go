// Package metrics defines Prometheus metrics for storefront-gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sfg"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last /healthz probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last /readyz probe succeeded (1) or failed (0).",
	})
)

// Upstream fetch metrics. The upstream label is one of catalog,
// marketplace, content or currency.
var (
	UpstreamAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_attempts_total",
		Help:      "Total outbound attempts per upstream, including retries.",
	}, []string{"upstream"})

	UpstreamAttemptFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_attempt_failures_total",
		Help:      "Failed outbound attempts per upstream and failure reason.",
	}, []string{"upstream", "reason"})

	UpstreamFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_failures_total",
		Help:      "Logical upstream calls that failed after exhausting retries.",
	}, []string{"upstream"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_duration_seconds",
		Help:      "Duration of logical upstream calls in seconds, retries and backoff included.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"upstream"})
)

// Rate limiting metrics.
var (
	RateLimitWaitSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rate_limit_wait_seconds",
		Help:      "Time spent waiting for a client-side rate limit token.",
		Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"upstream"})

	DailyLimitHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "daily_limit_hits_total",
		Help:      "Total number of calls refused because an upstream's daily quota was exhausted.",
	}, []string{"upstream"})
)

// Aggregation metrics.
var (
	EnrichmentFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrichment_failures_total",
		Help:      "Secondary product-detail lookups replaced by a failure marker.",
	}, []string{"stage"})

	BrandFacetMissingTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "brand_facet_missing_total",
		Help:      "Brand directory requests answered with an empty list because the brand facet was absent.",
	})

	NormalizedDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "normalized_dropped_total",
		Help:      "Upstream records dropped during normalization for missing required fields.",
	}, []string{"kind"})
)
