package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// storefront-gateway operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "sfg-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "sfg-alerts",
					Rules: []Rule{
						{
							Alert: "SfgDown",
							Expr:  `absent(up{job="storefront-gateway"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Storefront Gateway is down",
								"description": "The storefront-gateway job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "SfgReadinessDown",
							Expr:  `sfg_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Storefront Gateway readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "SfgHighErrorRate",
							Expr:  `sfg:http_errors:rate5m / sfg:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Storefront Gateway",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "SfgUpstreamFailing",
							Expr:  `sfg:upstream_failures:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Upstream {{ $labels.upstream }} calls are failing after retries",
								"description": "More than 0.1 logical calls/s to {{ $labels.upstream }} have exhausted their retries for 5 minutes.",
							},
						},
						{
							Alert: "SfgUpstreamSlow",
							Expr:  `sfg:upstream_duration:p95_5m > 10`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Upstream {{ $labels.upstream }} is slow",
								"description": "95th percentile call duration to {{ $labels.upstream }} has exceeded 10s for 10 minutes.",
							},
						},
						{
							Alert: "SfgDailyLimitReached",
							Expr:  `increase(sfg_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Daily quota for {{ $labels.upstream }} has been reached",
								"description": "Calls to {{ $labels.upstream }} are refused until the 24-hour window resets.",
							},
						},
						{
							Alert: "SfgEnrichmentDegraded",
							Expr:  `sfg:enrichment_failures:rate5m > 0.05`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Product pages are missing {{ $labels.stage }} data",
								"description": "The {{ $labels.stage }} lookup has been replaced by a failure marker at more than 0.05/s for 10 minutes.",
							},
						},
						{
							Alert: "SfgBrandFacetMissing",
							Expr:  `increase(sfg_brand_facet_missing_total[15m]) > 0`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Brand directory is empty",
								"description": "The catalog has omitted the brand facet for 15 minutes; the brand directory is served empty.",
							},
						},
					},
				},
			},
		},
	}
}
