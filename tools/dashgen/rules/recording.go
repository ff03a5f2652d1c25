package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "sfg-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "sfg-recording",
					Rules: []Rule{
						{
							Record: "sfg:http_requests:rate5m",
							Expr:   `sum(rate(sfg_http_requests_total[5m]))`,
						},
						{
							Record: "sfg:http_errors:rate5m",
							Expr:   `sum(rate(sfg_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "sfg:upstream_attempts:rate5m",
							Expr:   `sum by (upstream) (rate(sfg_upstream_attempts_total[5m]))`,
						},
						{
							Record: "sfg:upstream_failures:rate5m",
							Expr:   `sum by (upstream) (rate(sfg_upstream_failures_total[5m]))`,
						},
						{
							Record: "sfg:upstream_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum by (upstream, le) (rate(sfg_upstream_duration_seconds_bucket[5m])))`,
						},
						{
							Record: "sfg:enrichment_failures:rate5m",
							Expr:   `sum by (stage) (rate(sfg_enrichment_failures_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
