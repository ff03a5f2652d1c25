package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// AttemptRate returns a timeseries panel showing outbound attempts per
// second for each upstream, retries included.
func AttemptRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Attempts / s").
		Description("Outbound attempts per upstream, retries included").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sfg:upstream_attempts:rate5m`, "{{upstream}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// UpstreamLatency returns a timeseries panel showing the p95 duration of
// logical upstream calls, backoff included.
func UpstreamLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Upstream Latency (p95)").
		Description("95th percentile logical call duration per upstream, retries and backoff included").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sfg:upstream_duration:p95_5m`, "{{upstream}}", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(5, 15)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// AttemptFailures returns a timeseries panel showing failed attempts by
// upstream and reason (timeout, network, status, decode).
func AttemptFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Attempt Failures").
		Description("Failed outbound attempts per second by upstream and reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (upstream, reason) (rate(`+Selector("sfg_upstream_attempt_failures_total")+`[5m]))`,
			"{{upstream}} {{reason}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LogicalFailures returns a timeseries panel showing calls that failed
// after exhausting retries.
func LogicalFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Exhausted Calls").
		Description("Logical upstream calls per second that failed after all retries").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sfg:upstream_failures:rate5m`, "{{upstream}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RateLimitWait returns a timeseries panel showing the p95 time spent
// waiting for a client-side rate limit token.
func RateLimitWait() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Rate Limit Wait (p95)").
		Description("95th percentile wait for a rate limit token per upstream").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum by (upstream, le) (rate(`+
				Selector("sfg_rate_limit_wait_seconds_bucket")+`[5m])))`,
			"{{upstream}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.5, 2)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LimitHits returns a stat panel showing the number of calls refused by a
// daily quota in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Daily Limit Hits (24h)").
		Description("Calls refused because an upstream's daily quota was exhausted").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(`+Selector("sfg_daily_limit_hits_total")+`[24h]))`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
