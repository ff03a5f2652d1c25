package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// EnrichmentFailures returns a timeseries panel showing product-detail
// lookups answered with a failure marker, by stage (price, recommendations).
func EnrichmentFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Enrichment Failures").
		Description("Secondary product-detail lookups replaced by a failure marker").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`sfg:enrichment_failures:rate5m`, "{{stage}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NormalizedDropped returns a timeseries panel showing upstream records
// dropped during normalization, by kind.
func NormalizedDropped() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Dropped Records / min").
		Description("Upstream records dropped for missing required fields").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (kind) (rate(`+Selector("sfg_normalized_dropped_total")+`[5m])) * 60`,
			"{{kind}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// BrandFacetMissing returns a stat panel showing brand directory requests
// answered empty because the catalog omitted the brand facet.
func BrandFacetMissing() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Brand Facet Missing (24h)").
		Description("Brand directory requests answered with an empty list").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`increase(`+Selector("sfg_brand_facet_missing_total")+`[24h])`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
