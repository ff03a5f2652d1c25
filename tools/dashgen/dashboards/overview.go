// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/storefront-gateway/tools/dashgen/panels"
)

// BuildOverview constructs the SFG Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("SFG Overview").
		Uid("sfg-overview").
		Tags([]string{"sfg", "storefront-gateway"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.UpstreamFailuresStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Upstreams.
	b.WithRow(dashboard.NewRowBuilder("Upstreams").
		WithPanel(panels.AttemptRate()).
		WithPanel(panels.UpstreamLatency()).
		WithPanel(panels.AttemptFailures()).
		WithPanel(panels.LogicalFailures()))

	// Row 4: Rate limiting.
	b.WithRow(dashboard.NewRowBuilder("Rate Limiting").
		WithPanel(panels.RateLimitWait()).
		WithPanel(panels.LimitHits()))

	// Row 5: Aggregation.
	b.WithRow(dashboard.NewRowBuilder("Aggregation").
		WithPanel(panels.EnrichmentFailures()).
		WithPanel(panels.NormalizedDropped()).
		WithPanel(panels.BrandFacetMissing()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
