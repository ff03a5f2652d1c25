package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/storefront-gateway/tools/dashgen/dashboards"
	"github.com/donaldgifford/storefront-gateway/tools/dashgen/rules"
	"github.com/donaldgifford/storefront-gateway/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	builder := dashboards.BuildOverview()
	dash, err := builder.Build()
	require.NoError(t, err)

	// Verify dashboard metadata.
	require.NotNil(t, dash.Uid)
	assert.Equal(t, "sfg-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "SFG Overview", *dash.Title)

	// Verify template variable.
	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	// Verify we have 5 rows.
	assert.Len(t, dash.Panels, 5)

	// Count total inner panels.
	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 16, totalPanels)

	// Validate PromQL and metrics.
	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "sfg-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "sfg-recording", group.Name)
	require.Len(t, group.Rules, 6)

	expectedRecords := []string{
		"sfg:http_requests:rate5m",
		"sfg:http_errors:rate5m",
		"sfg:upstream_attempts:rate5m",
		"sfg:upstream_failures:rate5m",
		"sfg:upstream_duration:p95_5m",
		"sfg:enrichment_failures:rate5m",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedRecords[i], rule.Record)
		assert.True(t, KnownMetrics[rule.Record], "recording rule %s missing from KnownMetrics", rule.Record)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)

	// Verify YAML marshaling works.
	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "sfg-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "sfg-alerts", group.Name)
	require.Len(t, group.Rules, 8)

	expectedAlerts := []string{
		"SfgDown",
		"SfgReadinessDown",
		"SfgHighErrorRate",
		"SfgUpstreamFailing",
		"SfgUpstreamSlow",
		"SfgDailyLimitReached",
		"SfgEnrichmentDegraded",
		"SfgBrandFacetMissing",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Expr)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	require.NoError(t, run(cfg, false))

	for _, rel := range []string{
		filepath.Join("grafana", "data", "sfg-overview.json"),
		filepath.Join("prometheus", "sfg-recording-rules.yaml"),
		filepath.Join("prometheus", "sfg-alerts.yaml"),
		filepath.Join("prometheus", "rules", "sfg-recording-rules.yaml"),
		filepath.Join("prometheus", "rules", "sfg-alerts.yaml"),
	} {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, rel))
		require.NoError(t, err, "missing %s", rel)
		assert.NotEmpty(t, data)
	}

	plain, err := os.ReadFile(filepath.Join(cfg.OutputDir, "prometheus", "rules", "sfg-alerts.yaml"))
	require.NoError(t, err)
	assert.True(t, len(plain) > len(generatedHeader))
	assert.Equal(t, generatedHeader, string(plain[:len(generatedHeader)]))
	assert.NotContains(t, string(plain), "apiVersion")
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	require.NoError(t, run(cfg, true))

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
