// Package main generates the storefront-gateway Grafana dashboard and
// Prometheus rule files from Go definitions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/storefront-gateway/tools/dashgen/dashboards"
	"github.com/donaldgifford/storefront-gateway/tools/dashgen/rules"
	"github.com/donaldgifford/storefront-gateway/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file, relative to the output directory.
type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	artifacts, err := generate(cfg)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating directory for %s: %w", a.path, err)
		}
		if err := os.WriteFile(path, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", a.path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

func generate(cfg Config) ([]artifact, error) {
	var out []artifact

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building overview dashboard: %w", err)
		}

		result := validate.Dashboard(dash, KnownMetrics)
		if !result.Ok() {
			return nil, fmt.Errorf("invalid dashboard: %v", result.Errors)
		}

		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding dashboard: %w", err)
		}
		out = append(out, artifact{
			path: filepath.Join("grafana", "data", "sfg-overview.json"),
			data: append(data, '\n'),
		})
	}

	if cfg.RulesEnabled {
		ruleFiles := []struct {
			name string
			cr   rules.PrometheusRule
		}{
			{name: "sfg-recording-rules.yaml", cr: rules.RecordingRules()},
			{name: "sfg-alerts.yaml", cr: rules.AlertRules()},
		}
		for _, rf := range ruleFiles {
			name, cr := rf.name, rf.cr
			result := validate.Rules(cr, KnownMetrics)
			if !result.Ok() {
				return nil, fmt.Errorf("invalid rules in %s: %v", name, result.Errors)
			}

			data, err := yaml.Marshal(cr)
			if err != nil {
				return nil, fmt.Errorf("encoding %s: %w", name, err)
			}
			out = append(out, artifact{
				path: filepath.Join("prometheus", name),
				data: append([]byte(generatedHeader), data...),
			})

			plain, err := yaml.Marshal(cr.File())
			if err != nil {
				return nil, fmt.Errorf("encoding plain %s: %w", name, err)
			}
			out = append(out, artifact{
				path: filepath.Join("prometheus", "rules", name),
				data: append([]byte(generatedHeader), plain...),
			})
		}
	}

	return out, nil
}
