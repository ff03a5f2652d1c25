// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/storefront-gateway/tools/dashgen/rules"
)

// Result collects validation findings. Errors make an artifact unusable;
// warnings flag likely mistakes.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// panelJSON is the subset of the dashboard JSON model the validator reads.
type panelJSON struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Targets []struct {
		Expr  string `json:"expr"`
		RefID string `json:"refId"`
	} `json:"targets"`
	Panels []panelJSON `json:"panels"`
}

// Dashboard validates every panel query in dash, which may be any value that
// encodes to the Grafana dashboard JSON model.
func Dashboard(dash any, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("encoding dashboard: %v", err)
		return res
	}

	var model struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &model); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	for _, p := range model.Panels {
		checkPanel(&res, p, known)
	}
	return res
}

func checkPanel(res *Result, p panelJSON, known map[string]bool) {
	for _, child := range p.Panels {
		checkPanel(res, child, known)
	}
	if p.Type == "row" {
		return
	}

	if len(p.Targets) == 0 {
		res.warnf("panel %q has no queries", p.Title)
	}

	refIDs := make(map[string]bool, len(p.Targets))
	for _, t := range p.Targets {
		if refIDs[t.RefID] {
			res.warnf("panel %q reuses refId %q", p.Title, t.RefID)
		}
		refIDs[t.RefID] = true
		checkExpr(res, "panel "+p.Title, t.Expr, known)
	}
}

// Rules validates every expression in a PrometheusRule resource. Recording
// rule names are accepted as metrics for the alerts in the same resource.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			switch {
			case r.Record == "" && r.Alert == "":
				res.errorf("group %s: rule has neither record nor alert", g.Name)
			case r.Record != "" && r.Alert != "":
				res.errorf("group %s: rule %s sets both record and alert", g.Name, r.Record)
			}

			name := r.Record
			if r.Alert != "" {
				name = r.Alert
				if r.Labels["severity"] == "" {
					res.warnf("alert %s has no severity label", r.Alert)
				}
			}
			checkExpr(&res, "rule "+name, r.Expr, known)
		}
	}
	return res
}

func checkExpr(res *Result, where, expr string, known map[string]bool) {
	if strings.TrimSpace(expr) == "" {
		res.errorf("%s: empty expression", where)
		return
	}

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: %v", where, err)
		return
	}

	for _, name := range metricNames(parsed) {
		if !known[name] && !known[baseName(name)] {
			res.errorf("%s: unknown metric %q", where, name)
		}
	}
}

func metricNames(expr parser.Expr) []string {
	var names []string
	parser.Inspect(expr, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		name := vs.Name
		if name == "" {
			for _, m := range vs.LabelMatchers {
				if m.Name == labels.MetricName {
					name = m.Value
				}
			}
		}
		if name != "" {
			names = append(names, name)
		}
		return nil
	})
	return names
}

func baseName(name string) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			return base
		}
	}
	return name
}
