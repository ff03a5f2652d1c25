// Package main implements a mock of the storefront upstreams for local
// development. It serves canned search-engine, marketplace, content-feed and
// exchange-rate responses from an embedded fixture, with optional fault
// injection for exercising retries and partial failures.
package main

import (
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

//go:embed fixtures/catalog.json
var defaultFixture []byte

type product struct {
	ID                    json.RawMessage `json:"id"`
	Name                  string          `json:"name"`
	Slug                  string          `json:"slug"`
	ImageURL              string          `json:"image_url"`
	LowestPriceCents      int64           `json:"lowest_price_cents"`
	InstantShipPriceCents *int64          `json:"instant_ship_lowest_price_cents,omitempty"`
	ProductCondition      string          `json:"product_condition"`
	BoxCondition          string          `json:"box_condition"`
	Brand                 string          `json:"brand"`
}

type fixture struct {
	Products    []product          `json:"products"`
	Suggestions []string           `json:"suggestions"`
	Rates       map[string]float64 `json:"rates"`
}

type facetOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type facet struct {
	Name    string        `json:"name"`
	Label   string        `json:"label"`
	Type    string        `json:"type"`
	Options []facetOption `json:"options"`
}

type searchResponse struct {
	Results []product `json:"results"`
	Total   *int      `json:"total,omitempty"`
	Facets  []facet   `json:"facets"`
}

// faults controls injected failures.
type faults struct {
	// flaky fails this many requests with 503 before serving normally.
	flaky atomic.Int64
	// failPrices makes every price lookup return 502.
	failPrices bool
	// apiKey, when set, is required in X-Api-Key on search-engine calls.
	apiKey string
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "", "path to a fixture file (default: embedded fixture)")
	apiKey := flag.String("api-key", "dev-key", "required X-Api-Key for search-engine calls, empty to disable")
	flaky := flag.Int64("flaky", 0, "fail the first N requests with 503")
	failPrices := flag.Bool("fail-prices", false, "fail every price lookup with 502")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	data := defaultFixture
	if *fixtureFile != "" {
		b, err := os.ReadFile(*fixtureFile) //nolint:gosec // fixture path from trusted CLI flag
		if err != nil {
			logger.Error("failed to read fixture", "path", *fixtureFile, "error", err)
			os.Exit(1)
		}
		data = b
	}

	fx, err := parseFixture(data)
	if err != nil {
		logger.Error("failed to load fixture", "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "products", len(fx.Products), "suggestions", len(fx.Suggestions))

	f := &faults{failPrices: *failPrices, apiKey: *apiKey}
	f.flaky.Store(*flaky)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock upstream server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      newHandler(logger, fx, f),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func parseFixture(data []byte) (*fixture, error) {
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func newHandler(logger *slog.Logger, fx *fixture, f *faults) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", requireKey(f, searchHandler(logger, fx)))
	mux.HandleFunc("GET /for-you", requireKey(f, feedHandler(fx)))
	mux.HandleFunc("GET /product_templates/{ref}", templateHandler(fx))
	mux.HandleFunc("GET /product_templates/{ref}/prices", priceHandler(fx, f))
	mux.HandleFunc("GET /product_templates/{ref}/recommendations", recommendationsHandler(fx))
	mux.HandleFunc("GET /content/search-suggestions", suggestionsHandler(fx))
	mux.HandleFunc("GET /rates", ratesHandler(fx))

	return requestLogger(logger, injectFaults(f, mux))
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"request_id", r.Header.Get("X-Request-ID"),
		)
		next.ServeHTTP(w, r)
	})
}

func injectFaults(f *faults, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.flaky.Add(-1) >= 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "temporarily overloaded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireKey(f *faults, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if f.apiKey != "" && r.Header.Get("X-Api-Key") != f.apiKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid api key"})
			return
		}
		next(w, r)
	}
}

func searchHandler(logger *slog.Logger, fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, perPage := pageParams(q)

		// The brand facet covers every match, not just the returned page.
		query := strings.ToLower(q.Get("query"))
		brands := q["brand"]

		var matched []product
		for _, p := range fx.Products {
			if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
				continue
			}
			if len(brands) > 0 && !slices.ContainsFunc(brands, func(b string) bool {
				return strings.EqualFold(b, p.Brand)
			}) {
				continue
			}
			matched = append(matched, p)
		}

		total := len(matched)
		resp := searchResponse{
			Results: paginate(matched, page, perPage),
			Total:   &total,
			Facets:  []facet{brandFacet(matched, q.Get("facet_limit"))},
		}

		writeJSON(w, http.StatusOK, resp)
		logger.Info("search", "query", query, "matched", total, "returned", len(resp.Results), "page", page)
	}
}

func feedHandler(fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, perPage := pageParams(r.URL.Query())
		writeJSON(w, http.StatusOK, searchResponse{
			Results: paginate(fx.Products, page, perPage),
			Facets:  []facet{},
		})
	}
}

func templateHandler(fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := lookup(fx, r.PathValue("ref"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "product template not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":          p.ID,
			"name":        p.Name,
			"slug":        p.Slug,
			"image_url":   p.ImageURL,
			"brand":       p.Brand,
			"description": p.Name + " in " + p.ProductCondition + " condition.",
		})
	}
}

func priceHandler(fx *fixture, f *faults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if f.failPrices {
			writeJSON(w, http.StatusBadGateway, map[string]string{"message": "pricing service unavailable"})
			return
		}
		p, ok := lookup(fx, r.PathValue("ref"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "no prices for template"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"region":                r.URL.Query().Get("region"),
			"lowest_price_cents":    p.LowestPriceCents,
			"instant_ship_cents":    p.InstantShipPriceCents,
			"last_sale_price_cents": p.LowestPriceCents + 1500,
		})
	}
}

func recommendationsHandler(fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := 8
		if v, err := strconv.Atoi(r.URL.Query().Get("count")); err == nil && v > 0 {
			count = v
		}

		ref := r.PathValue("ref")
		recs := make([]product, 0, count)
		for _, p := range fx.Products {
			if len(recs) == count {
				break
			}
			if idString(p.ID) == ref || p.Slug == ref {
				continue
			}
			recs = append(recs, p)
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": recs})
	}
}

func suggestionsHandler(fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		subs := make([]map[string]string, 0, len(fx.Suggestions))
		for _, s := range fx.Suggestions {
			subs = append(subs, map[string]string{"title": s})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"sections": []map[string]any{{"subsections": subs}},
		})
	}
}

func ratesHandler(fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"base":  strings.ToUpper(r.URL.Query().Get("base")),
			"rates": fx.Rates,
		})
	}
}

func pageParams(q map[string][]string) (page, perPage int) {
	page, perPage = 1, 24
	if v, err := strconv.Atoi(first(q["page"])); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(first(q["per_page"])); err == nil && v > 0 {
		perPage = v
	}
	return page, perPage
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func paginate(items []product, page, perPage int) []product {
	start := (page - 1) * perPage
	if start >= len(items) {
		return []product{}
	}
	end := min(start+perPage, len(items))
	return items[start:end]
}

func brandFacet(items []product, limitStr string) facet {
	counts := make(map[string]int)
	var order []string
	for _, p := range items {
		if _, ok := counts[p.Brand]; !ok {
			order = append(order, p.Brand)
		}
		counts[p.Brand]++
	}

	if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit < len(order) {
		order = order[:limit]
	}

	opts := make([]facetOption, 0, len(order))
	for _, b := range order {
		opts = append(opts, facetOption{Value: b, Count: counts[b]})
	}
	return facet{Name: "brand", Label: "Brand", Type: "multi_select", Options: opts}
}

func lookup(fx *fixture, ref string) (product, bool) {
	for _, p := range fx.Products {
		if p.Slug == ref || idString(p.ID) == ref {
			return p, true
		}
	}
	return product{}, false
}

func idString(raw json.RawMessage) string {
	return strings.Trim(string(raw), `"`)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
