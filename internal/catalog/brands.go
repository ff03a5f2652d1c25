package catalog

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/donaldgifford/storefront-gateway/internal/metrics"
	"github.com/donaldgifford/storefront-gateway/pkg/logger"
	"github.com/donaldgifford/storefront-gateway/pkg/slug"
	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

const brandFacet = "brand"

// Brands implements Client.Brands. A response without a brand facet yields
// an empty directory rather than an error.
func (c *HTTPClient) Brands(ctx context.Context) ([]domain.BrandSummary, error) {
	params := url.Values{}
	params.Set("page", "1")
	params.Set("per_page", "1")
	params.Set("facet_limit", strconv.Itoa(c.facetLimit))

	var apiResp searchAPIResponse
	if err := c.get(ctx, c.searchPath, params, &apiResp); err != nil {
		return nil, fmt.Errorf("fetching brand facet: %w", err)
	}

	var options []FacetOption
	for _, f := range apiResp.Facets {
		if f.Name == brandFacet {
			options = f.Options
			break
		}
	}

	if len(options) == 0 {
		metrics.BrandFacetMissingTotal.Inc()
		logger.FromContext(ctx, c.log).Info("brand facet missing from catalog response",
			"facets", len(apiResp.Facets),
		)
		return []domain.BrandSummary{}, nil
	}

	return ToBrands(options), nil
}

// ToBrands turns brand facet options into a directory sorted by name.
// Entries whose trimmed name or derived slug is empty are dropped.
func ToBrands(options []FacetOption) []domain.BrandSummary {
	brands := make([]domain.BrandSummary, 0, len(options))
	for _, o := range options {
		name := strings.TrimSpace(o.Value)
		s := slug.Make(name)
		if name == "" || s == "" {
			continue
		}
		brands = append(brands, domain.BrandSummary{Name: name, Slug: s})
	}

	if dropped := len(options) - len(brands); dropped > 0 {
		metrics.NormalizedDroppedTotal.WithLabelValues("brand").Add(float64(dropped))
	}

	// Collators keep internal buffers and are not safe to share.
	col := collate.New(language.English, collate.Loose)
	slices.SortStableFunc(brands, func(a, b domain.BrandSummary) int {
		return col.CompareString(a.Name, b.Name)
	})
	return brands
}
