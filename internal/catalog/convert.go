package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/donaldgifford/storefront-gateway/internal/metrics"
	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

// ToProductSummary converts a raw search result into the canonical product
// card. The second return is false when the record lacks an id, slug, image
// or name and must be dropped.
func ToProductSummary(p Product) (domain.ProductSummary, bool) {
	s := domain.ProductSummary{
		ID:               strings.TrimSpace(string(p.ID)),
		Name:             strings.TrimSpace(p.Name),
		Slug:             strings.TrimSpace(p.Slug),
		Image:            strings.TrimSpace(p.ImageURL),
		ProductCondition: p.ProductCondition,
		BoxCondition:     p.BoxCondition,
	}

	if p.PriceCent != nil {
		s.Price = centsToMajor(*p.PriceCent)
	}
	if p.InstantShipPriceCents != nil {
		v := centsToMajor(*p.InstantShipPriceCents)
		s.InstantShipPrice = &v
	}

	return s, s.Valid()
}

// ToProductSummaries normalizes a result list, preserving upstream order and
// dropping invalid records. It returns the number of records dropped.
func ToProductSummaries(raw []Product) ([]domain.ProductSummary, int) {
	out := make([]domain.ProductSummary, 0, len(raw))
	dropped := 0
	for _, p := range raw {
		s, ok := ToProductSummary(p)
		if !ok {
			dropped++
			continue
		}
		out = append(out, s)
	}

	if dropped > 0 {
		metrics.NormalizedDroppedTotal.WithLabelValues("product").Add(float64(dropped))
	}
	return out, dropped
}

// ToFacets copies upstream facets into the domain shape unchanged.
func ToFacets(raw []Facet) []domain.Facet {
	if len(raw) == 0 {
		return []domain.Facet{}
	}

	out := make([]domain.Facet, 0, len(raw))
	for _, f := range raw {
		opts := make([]domain.FacetOption, 0, len(f.Options))
		for _, o := range f.Options {
			opts = append(opts, domain.FacetOption{Value: o.Value, Count: o.Count})
		}
		out = append(out, domain.Facet{
			Name:    f.Name,
			Label:   f.Label,
			Type:    f.Type,
			Options: opts,
		})
	}
	return out
}

func centsToMajor(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
