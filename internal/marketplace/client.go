// Package marketplace composes the product detail page from the marketplace
// service: a mandatory product template plus independent price and
// recommendation lookups whose failures are reported inline.
package marketplace

import (
	"context"
	"encoding/json"
	"errors"

	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

var (
	// ErrEmptySlug is returned before any upstream call when no slug is given.
	ErrEmptySlug = errors.New("slug parameter is required")

	// ErrUnexpectedShape marks a 2xx payload missing the expected structure.
	ErrUnexpectedShape = errors.New("unexpected marketplace response shape")
)

// Source fetches the raw marketplace resources.
type Source interface {
	Template(ctx context.Context, slug string) (json.RawMessage, error)
	Price(ctx context.Context, templateID, region string) (json.RawMessage, error)
	Recommendations(ctx context.Context, templateID string, count int) ([]json.RawMessage, error)
}

// Client defines the product detail operation the HTTP boundary depends on.
type Client interface {
	ProductDetail(ctx context.Context, slug string) (*domain.ProductDetailBundle, error)
}
