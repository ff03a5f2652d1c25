// Package catalog adapts the product search engine into normalized search
// pages, the brand directory and the "for you" feed.
package catalog

import (
	"context"
	"errors"

	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

var (
	// ErrEmptyQuery is returned by Search before any upstream call when the
	// query is blank.
	ErrEmptyQuery = errors.New("query parameter is required")

	// ErrMissingAPIKey is returned at construction when no API key is
	// configured.
	ErrMissingAPIKey = errors.New("catalog API key is not configured")

	// ErrUnexpectedShape marks a 2xx payload missing the expected structure.
	ErrUnexpectedShape = errors.New("unexpected catalog response shape")
)

// SearchRequest defines the parameters of a catalog search.
type SearchRequest struct {
	Query     string
	Page      int
	SortBy    string
	SortOrder string
	Filters   map[string][]string
}

// SearchResult is one normalized search page plus the facets the upstream
// computed for it.
type SearchResult struct {
	domain.Page[domain.ProductSummary]
	Facets []domain.Facet
}

// Client defines the catalog operations the HTTP boundary depends on.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
	Feed(ctx context.Context, page int) (*domain.Page[domain.ProductSummary], error)
	Brands(ctx context.Context) ([]domain.BrandSummary, error)
}
