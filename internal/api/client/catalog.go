package client

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

// SearchParams defines query parameters for a catalog search.
type SearchParams struct {
	Query     string
	Page      int
	SortBy    string
	SortOrder string
	Filters   map[string][]string
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Results      []domain.ProductSummary `json:"results"`
	HasMore      bool                    `json:"hasMore"`
	TotalResults *int                    `json:"totalResults"`
	Facets       []domain.Facet          `json:"facets"`
	CurrentPage  int                     `json:"currentPage"`
}

// FeedResponse is one page of the "for you" feed.
type FeedResponse struct {
	Products []domain.ProductSummary `json:"products"`
	HasMore  bool                    `json:"hasMore"`
	Total    *int                    `json:"total"`
}

// Search runs a catalog search.
func (c *Client) Search(ctx context.Context, params *SearchParams) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("query", params.Query)
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.SortBy != "" {
		q.Set("sort_by", params.SortBy)
	}
	if params.SortOrder != "" {
		q.Set("sort_order", params.SortOrder)
	}

	keys := make([]string, 0, len(params.Filters))
	for k := range params.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range params.Filters[k] {
			q.Add(k, v)
		}
	}

	var resp SearchResponse
	if err := c.get(ctx, "/api/v1/search", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Feed returns a page of the "for you" feed.
func (c *Client) Feed(ctx context.Context, page int) (*FeedResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	var resp FeedResponse
	if err := c.get(ctx, "/api/v1/for-you", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Brands returns the brand directory.
func (c *Client) Brands(ctx context.Context) ([]domain.BrandSummary, error) {
	var resp struct {
		Brands []domain.BrandSummary `json:"brands"`
	}
	if err := c.get(ctx, "/api/v1/brands", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Brands, nil
}
