package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/storefront-gateway/internal/catalog"
	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

// reservedSearchParams are query keys with a fixed meaning; every other key
// is forwarded to the catalog as a filter.
var reservedSearchParams = map[string]struct{}{
	"query":      {},
	"page":       {},
	"sort_by":    {},
	"sort_order": {},
}

// SearchHandler serves catalog search.
type SearchHandler struct {
	client catalog.Client
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(client catalog.Client) *SearchHandler {
	return &SearchHandler{client: client}
}

// SearchInput holds the search query parameters. Any query key other than
// the documented ones is captured as a filter.
type SearchInput struct {
	Query     string `query:"query"      doc:"Search text"                 example:"jordan 1"`
	Page      int    `query:"page"       doc:"1-based page number"         example:"1"        default:"1"`
	SortBy    string `query:"sort_by"    doc:"Upstream sort field"         example:"price"`
	SortOrder string `query:"sort_order" doc:"Sort direction (asc or desc)" example:"asc"`

	Filters map[string][]string `json:"-"`
}

// Resolve implements huma.Resolver and collects filter parameters.
func (i *SearchInput) Resolve(ctx huma.Context) []error {
	u := ctx.URL()
	for k, vs := range u.Query() {
		if _, reserved := reservedSearchParams[k]; reserved {
			continue
		}
		if i.Filters == nil {
			i.Filters = make(map[string][]string)
		}
		i.Filters[k] = vs
	}
	return nil
}

// SearchOutput is the response body for the search endpoint.
type SearchOutput struct {
	Body struct {
		Results      []domain.ProductSummary `json:"results"      doc:"Normalized product cards in upstream order"`
		HasMore      bool                    `json:"hasMore"      doc:"Whether another page is likely available"`
		TotalResults *int                    `json:"totalResults" doc:"Total matches, null when the upstream does not report it"`
		Facets       []domain.Facet          `json:"facets"       doc:"Upstream filter facets, passed through unchanged"`
		CurrentPage  int                     `json:"currentPage"  doc:"The page returned"`
	}
}

// Search runs a catalog search.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, huma.Error400BadRequest("query parameter is required")
	}

	res, err := h.client.Search(ctx, catalog.SearchRequest{
		Query:     input.Query,
		Page:      input.Page,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
		Filters:   input.Filters,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyQuery) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		return nil, upstreamFailure("catalog search failed", err)
	}

	out := &SearchOutput{}
	out.Body.Results = res.Items
	out.Body.HasMore = res.HasMore
	out.Body.TotalResults = res.Total
	out.Body.Facets = res.Facets
	out.Body.CurrentPage = res.CurrentPage
	return out, nil
}

// FeedInput holds the feed query parameters.
type FeedInput struct {
	Page int `query:"page" doc:"1-based page number" example:"1" default:"1"`
}

// FeedOutput is the response body for the "for you" feed endpoint.
type FeedOutput struct {
	Body struct {
		Products []domain.ProductSummary `json:"products" doc:"Normalized product cards"`
		HasMore  bool                    `json:"hasMore"  doc:"True whenever the page is non-empty"`
		Total    *int                    `json:"total"    doc:"Total products, null when unknown"`
	}
}

// Feed returns one page of the "for you" feed.
func (h *SearchHandler) Feed(ctx context.Context, input *FeedInput) (*FeedOutput, error) {
	page, err := h.client.Feed(ctx, input.Page)
	if err != nil {
		return nil, upstreamFailure("for-you feed failed", err)
	}

	out := &FeedOutput{}
	out.Body.Products = page.Items
	out.Body.HasMore = page.HasMore
	out.Body.Total = page.Total
	return out, nil
}

// BrandsOutput is the response body for the brand directory endpoint.
type BrandsOutput struct {
	Body struct {
		Brands []domain.BrandSummary `json:"brands" doc:"Brands sorted by name"`
	}
}

// Brands returns the brand directory.
func (h *SearchHandler) Brands(ctx context.Context, _ *struct{}) (*BrandsOutput, error) {
	brands, err := h.client.Brands(ctx)
	if err != nil {
		return nil, upstreamFailure("brand directory failed", err)
	}

	out := &BrandsOutput{}
	out.Body.Brands = brands
	return out, nil
}

// RegisterSearchRoutes registers the catalog endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search products",
		Description: "Searches the catalog. Query keys other than query, page, sort_by and sort_order are forwarded as filters.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "for-you-feed",
		Method:      http.MethodGet,
		Path:        "/api/v1/for-you",
		Summary:     "For you feed",
		Description: "Returns one page of the personalized product feed.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Feed)

	huma.Register(api, huma.Operation{
		OperationID: "list-brands",
		Method:      http.MethodGet,
		Path:        "/api/v1/brands",
		Summary:     "List brands",
		Description: "Returns the brand directory derived from the catalog's brand facet.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Brands)
}
