package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/storefront-gateway/internal/marketplace"
)

// ProductHandler serves the product detail bundle.
type ProductHandler struct {
	client marketplace.Client
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(client marketplace.Client) *ProductHandler {
	return &ProductHandler{client: client}
}

// ProductPathInput selects a product by path segment.
type ProductPathInput struct {
	Slug string `path:"slug" doc:"Product template slug" example:"air-jordan-1-retro-high-og"`
}

// ProductQueryInput selects a product by query parameter.
type ProductQueryInput struct {
	Slug string `query:"slug" doc:"Product template slug" example:"air-jordan-1-retro-high-og"`
}

// ProductOutput is the response body for the product detail endpoints.
// PriceData and recommendedProducts hold either the upstream payload or
// {"unavailable": true, "error": "..."} when that lookup failed.
type ProductOutput struct {
	Body struct {
		Data                any `json:"data"                doc:"Product template as returned by the marketplace"`
		PriceData           any `json:"PriceData"           doc:"Price payload or failure marker"`
		RecommendedProducts any `json:"recommendedProducts" doc:"Recommended products or failure marker"`
	}
}

// GetProduct handles GET /api/v1/products/{slug}.
func (h *ProductHandler) GetProduct(ctx context.Context, input *ProductPathInput) (*ProductOutput, error) {
	return h.detail(ctx, input.Slug)
}

// GetProductByQuery handles GET /api/v1/product?slug=.
func (h *ProductHandler) GetProductByQuery(ctx context.Context, input *ProductQueryInput) (*ProductOutput, error) {
	return h.detail(ctx, input.Slug)
}

func (h *ProductHandler) detail(ctx context.Context, slug string) (*ProductOutput, error) {
	bundle, err := h.client.ProductDetail(ctx, slug)
	if err != nil {
		if errors.Is(err, marketplace.ErrEmptySlug) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		return nil, upstreamFailure("product lookup failed", err)
	}

	out := &ProductOutput{}
	out.Body.Data = bundle.Data
	out.Body.PriceData = bundle.Price
	out.Body.RecommendedProducts = bundle.Recommended
	return out, nil
}

// RegisterProductRoutes registers the product detail endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{slug}",
		Summary:     "Get product detail",
		Description: "Returns the product template with its price and recommendations. " +
			"Price and recommendation failures are reported inline instead of failing the request.",
		Tags:   []string{"products"},
		Errors: []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.GetProduct)

	huma.Register(api, huma.Operation{
		OperationID: "get-product-by-query",
		Method:      http.MethodGet,
		Path:        "/api/v1/product",
		Summary:     "Get product detail by query",
		Description: "Same as get-product with the slug passed as a query parameter.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.GetProductByQuery)
}
