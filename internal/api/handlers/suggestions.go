package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/storefront-gateway/internal/content"
)

// SuggestionsHandler serves search suggestions.
type SuggestionsHandler struct {
	client content.Client
}

// NewSuggestionsHandler creates a new SuggestionsHandler.
func NewSuggestionsHandler(client content.Client) *SuggestionsHandler {
	return &SuggestionsHandler{client: client}
}

// SuggestionsOutput is the response body for the suggestions endpoint.
type SuggestionsOutput struct {
	Body struct {
		Suggestions []string `json:"suggestions" doc:"Suggestion titles in feed order" example:"[\"Jordan 4\",\"Dunk Low\"]"`
	}
}

// GetSuggestions returns the search suggestions.
func (h *SuggestionsHandler) GetSuggestions(ctx context.Context, _ *struct{}) (*SuggestionsOutput, error) {
	suggestions, err := h.client.Suggestions(ctx)
	if err != nil {
		if errors.Is(err, content.ErrUnexpectedShape) {
			return nil, NewErrorEnvelope(http.StatusInternalServerError,
				"suggestions feed has an unexpected shape", err)
		}
		return nil, upstreamFailure("suggestions lookup failed", err)
	}

	out := &SuggestionsOutput{}
	out.Body.Suggestions = suggestions
	return out, nil
}

// RegisterSuggestionsRoutes registers the suggestions endpoint with the Huma API.
func RegisterSuggestionsRoutes(api huma.API, h *SuggestionsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-suggestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/search-suggestions",
		Summary:     "Search suggestions",
		Description: "Returns curated search suggestions from the content feed.",
		Tags:        []string{"content"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.GetSuggestions)
}
