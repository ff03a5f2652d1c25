package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/donaldgifford/storefront-gateway/internal/fetch"
)

// HTTPSource implements Source against the marketplace REST API.
type HTTPSource struct {
	fetcher *fetch.Fetcher
	baseURL string
}

// NewHTTPSource creates a Source rooted at baseURL.
func NewHTTPSource(fetcher *fetch.Fetcher, baseURL string) *HTTPSource {
	return &HTTPSource{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type recommendationsResponse struct {
	Products []json.RawMessage `json:"products"`
}

// Template implements Source.Template. The body must be valid JSON; it is
// returned unmodified.
func (s *HTTPSource) Template(ctx context.Context, slug string) (json.RawMessage, error) {
	body, err := s.raw(ctx, "/product_templates/"+url.PathEscape(slug), nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: product template is not valid JSON", ErrUnexpectedShape)
	}
	return body, nil
}

// Price implements Source.Price.
func (s *HTTPSource) Price(ctx context.Context, templateID, region string) (json.RawMessage, error) {
	body, err := s.raw(ctx,
		"/product_templates/"+url.PathEscape(templateID)+"/prices",
		url.Values{"region": []string{region}},
	)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: price payload is not valid JSON", ErrUnexpectedShape)
	}
	return body, nil
}

// Recommendations implements Source.Recommendations. A response without
// products yields an empty, non-nil slice.
func (s *HTTPSource) Recommendations(
	ctx context.Context,
	templateID string,
	count int,
) ([]json.RawMessage, error) {
	var resp recommendationsResponse
	err := s.fetcher.Do(ctx, fetch.Request{
		Method: http.MethodGet,
		URL: s.url(
			"/product_templates/"+url.PathEscape(templateID)+"/recommendations",
			url.Values{"count": []string{strconv.Itoa(count)}},
		),
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Products == nil {
		return []json.RawMessage{}, nil
	}
	return resp.Products, nil
}

func (s *HTTPSource) raw(ctx context.Context, path string, params url.Values) ([]byte, error) {
	resp, err := s.fetcher.Raw(ctx, fetch.Request{
		Method: http.MethodGet,
		URL:    s.url(path, params),
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (s *HTTPSource) url(path string, params url.Values) string {
	if len(params) == 0 {
		return s.baseURL + path
	}
	return s.baseURL + path + "?" + params.Encode()
}
