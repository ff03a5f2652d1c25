package client

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

// ProductResponse is the product-detail bundle. Price and recommendations
// are left raw because each may be either data or a failure marker.
type ProductResponse struct {
	Data                json.RawMessage `json:"data"`
	PriceData           json.RawMessage `json:"PriceData"`
	RecommendedProducts json.RawMessage `json:"recommendedProducts"`
}

// Unavailable decodes raw as a failure marker. It reports false when raw
// holds data.
func Unavailable(raw json.RawMessage) (domain.FailureMarker, bool) {
	var m domain.FailureMarker
	if json.Unmarshal(raw, &m) != nil || !m.Unavailable {
		return domain.FailureMarker{}, false
	}
	return m, true
}

// Product returns the detail bundle for slug.
func (c *Client) Product(ctx context.Context, slug string) (*ProductResponse, error) {
	var resp ProductResponse
	if err := c.get(ctx, "/api/v1/products/"+url.PathEscape(slug), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Suggestions returns the search-suggestion titles.
func (c *Client) Suggestions(ctx context.Context) ([]string, error) {
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.get(ctx, "/api/v1/search-suggestions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// RateResponse is the current exchange rate.
type RateResponse struct {
	Rate      *float64  `json:"mnt"`
	Timestamp time.Time `json:"timestamp"`
}

// CurrencyRate returns the current exchange rate.
func (c *Client) CurrencyRate(ctx context.Context) (*RateResponse, error) {
	var resp RateResponse
	if err := c.get(ctx, "/api/v1/currency-rate", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpstreamQuota is the quota status of one rate-limited upstream.
type UpstreamQuota struct {
	Upstream   string    `json:"upstream"`
	DailyLimit int64     `json:"daily_limit"`
	DailyUsed  int64     `json:"daily_used"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// Quota returns the quota status of every rate-limited upstream.
func (c *Client) Quota(ctx context.Context) ([]UpstreamQuota, error) {
	var resp struct {
		Upstreams []UpstreamQuota `json:"upstreams"`
	}
	if err := c.get(ctx, "/api/v1/quota", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Upstreams, nil
}
