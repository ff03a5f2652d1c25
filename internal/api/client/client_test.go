package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.Brands(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		status         int
		body           string
		wantMsg        string
		wantUpstream   int
		wantErrContain string
	}{
		{
			name:           "error envelope",
			status:         http.StatusInternalServerError,
			body:           `{"error":"search failed: upstream returned 503","status":500,"upstream_status":503}`,
			wantMsg:        "search failed: upstream returned 503",
			wantUpstream:   503,
			wantErrContain: "API error (HTTP 500, upstream 503): search failed",
		},
		{
			name:           "plain body",
			status:         http.StatusBadGateway,
			body:           "bad gateway",
			wantErrContain: "API error (HTTP 502): bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			_, err := c.Suggestions(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrContain)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantUpstream, apiErr.UpstreamStatus)
		})
	}
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	total := 40
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/search", r.URL.Path)
		assert.Equal(t, "jordan", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "price", r.URL.Query().Get("sort_by"))
		assert.Equal(t, []string{"nike", "jordan"}, r.URL.Query()["brand"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{
			Results:      []domain.ProductSummary{{ID: "1", Slug: "jordan-1"}},
			HasMore:      true,
			TotalResults: &total,
			CurrentPage:  2,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Search(context.Background(), &SearchParams{
		Query:   "jordan",
		Page:    2,
		SortBy:  "price",
		Filters: map[string][]string{"brand": {"nike", "jordan"}},
	})
	require.NoError(t, err)
	assert.True(t, resp.HasMore)
	assert.Equal(t, 2, resp.CurrentPage)
	require.NotNil(t, resp.TotalResults)
	assert.Equal(t, 40, *resp.TotalResults)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "jordan-1", resp.Results[0].Slug)
}

func TestClient_Feed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/for-you", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[],"hasMore":false,"total":null}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Feed(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, resp.HasMore)
	assert.Nil(t, resp.Total)
	assert.Empty(t, resp.Products)
}

func TestClient_Product(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/air-max-90", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data":{"id":"42"},
			"PriceData":{"unavailable":true,"error":"upstream returned 502"},
			"recommendedProducts":[{"id":7}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Product(context.Background(), "air-max-90")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"42"}`, string(resp.Data))

	marker, failed := Unavailable(resp.PriceData)
	assert.True(t, failed)
	assert.Equal(t, "upstream returned 502", marker.Error)

	_, failed = Unavailable(resp.RecommendedProducts)
	assert.False(t, failed)
}

func TestClient_CurrencyRate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/currency-rate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"mnt":3452.17,"timestamp":"2026-03-14T09:26:53Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.CurrencyRate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Rate)
	assert.InDelta(t, 3452.17, *resp.Rate, 0.0001)
	assert.Equal(t, 2026, resp.Timestamp.Year())
}

func TestClient_Quota(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/quota", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"upstreams":[{"upstream":"catalog","daily_limit":5000,"daily_used":12,"remaining":4988}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	quotas, err := c.Quota(context.Background())
	require.NoError(t, err)
	require.Len(t, quotas, 1)
	assert.Equal(t, "catalog", quotas[0].Upstream)
	assert.Equal(t, int64(4988), quotas[0].Remaining)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c := New("http://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}
