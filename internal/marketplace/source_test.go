package marketplace_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/storefront-gateway/internal/fetch"
	"github.com/donaldgifford/storefront-gateway/internal/marketplace"
)

func noSleep(context.Context, time.Duration) error { return nil }

func newSource(srvURL string) *marketplace.HTTPSource {
	return marketplace.NewHTTPSource(fetch.New("marketplace", fetch.WithSleep(noSleep)), srvURL+"/")
}

func TestHTTPSource_Template(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "template returned unmodified", body: templateJSON},
		{name: "not found fails", status: http.StatusNotFound, body: `{"error":"no such template"}`, wantErr: true},
		{name: "invalid JSON fails", body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/product_templates/air%20jordan", r.URL.EscapedPath())
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := newSource(srv.URL).Template(context.Background(), "air jordan")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.body, string(got))
		})
	}
}

func TestHTTPSource_Price(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product_templates/4711/prices", r.URL.Path)
		assert.Equal(t, "MN", r.URL.Query().Get("region"))
		_, _ = w.Write([]byte(`{"lowest_ask_cents":12000}`))
	}))
	defer srv.Close()

	got, err := newSource(srv.URL).Price(context.Background(), "4711", "MN")
	require.NoError(t, err)
	assert.JSONEq(t, `{"lowest_ask_cents":12000}`, string(got))
}

func TestHTTPSource_Recommendations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantLen   int
		wantErr   bool
		wantCalls int32
	}{
		{name: "products returned", body: `{"products":[{"id":1},{"id":2}]}`, wantLen: 2, wantCalls: 1},
		{name: "missing products is empty", body: `{}`, wantLen: 0, wantCalls: 1},
		{name: "malformed body not retried", body: `{"products":`, wantErr: true, wantCalls: 1},
		{name: "server error retried", status: http.StatusBadGateway, wantErr: true, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, "/product_templates/4711/recommendations", r.URL.Path)
				assert.Equal(t, "8", r.URL.Query().Get("count"))
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := newSource(srv.URL).Recommendations(context.Background(), "4711", 8)
			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestAggregator_WithHTTPSource(t *testing.T) {
	t.Parallel()

	var priceCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/product_templates/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/product_templates/4711/prices", func(w http.ResponseWriter, _ *http.Request) {
		priceCalls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/product_templates/4711/recommendations", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"products":[{"id":9}]}`))
	})
	mux.HandleFunc("/product_templates/air-jordan-1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(templateJSON))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	agg := marketplace.NewAggregator(newSource(srv.URL))

	_, err := agg.ProductDetail(context.Background(), "missing")
	require.Error(t, err)
	code, ok := fetch.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Zero(t, priceCalls.Load())

	got, err := agg.ProductDetail(context.Background(), "air-jordan-1")
	require.NoError(t, err)
	assert.JSONEq(t, templateJSON, string(got.Data))
	assert.False(t, got.Price.OK())
	require.True(t, got.Recommended.OK())
	assert.Len(t, got.Recommended.Value, 1)

	rendered, err := json.Marshal(got.Price)
	require.NoError(t, err)
	assert.Contains(t, string(rendered), `"unavailable":true`)
}
