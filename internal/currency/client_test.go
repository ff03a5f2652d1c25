package currency_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/storefront-gateway/internal/currency"
	"github.com/donaldgifford/storefront-gateway/internal/fetch"
)

var capturedAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestHTTPClient_Rate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantRate  float64
		wantShape string
		anyErr    bool
	}{
		{
			name:     "rate extracted",
			body:     `{"result":"success","base_code":"USD","rates":{"MNT":3452.17,"EUR":0.92}}`,
			wantRate: 3452.17,
		},
		{
			name:      "missing target carries shape",
			body:      `{"result":"success","rates":{"EUR":0.92}}`,
			wantShape: "{rates,result}",
		},
		{
			name:      "missing rates object carries shape",
			body:      `{"result":"error","error-type":"unsupported-code"}`,
			wantShape: "{error-type,result}",
		},
		{
			name:      "non-numeric rate rejected",
			body:      `{"rates":{"MNT":"lots"}}`,
			wantShape: "{rates}",
		},
		{
			name:      "zero rate rejected",
			body:      `{"rates":{"MNT":0}}`,
			wantShape: "{rates}",
		},
		{
			name:      "array payload fingerprinted",
			body:      `[1,2,3]`,
			wantShape: "<array>",
		},
		{
			name:   "server error not retried",
			status: http.StatusInternalServerError,
			body:   `{"error":"maintenance"}`,
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, "USD", r.URL.Query().Get("base"))
				assert.Equal(t, "1", r.URL.Query().Get("v"))
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := currency.NewHTTPClient(fetch.New("currency"), srv.URL+"/latest?v=1",
				currency.WithNowFunc(func() time.Time { return capturedAt }),
			)
			got, err := c.Rate(context.Background(), "usd", "mnt")

			assert.Equal(t, int32(1), calls.Load())

			switch {
			case tt.anyErr:
				require.Error(t, err)
				code, ok := fetch.StatusCode(err)
				require.True(t, ok)
				assert.Equal(t, tt.status, code)
			case tt.wantShape != "":
				var missing *currency.MissingRateError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, http.StatusOK, missing.Status)
				assert.Equal(t, "MNT", missing.Target)
				assert.Equal(t, tt.wantShape, missing.Shape)
				assert.Contains(t, err.Error(), tt.wantShape)
			default:
				require.NoError(t, err)
				assert.Equal(t, "USD", got.Base)
				assert.Equal(t, "MNT", got.Target)
				assert.InDelta(t, tt.wantRate, got.Rate, 1e-9)
				assert.Equal(t, capturedAt, got.CapturedAt)
			}
		})
	}
}

func TestHTTPClient_RateTimeout(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := currency.NewHTTPClient(fetch.New("currency"), srv.URL, currency.WithTimeout(20*time.Millisecond))
	_, err := c.Rate(context.Background(), "USD", "MNT")

	var timeout *fetch.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, int32(1), calls.Load())
}
