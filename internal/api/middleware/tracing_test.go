package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/donaldgifford/storefront-gateway/pkg/logger"
)

func newRecordingProvider(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, sr
}

func TestTracing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		handler    echo.HandlerFunc
		wantSpans  int
		wantStatus int
		wantCode   codes.Code
	}{
		{
			name: "records span for API route",
			path: "/api/v1/search",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			wantSpans:  1,
			wantStatus: http.StatusOK,
			wantCode:   codes.Unset,
		},
		{
			name: "marks upstream failures as errors",
			path: "/api/v1/search",
			handler: func(c echo.Context) error {
				return c.String(http.StatusBadGateway, "bad gateway")
			},
			wantSpans:  1,
			wantStatus: http.StatusBadGateway,
			wantCode:   codes.Error,
		},
		{
			name: "uses echo HTTPError code",
			path: "/api/v1/search",
			handler: func(_ echo.Context) error {
				return echo.NewHTTPError(http.StatusServiceUnavailable)
			},
			wantSpans:  1,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   codes.Error,
		},
		{
			name: "skips probes",
			path: "/healthz",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			wantSpans: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tp, sr := newRecordingProvider(t)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetPath(tt.path)

			_ = Tracing(tp)(tt.handler)(c)

			spans := sr.Ended()
			require.Len(t, spans, tt.wantSpans)
			if tt.wantSpans == 0 {
				return
			}

			span := spans[0]
			assert.Equal(t, "GET "+tt.path, span.Name())
			assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", tt.wantStatus))
			assert.Equal(t, tt.wantCode, span.Status().Code)
		})
	}
}

func TestTracing_TagsLoggerWithTraceID(t *testing.T) {
	t.Parallel()

	tp, sr := newRecordingProvider(t)

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/brands", http.NoBody)
	req = req.WithContext(logger.WithContext(req.Context(), base))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Tracing(tp)(func(c echo.Context) error {
		logger.FromContext(c.Request().Context(), nil).Info("handled")
		return c.NoContent(http.StatusNoContent)
	})

	require.NoError(t, handler(c))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, buf.String(), `"trace_id":"`+spans[0].SpanContext().TraceID().String()+`"`)
}
