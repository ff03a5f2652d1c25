package middleware

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/storefront-gateway/internal/fetch"
	"github.com/donaldgifford/storefront-gateway/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided, echoes it in the response
// header, and stores it with a request-scoped logger in the request context
// so upstream calls carry the same ID.
//
// Successful probe requests (/healthz, /readyz) are logged once per path;
// probe failures are always logged at WARN.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	probeSeen := map[string]*atomic.Bool{
		"/healthz": {},
		"/readyz":  {},
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := req.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			reqLog := log.With("request_id", reqID)
			ctx := fetch.ContextWithRequestID(req.Context(), reqID)
			ctx = logger.WithContext(ctx, reqLog)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			status := c.Response().Status
			path := req.URL.Path

			if seen, ok := probeSeen[path]; ok && status < http.StatusBadRequest {
				if seen.Swap(true) {
					return err
				}
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError || (probeSeen[path] != nil && status >= http.StatusBadRequest) {
				level = slog.LevelWarn
			}

			reqLog.Log(ctx, level, "request",
				"method", req.Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			return err
		}
	}
}
