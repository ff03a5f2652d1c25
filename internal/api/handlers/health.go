// Package handlers implements HTTP handlers for the storefront gateway API.
package handlers

import (
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

// HealthHandler provides health and readiness endpoints. The gateway keeps no
// state of its own, so readiness only reflects whether it is accepting
// traffic: it turns false once shutdown begins.
type HealthHandler struct {
	ready atomic.Bool
}

// NewHealthHandler creates a HealthHandler that reports ready.
func NewHealthHandler() *HealthHandler {
	h := &HealthHandler{}
	h.ready.Store(true)
	return h
}

// SetReady toggles the readiness result.
func (h *HealthHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Healthz returns 200 if the process is running.
//
// @Summary Liveness check
// @Description Returns 200 if the process is running.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /healthz [get]
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 while the gateway accepts traffic, 503 while draining.
//
// @Summary Readiness check
// @Description Returns 200 while accepting traffic, 503 during shutdown.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} StatusResponse
// @Router /readyz [get]
func (h *HealthHandler) Readyz(c echo.Context) error {
	if !h.ready.Load() {
		return c.JSON(
			http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable"},
		)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
