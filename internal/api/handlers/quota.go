package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/storefront-gateway/internal/fetch"
)

// QuotaHandler reports client-side rate limiter usage per upstream.
type QuotaHandler struct {
	limiters map[string]*fetch.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler. Upstreams without a limiter
// are omitted from the report.
func NewQuotaHandler(limiters map[string]*fetch.RateLimiter) *QuotaHandler {
	return &QuotaHandler{limiters: limiters}
}

// UpstreamQuota is the quota status of one upstream.
type UpstreamQuota struct {
	Upstream   string    `json:"upstream"    example:"catalog"              doc:"Upstream name"`
	DailyLimit int64     `json:"daily_limit" example:"5000"                 doc:"Configured daily call limit, 0 when unlimited"`
	DailyUsed  int64     `json:"daily_used"  example:"142"                  doc:"Calls admitted in the current 24-hour window"`
	Remaining  int64     `json:"remaining"   example:"4858"                 doc:"Calls remaining in the current window, -1 when unlimited"`
	ResetAt    time.Time `json:"reset_at"    example:"2025-06-16T14:30:00Z" doc:"When the current 24-hour window expires"`
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		Upstreams []UpstreamQuota `json:"upstreams" doc:"Quota status per rate-limited upstream, sorted by name"`
	}
}

// GetQuota returns the current quota status of every limited upstream.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	resp.Body.Upstreams = make([]UpstreamQuota, 0, len(h.limiters))

	for name, rl := range h.limiters {
		if rl == nil {
			continue
		}
		resp.Body.Upstreams = append(resp.Body.Upstreams, UpstreamQuota{
			Upstream:   name,
			DailyLimit: rl.MaxDaily(),
			DailyUsed:  rl.DailyCount(),
			Remaining:  rl.Remaining(),
			ResetAt:    rl.ResetAt(),
		})
	}
	sort.Slice(resp.Body.Upstreams, func(i, j int) bool {
		return resp.Body.Upstreams[i].Upstream < resp.Body.Upstreams[j].Upstream
	})

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get upstream quota status",
		Description: "Returns client-side rate limiter usage, remaining daily quota and window reset time per upstream.",
		Tags:        []string{"operations"},
	}, h.GetQuota)
}
