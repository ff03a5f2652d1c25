package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/storefront-gateway/internal/currency"
)

// CurrencyHandler serves the configured exchange rate.
type CurrencyHandler struct {
	client  currency.Client
	base    string
	target  string
	nowFunc func() time.Time
}

// NewCurrencyHandler creates a CurrencyHandler for the base/target pair.
func NewCurrencyHandler(client currency.Client, base, target string) *CurrencyHandler {
	return &CurrencyHandler{
		client:  client,
		base:    base,
		target:  target,
		nowFunc: time.Now,
	}
}

// CurrencyRateOutput is the response body for the currency-rate endpoint.
type CurrencyRateOutput struct {
	Body struct {
		MNT       *float64  `json:"mnt"       doc:"Units of the target currency per unit of base" example:"3452.17"`
		Timestamp time.Time `json:"timestamp" doc:"When the rate was captured"`
	}
}

// CurrencyRateError is the failure body of the currency-rate endpoint.
type CurrencyRateError struct {
	Message   string    `json:"error"     doc:"Human-readable error message"`
	Details   string    `json:"details"   doc:"Underlying failure"`
	Timestamp time.Time `json:"timestamp" doc:"When the failure occurred"`
}

// Error implements error.
func (e *CurrencyRateError) Error() string {
	return e.Message + ": " + e.Details
}

// GetStatus implements huma.StatusError.
func (*CurrencyRateError) GetStatus() int {
	return http.StatusInternalServerError
}

// GetRate returns the current rate.
func (h *CurrencyHandler) GetRate(ctx context.Context, _ *struct{}) (*CurrencyRateOutput, error) {
	rate, err := h.client.Rate(ctx, h.base, h.target)
	if err != nil {
		return nil, &CurrencyRateError{
			Message:   "failed to fetch exchange rate",
			Details:   err.Error(),
			Timestamp: h.nowFunc().UTC(),
		}
	}

	out := &CurrencyRateOutput{}
	out.Body.MNT = &rate.Rate
	out.Body.Timestamp = rate.CapturedAt
	return out, nil
}

// RegisterCurrencyRoutes registers the currency-rate endpoint with the Huma API.
func RegisterCurrencyRoutes(api huma.API, h *CurrencyHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "currency-rate",
		Method:      http.MethodGet,
		Path:        "/api/v1/currency-rate",
		Summary:     "Get exchange rate",
		Description: "Returns the configured base to target exchange rate. The lookup is attempted once.",
		Tags:        []string{"currency"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.GetRate)
}
