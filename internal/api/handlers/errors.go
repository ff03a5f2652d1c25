package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/storefront-gateway/internal/fetch"
)

// upstreamFailure converts an adapter error into a 500 envelope carrying the
// upstream status and best-effort upstream message.
func upstreamFailure(what string, err error) error {
	if errors.Is(err, context.Canceled) {
		// Client closed the request.
		return NewErrorEnvelope(499, what+": request canceled")
	}

	resp := &ErrorResponse{
		Status:  http.StatusInternalServerError,
		Message: what + ": " + fetch.UpstreamMessage(err),
	}
	if code, ok := fetch.StatusCode(err); ok {
		resp.UpstreamStatus = code
	}
	return resp
}

var _ huma.StatusError = (*ErrorResponse)(nil)
