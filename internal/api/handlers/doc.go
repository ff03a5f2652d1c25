package handlers

import "github.com/danielgtaylor/huma/v2"

func init() {
	huma.NewError = NewErrorEnvelope
}

// ErrorResponse is the standard error response body. Every failure the
// gateway returns, including validation failures raised by huma, uses it.
type ErrorResponse struct {
	Message        string   `json:"error"                     example:"catalog search failed: index rebuilding" doc:"Human-readable error message"`
	Status         int      `json:"status"                    example:"500"                                     doc:"HTTP status code"`
	UpstreamStatus int      `json:"upstream_status,omitempty" example:"503"                                     doc:"Status returned by the failing upstream, when known"`
	Details        []string `json:"details,omitempty"                                                           doc:"Additional error details"`
}

// Error implements error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorResponse) GetStatus() int {
	return e.Status
}

// NewErrorEnvelope builds the gateway's error body. It is installed as
// huma.NewError so framework-generated errors share the same shape.
func NewErrorEnvelope(status int, msg string, errs ...error) huma.StatusError {
	resp := &ErrorResponse{Status: status, Message: msg}
	for _, err := range errs {
		if err != nil {
			resp.Details = append(resp.Details, err.Error())
		}
	}
	return resp
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
