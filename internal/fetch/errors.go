package fetch

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/buger/jsonparser"
)

const maxMessageLen = 512

// TimeoutError reports an attempt aborted by its per-attempt timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("attempt timed out after %s", e.Timeout)
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := e.Message()
	if msg == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, msg)
}

// Message extracts a human-readable message from the response body. JSON
// bodies are searched for the usual error fields; anything else is returned
// as trimmed raw text.
func (e *StatusError) Message() string {
	return extractMessage(e.Body)
}

// NetworkError reports a transport failure (DNS, connect, reset, body read).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError reports a 2xx body that did not match the expected JSON shape.
// It is a contract error and is never retried.
type DecodeError struct {
	Err     error
	Snippet string
}

func (e *DecodeError) Error() string {
	return "decoding upstream body: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ExhaustedError is the single failure returned once every attempt of a
// logical call has failed. It carries only the last attempt's error.
type ExhaustedError struct {
	Upstream string
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: giving up after %d attempt(s): %v", e.Upstream, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// StatusCode returns the upstream HTTP status carried anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

// UpstreamMessage returns the best-effort upstream message for err: the
// extracted body message of a StatusError, otherwise err's own text.
func UpstreamMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		if msg := se.Message(); msg != "" {
			return msg
		}
	}
	return err.Error()
}

// reason classifies an attempt error for metrics.
func reason(err error) string {
	var (
		te *TimeoutError
		se *StatusError
		ne *NetworkError
	)
	switch {
	case errors.As(err, &te):
		return "timeout"
	case errors.As(err, &se):
		return "status"
	case errors.As(err, &ne):
		return "network"
	default:
		return "other"
	}
}

var messagePaths = [][]string{
	{"error"},
	{"message"},
	{"detail"},
	{"error", "message"},
	{"errors", "[0]", "message"},
}

func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	for _, path := range messagePaths {
		if msg, err := jsonparser.GetString(body, path...); err == nil && msg != "" {
			return truncate(msg)
		}
	}

	return truncate(trimmed)
}

func truncate(s string) string {
	if len(s) <= maxMessageLen {
		return s
	}
	cut := maxMessageLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
