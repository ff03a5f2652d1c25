package fetch

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "error string", body: `{"error":"invalid api key"}`, want: "invalid api key"},
		{name: "message field", body: `{"message":"index not found"}`, want: "index not found"},
		{name: "detail field", body: `{"detail":"too many facets"}`, want: "too many facets"},
		{name: "nested error object", body: `{"error":{"code":7,"message":"quota"}}`, want: "quota"},
		{name: "errors array", body: `{"errors":[{"message":"bad sort"}]}`, want: "bad sort"},
		{name: "raw text", body: "  Bad Gateway\n", want: "Bad Gateway"},
		{name: "json without known fields", body: `{"code":500}`, want: `{"code":500}`},
		{name: "empty", body: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extractMessage([]byte(tt.body)))
		})
	}
}

func TestExtractMessage_Truncates(t *testing.T) {
	t.Parallel()

	got := extractMessage([]byte(strings.Repeat("x", 2000)))
	assert.Len(t, got, maxMessageLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestExtractMessage_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// "ё" is two bytes, so byte 509 falls inside a rune.
	msg := strings.Repeat("ё", 600)
	got := extractMessage([]byte(`{"error":"` + msg + `"}`))

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), maxMessageLen)
	assert.Equal(t, maxMessageLen-1, len(got))
}

func TestReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "timeout", reason(&TimeoutError{Timeout: time.Second}))
	assert.Equal(t, "status", reason(&StatusError{StatusCode: 502}))
	assert.Equal(t, "network", reason(&NetworkError{Err: errors.New("reset")}))
	assert.Equal(t, "other", reason(errors.New("boom")))
}

func TestPolicyMerge(t *testing.T) {
	t.Parallel()

	got := Policy{MaxAttempts: 1}.merge(Policy{Timeout: 10 * time.Second, MaxAttempts: 3, Backoff: time.Second})
	assert.Equal(t, Policy{Timeout: 10 * time.Second, MaxAttempts: 1, Backoff: time.Second}, got)

	assert.Equal(t, DefaultPolicy(), Policy{}.merge(DefaultPolicy()))
}

func TestStatusError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "upstream returned status 404", (&StatusError{StatusCode: 404}).Error())
	assert.Equal(t,
		"upstream returned status 500: boom",
		(&StatusError{StatusCode: 500, Body: []byte(`{"error":"boom"}`)}).Error(),
	)
	assert.Equal(t, "boom", UpstreamMessage(&ExhaustedError{
		Upstream: "catalog",
		Attempts: 3,
		Err:      &StatusError{StatusCode: 500, Body: []byte(`{"error":"boom"}`)},
	}))
}
