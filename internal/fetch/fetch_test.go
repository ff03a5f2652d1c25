package fetch_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/donaldgifford/storefront-gateway/internal/fetch"
)

// sleepRecorder replaces real backoff waits and records requested delays.
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return nil
}

func (s *sleepRecorder) recorded() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

type payload struct {
	OK bool `json:"ok"`
}

func TestFetcher_SucceedsOnNthAttempt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		maxAttempts int
		succeedOn   int
	}{
		{name: "first attempt", maxAttempts: 3, succeedOn: 1},
		{name: "second attempt", maxAttempts: 3, succeedOn: 2},
		{name: "last attempt", maxAttempts: 3, succeedOn: 3},
		{name: "fifth of five", maxAttempts: 5, succeedOn: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				n := int(calls.Add(1))
				if n < tt.succeedOn {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"ok":true}`))
			}))
			defer srv.Close()

			rec := &sleepRecorder{}
			f := fetch.New("test", fetch.WithSleep(rec.sleep))

			var got payload
			err := f.Do(context.Background(), fetch.Request{
				URL: srv.URL,
				Policy: fetch.Policy{
					MaxAttempts: tt.maxAttempts,
					Backoff:     2 * time.Second,
					Timeout:     time.Second,
				},
			}, &got)

			require.NoError(t, err)
			assert.True(t, got.OK)
			assert.Equal(t, int32(tt.succeedOn), calls.Load())

			delays := rec.recorded()
			assert.Len(t, delays, tt.succeedOn-1)
			for _, d := range delays {
				assert.Equal(t, 2*time.Second, d, "backoff must be flat")
			}
		})
	}
}

func TestFetcher_AlwaysTimesOut(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	f := fetch.New("test", fetch.WithSleep(rec.sleep))

	_, err := f.Raw(context.Background(), fetch.Request{
		URL:    srv.URL,
		Policy: fetch.Policy{MaxAttempts: 3, Timeout: 30 * time.Millisecond},
	})
	require.Error(t, err)

	var exhausted *fetch.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Equal(t, "test", exhausted.Upstream)

	var timeout *fetch.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, 30*time.Millisecond, timeout.Timeout)

	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, rec.recorded(), 2, "no backoff after the last attempt")
}

func TestFetcher_StatusErrorCarriesLastAttempt(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n < 3 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message":"early failure"}`))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"index rebuilding"}`))
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	f := fetch.New("catalog", fetch.WithSleep(rec.sleep))

	_, err := f.Raw(context.Background(), fetch.Request{URL: srv.URL})
	require.Error(t, err)

	code, ok := fetch.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "index rebuilding", fetch.UpstreamMessage(err))
	assert.NotContains(t, err.Error(), "early failure")
	assert.Equal(t, int32(fetch.DefaultMaxAttempts), calls.Load())

	for _, d := range rec.recorded() {
		assert.Equal(t, fetch.DefaultBackoff, d)
	}
}

func TestFetcher_DecodeErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	f := fetch.New("test", fetch.WithSleep(rec.sleep))

	var got payload
	err := f.Do(context.Background(), fetch.Request{URL: srv.URL}, &got)
	require.Error(t, err)

	var decodeErr *fetch.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "not json", decodeErr.Snippet)
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, rec.recorded())
}

func TestFetcher_CallerCancellationStopsRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := fetch.New("test", fetch.WithSleep(func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}))

	_, err := f.Raw(ctx, fetch.Request{URL: srv.URL})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetcher_HeadersAndRequestID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "req-42", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	f := fetch.New("test")
	ctx := fetch.ContextWithRequestID(context.Background(), "req-42")

	var got payload
	err := f.Do(ctx, fetch.Request{
		URL:    srv.URL,
		Header: http.Header{"X-Api-Key": []string{"secret"}},
	}, &got)
	require.NoError(t, err)
	assert.True(t, got.OK)
}

func TestFetcher_CompressedBodies(t *testing.T) {
	t.Parallel()

	gzipped := func() []byte {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(`{"ok":true}`))
		_ = zw.Close()
		return buf.Bytes()
	}()

	brotlied := func() []byte {
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		_, _ = bw.Write([]byte(`{"ok":true}`))
		_ = bw.Close()
		return buf.Bytes()
	}()

	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{name: "gzip", encoding: "gzip", body: gzipped},
		{name: "brotli", encoding: "br", body: brotlied},
		{name: "identity", encoding: "", body: []byte(`{"ok":true}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.encoding != "" {
					w.Header().Set("Content-Encoding", tt.encoding)
				}
				_, _ = w.Write(tt.body)
			}))
			defer srv.Close()

			var got payload
			err := fetch.New("test").Do(context.Background(), fetch.Request{URL: srv.URL}, &got)
			require.NoError(t, err)
			assert.True(t, got.OK)
		})
	}
}

func TestFetcher_DailyLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	f := fetch.New("test", fetch.WithRateLimiter(fetch.NewRateLimiter(100, 10, 1)))

	var got payload
	require.NoError(t, f.Do(context.Background(), fetch.Request{URL: srv.URL}, &got))

	err := f.Do(context.Background(), fetch.Request{URL: srv.URL}, &got)
	require.ErrorIs(t, err, fetch.ErrDailyLimitReached)
	assert.Contains(t, err.Error(), "test rate limit:")
}

func TestFetcher_DailyLimitAfterFailedAttempt(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	f := fetch.New("catalog",
		fetch.WithRateLimiter(fetch.NewRateLimiter(100, 10, 1)),
		fetch.WithSleep(rec.sleep),
	)

	_, err := f.Raw(context.Background(), fetch.Request{URL: srv.URL})
	require.ErrorIs(t, err, fetch.ErrDailyLimitReached)

	var exhausted *fetch.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "catalog", exhausted.Upstream)
	assert.Equal(t, 1, exhausted.Attempts)
	assert.Equal(t, int32(1), calls.Load())
	assert.Len(t, rec.recorded(), 1)
}

func TestFetcher_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := fetch.New("test").Raw(context.Background(), fetch.Request{URL: "://bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing test URL")
}

func TestFetcher_RecordsUpstreamSpan(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	var traceparent atomic.Value
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent.Store(r.Header.Get("Traceparent"))
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	f := fetch.New("catalog",
		fetch.WithTracerProvider(tp),
		fetch.WithSleep((&sleepRecorder{}).sleep),
	)

	var got payload
	require.NoError(t, f.Do(context.Background(), fetch.Request{URL: srv.URL + "/search"}, &got))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "upstream catalog", span.Name())
	assert.Contains(t, span.Attributes(), attribute.String("url.path", "/search"))
	assert.Contains(t, span.Attributes(), attribute.Int("upstream.attempts", 2))
	assert.Equal(t, codes.Unset, span.Status().Code)

	header, ok := traceparent.Load().(string)
	require.True(t, ok)
	assert.Contains(t, header, span.SpanContext().TraceID().String())
}

func TestFetcher_FailedSpanStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	f := fetch.New("content",
		fetch.WithTracerProvider(tp),
		fetch.WithPolicy(fetch.Policy{MaxAttempts: 1}),
	)

	_, err := f.Raw(context.Background(), fetch.Request{URL: srv.URL})
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "status", spans[0].Status().Description)
}
