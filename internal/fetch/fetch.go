package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/storefront-gateway/internal/metrics"
	"github.com/donaldgifford/storefront-gateway/pkg/logger"
)

const snippetLen = 256

// Do performs req and decodes the 2xx JSON body into dst. Transport and
// status failures are retried according to the request policy; a body that
// does not decode into dst fails immediately with a *DecodeError.
func (f *Fetcher) Do(ctx context.Context, req Request, dst any) error {
	resp, err := f.Raw(ctx, req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, dst); err != nil {
		return &DecodeError{Err: err, Snippet: snippet(resp.Body)}
	}
	return nil
}

// Raw performs req and returns the first 2xx response. Attempts are strictly
// sequential. When every attempt fails the result is an *ExhaustedError
// wrapping the last attempt's error; a limiter refusal after a failed attempt
// ends the call the same way. Cancellation of ctx stops the loop at once and
// is returned as is.
func (f *Fetcher) Raw(ctx context.Context, req Request) (_ *Response, err error) {
	policy := req.Policy.merge(f.policy)
	log := logger.FromContext(ctx, f.log).With("upstream", f.upstream)

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing %s URL: %w", f.upstream, err)
	}
	target := u.Host + u.Path

	ctx, span := f.tracer.Start(ctx, "upstream "+f.upstream,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("upstream.name", f.upstream),
			attribute.String("server.address", u.Host),
			attribute.String("url.path", u.Path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, reason(err))
		}
		span.End()
	}()

	start := time.Now()
	defer func() {
		metrics.UpstreamDuration.WithLabelValues(f.upstream).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := f.waitForToken(ctx); err != nil {
			if attempt == 1 || ctx.Err() != nil {
				return nil, err
			}
			metrics.UpstreamFailuresTotal.WithLabelValues(f.upstream).Inc()
			return nil, &ExhaustedError{
				Upstream: f.upstream,
				Attempts: attempt - 1,
				Err:      err,
			}
		}

		metrics.UpstreamAttemptsTotal.WithLabelValues(f.upstream).Inc()
		span.SetAttributes(attribute.Int("upstream.attempts", attempt))

		resp, err := f.attempt(ctx, req, policy.Timeout)
		if err == nil {
			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
			if attempt > 1 {
				log.Info("upstream recovered", "target", target, "attempt", attempt)
			}
			return resp, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s request abandoned: %w", f.upstream, ctxErr)
		}

		lastErr = err
		metrics.UpstreamAttemptFailuresTotal.WithLabelValues(f.upstream, reason(err)).Inc()
		log.Warn("upstream attempt failed",
			"target", target,
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts,
			"error", err,
		)

		if attempt < policy.MaxAttempts {
			if err := f.sleep(ctx, policy.Backoff); err != nil {
				return nil, fmt.Errorf("%s request abandoned during backoff: %w", f.upstream, err)
			}
		}
	}

	metrics.UpstreamFailuresTotal.WithLabelValues(f.upstream).Inc()
	log.Error("upstream call failed",
		"target", target,
		"attempts", policy.MaxAttempts,
		"error", lastErr,
	)

	return nil, &ExhaustedError{
		Upstream: f.upstream,
		Attempts: policy.MaxAttempts,
		Err:      lastErr,
	}
}

func (f *Fetcher) waitForToken(ctx context.Context) error {
	if f.limiter == nil {
		return nil
	}

	start := time.Now()
	err := f.limiter.Wait(ctx)
	metrics.RateLimitWaitSeconds.WithLabelValues(f.upstream).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, ErrDailyLimitReached) {
			metrics.DailyLimitHitsTotal.WithLabelValues(f.upstream).Inc()
		}
		return fmt.Errorf("%s rate limit: %w", f.upstream, err)
	}
	return nil
}

func (f *Fetcher) attempt(
	ctx context.Context,
	req Request,
	timeout time.Duration,
) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader = http.NoBody
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	httpReq.Header.Set("Accept-Encoding", "gzip, br")
	if id := requestIDFromContext(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, f.classify(ctx, attemptCtx, timeout, err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return nil, f.classify(ctx, attemptCtx, timeout, fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: data}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// classify distinguishes an expired attempt deadline from other transport
// failures. Caller cancellation is detected by Raw via the parent context.
func (*Fetcher) classify(parent, attemptCtx context.Context, timeout time.Duration, err error) error {
	if parent.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: timeout}
	}
	return &NetworkError{Err: err}
}

func snippet(b []byte) string {
	if len(b) <= snippetLen {
		return string(b)
	}
	return string(b[:snippetLen]) + "..."
}
