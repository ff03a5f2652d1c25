// Package fetch provides the resilient HTTP primitive every upstream adapter
// builds on: one logical GET (or POST) with a per-attempt timeout, a bounded
// number of attempts separated by a flat backoff, optional client-side rate
// limiting, and typed failures.
package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/donaldgifford/storefront-gateway/internal/fetch"

// Default policy values.
const (
	DefaultTimeout     = 15 * time.Second
	DefaultMaxAttempts = 3
	DefaultBackoff     = 2 * time.Second
)

// Policy bounds a logical call. Zero fields fall back to the Fetcher's
// policy, then to the package defaults.
type Policy struct {
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultPolicy returns the package default policy.
func DefaultPolicy() Policy {
	return Policy{
		Timeout:     DefaultTimeout,
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
	}
}

// merge fills zero fields of p from fallback.
func (p Policy) merge(fallback Policy) Policy {
	if p.Timeout <= 0 {
		p.Timeout = fallback.Timeout
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = fallback.MaxAttempts
	}
	if p.Backoff <= 0 {
		p.Backoff = fallback.Backoff
	}
	return p
}

// Request describes one logical upstream call. It is treated as immutable.
type Request struct {
	Method string // defaults to GET
	URL    string
	Header http.Header
	Body   []byte
	Policy Policy
}

// Response is a successful (2xx) upstream response with a fully read,
// decompressed body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Fetcher issues requests to a single named upstream.
type Fetcher struct {
	upstream string
	client   *http.Client
	policy   Policy
	limiter  *RateLimiter
	log      *slog.Logger
	tracer   trace.Tracer
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option configures the Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the default HTTP client. Per-attempt timeouts are
// enforced through the request context, not the client's Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) {
		f.client = hc
	}
}

// WithPolicy sets the fallback policy for requests that leave fields zero.
func WithPolicy(p Policy) Option {
	return func(f *Fetcher) {
		f.policy = p.merge(DefaultPolicy())
	}
}

// WithRateLimiter makes every attempt wait for a limiter token first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = r
	}
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		f.log = l
	}
}

// WithTracerProvider sets the provider upstream spans are recorded on.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(f *Fetcher) {
		f.tracer = tp.Tracer(tracerName)
	}
}

// WithSleep overrides how backoff delays are waited out. Intended for tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) {
		f.sleep = fn
	}
}

// New creates a Fetcher for the named upstream. The name labels logs and
// metrics.
func New(upstream string, opts ...Option) *Fetcher {
	f := &Fetcher{
		upstream: upstream,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		policy: DefaultPolicy(),
		log:    slog.Default(),
		tracer: otel.Tracer(tracerName),
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Upstream returns the upstream name.
func (f *Fetcher) Upstream() string {
	return f.upstream
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type requestIDKey struct{}

// ContextWithRequestID attaches an inbound request ID that is forwarded to
// upstreams as X-Request-ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
