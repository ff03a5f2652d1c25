// Package currency reads exchange rates from the currency-rate service.
package currency

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/buger/jsonparser"

	"github.com/donaldgifford/storefront-gateway/internal/fetch"
	"github.com/donaldgifford/storefront-gateway/pkg/logger"
	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

// DefaultTimeout bounds the single rate lookup.
const DefaultTimeout = 10 * time.Second

// Client defines the rate lookup the HTTP boundary depends on.
type Client interface {
	Rate(ctx context.Context, base, target string) (*domain.ExchangeRate, error)
}

// MissingRateError reports a successful response that did not carry a usable
// rate for the requested target currency.
type MissingRateError struct {
	Target string
	Status int
	// Shape lists the sorted top-level keys of the payload.
	Shape string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("rate for %s missing from response (status %d, shape %s)",
		e.Target, e.Status, e.Shape)
}

// HTTPClient implements Client.
type HTTPClient struct {
	fetcher *fetch.Fetcher
	url     string
	timeout time.Duration
	log     *slog.Logger
	nowFunc func() time.Time
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithTimeout overrides the lookup timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) {
		c.log = l
	}
}

// WithNowFunc overrides the clock used to stamp captured rates.
func WithNowFunc(f func() time.Time) Option {
	return func(c *HTTPClient) {
		c.nowFunc = f
	}
}

// NewHTTPClient creates a rate client for the service at serviceURL.
func NewHTTPClient(fetcher *fetch.Fetcher, serviceURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		fetcher: fetcher,
		url:     serviceURL,
		timeout: DefaultTimeout,
		log:     slog.Default(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rate implements Client.Rate. It makes exactly one attempt; a stale rate is
// tolerated by callers but a hung lookup is not retried.
func (c *HTTPClient) Rate(ctx context.Context, base, target string) (*domain.ExchangeRate, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	target = strings.ToUpper(strings.TrimSpace(target))

	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("parsing currency URL: %w", err)
	}
	q := u.Query()
	q.Set("base", base)
	u.RawQuery = q.Encode()

	resp, err := c.fetcher.Raw(ctx, fetch.Request{
		Method: http.MethodGet,
		URL:    u.String(),
		Policy: fetch.Policy{Timeout: c.timeout, MaxAttempts: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s/%s rate: %w", base, target, err)
	}

	rate, err := jsonparser.GetFloat(resp.Body, "rates", target)
	if err != nil || rate <= 0 {
		missing := &MissingRateError{
			Target: target,
			Status: resp.StatusCode,
			Shape:  shapeOf(resp.Body),
		}
		logger.FromContext(ctx, c.log).Error("exchange rate missing",
			"base", base,
			"target", target,
			"status", missing.Status,
			"shape", missing.Shape,
		)
		return nil, missing
	}

	return &domain.ExchangeRate{
		Base:       base,
		Target:     target,
		Rate:       rate,
		CapturedAt: c.nowFunc().UTC(),
	}, nil
}

// shapeOf fingerprints a payload by its sorted top-level keys.
func shapeOf(body []byte) string {
	var keys []string
	err := jsonparser.ObjectEach(body, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
		keys = append(keys, string(key))
		return nil
	})
	if err != nil {
		_, typ, _, _ := jsonparser.Get(body)
		return "<" + typ.String() + ">"
	}
	sort.Strings(keys)
	return "{" + strings.Join(keys, ",") + "}"
}
