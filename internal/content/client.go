// Package content reads search suggestions from the CMS content feed.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/donaldgifford/storefront-gateway/internal/fetch"
	"github.com/donaldgifford/storefront-gateway/internal/metrics"
	"github.com/donaldgifford/storefront-gateway/pkg/logger"
)

// ErrUnexpectedShape is returned when the feed lacks sections[0].subsections.
var ErrUnexpectedShape = errors.New("unexpected suggestions payload shape")

// Client defines the suggestion lookup the HTTP boundary depends on.
type Client interface {
	Suggestions(ctx context.Context) ([]string, error)
}

type subsection struct {
	Title *string `json:"title"`
}

type section struct {
	Subsections *[]subsection `json:"subsections"`
}

type suggestionsResponse struct {
	Sections []section `json:"sections"`
}

// HTTPClient implements Client.
type HTTPClient struct {
	fetcher *fetch.Fetcher
	url     string
	log     *slog.Logger
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) {
		c.log = l
	}
}

// NewHTTPClient creates a suggestions client reading from feedURL.
func NewHTTPClient(fetcher *fetch.Fetcher, feedURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		fetcher: fetcher,
		url:     feedURL,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Suggestions implements Client.Suggestions. Titles are returned in feed
// order without deduplication. A structurally wrong payload is reported as
// ErrUnexpectedShape and never retried.
func (c *HTTPClient) Suggestions(ctx context.Context) ([]string, error) {
	var resp suggestionsResponse
	if err := c.fetcher.Do(ctx, fetch.Request{Method: http.MethodGet, URL: c.url}, &resp); err != nil {
		return nil, fmt.Errorf("fetching suggestions: %w", err)
	}

	if len(resp.Sections) == 0 {
		return nil, fmt.Errorf("%w: missing sections", ErrUnexpectedShape)
	}
	subs := resp.Sections[0].Subsections
	if subs == nil {
		return nil, fmt.Errorf("%w: missing sections[0].subsections", ErrUnexpectedShape)
	}

	titles := make([]string, 0, len(*subs))
	for _, s := range *subs {
		if s.Title == nil || strings.TrimSpace(*s.Title) == "" {
			continue
		}
		titles = append(titles, *s.Title)
	}

	if dropped := len(*subs) - len(titles); dropped > 0 {
		metrics.NormalizedDroppedTotal.WithLabelValues("suggestion").Add(float64(dropped))
		logger.FromContext(ctx, c.log).Debug("suggestions without title skipped", "count", dropped)
	}

	return titles, nil
}
