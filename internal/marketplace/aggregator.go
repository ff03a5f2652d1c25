package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/buger/jsonparser"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/storefront-gateway/internal/metrics"
	"github.com/donaldgifford/storefront-gateway/pkg/logger"
	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

const (
	defaultRegion              = "MN"
	defaultRecommendationCount = 8

	stagePrice           = "price"
	stageRecommendations = "recommendations"
)

// Aggregator implements Client on top of a Source.
type Aggregator struct {
	source Source
	region string
	count  int
	log    *slog.Logger
}

// AggregatorOption configures the Aggregator.
type AggregatorOption func(*Aggregator)

// WithRegion sets the region code sent with price lookups.
func WithRegion(code string) AggregatorOption {
	return func(a *Aggregator) {
		if code != "" {
			a.region = code
		}
	}
}

// WithRecommendationCount sets how many recommendations are requested.
func WithRecommendationCount(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.count = n
		}
	}
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l *slog.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.log = l
	}
}

// NewAggregator creates an Aggregator.
func NewAggregator(source Source, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		source: source,
		region: defaultRegion,
		count:  defaultRecommendationCount,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ProductDetail implements Client.ProductDetail. A template failure fails
// the whole call. Price and recommendation failures are isolated from each
// other and recorded in the bundle as unavailable.
func (a *Aggregator) ProductDetail(ctx context.Context, slug string) (*domain.ProductDetailBundle, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrEmptySlug
	}

	data, err := a.source.Template(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetching product template %q: %w", slug, err)
	}

	id, err := templateID(data)
	if err != nil {
		return nil, fmt.Errorf("reading product template %q: %w", slug, err)
	}

	bundle := &domain.ProductDetailBundle{
		Data:       data,
		TemplateID: id,
	}
	log := logger.FromContext(ctx, a.log).With("slug", slug, "template_id", id)

	// Neither stage returns an error, so one failing never cancels the other.
	var g errgroup.Group
	g.Go(func() error {
		price, err := a.source.Price(ctx, id, a.region)
		if err != nil {
			a.enrichmentFailed(log, stagePrice, err)
			bundle.Price = domain.Unavailable[json.RawMessage](err)
			return nil
		}
		bundle.Price = domain.Available(price)
		return nil
	})
	g.Go(func() error {
		recs, err := a.source.Recommendations(ctx, id, a.count)
		if err != nil {
			a.enrichmentFailed(log, stageRecommendations, err)
			bundle.Recommended = domain.Unavailable[[]json.RawMessage](err)
			return nil
		}
		bundle.Recommended = domain.Available(recs)
		return nil
	})
	_ = g.Wait()

	return bundle, nil
}

func (*Aggregator) enrichmentFailed(log *slog.Logger, stage string, err error) {
	metrics.EnrichmentFailuresTotal.WithLabelValues(stage).Inc()
	log.Warn("product detail enrichment failed", "stage", stage, "error", err)
}

// templateID reads the top-level id of a product template. Numeric and
// string ids are both accepted.
func templateID(data []byte) (string, error) {
	v, typ, _, err := jsonparser.Get(data, "id")
	if err != nil {
		return "", fmt.Errorf("%w: product template has no id", ErrUnexpectedShape)
	}

	switch typ {
	case jsonparser.String:
		s, err := jsonparser.ParseString(v)
		if err != nil || strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("%w: product template id is empty", ErrUnexpectedShape)
		}
		return s, nil
	case jsonparser.Number:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: product template id has type %s", ErrUnexpectedShape, typ)
	}
}
