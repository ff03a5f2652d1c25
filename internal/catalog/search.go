package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/storefront-gateway/internal/fetch"
	"github.com/donaldgifford/storefront-gateway/pkg/logger"
	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

const (
	defaultSearchPath      = "/search"
	defaultFeedPath        = "/for-you"
	defaultPageSize        = 24
	defaultBrandFacetLimit = 1000

	apiKeyHeader = "X-Api-Key"
)

// controlParams are set by the adapter itself and never taken from filters.
var controlParams = map[string]struct{}{
	"query":       {},
	"page":        {},
	"per_page":    {},
	"sort_by":     {},
	"sort_order":  {},
	"facet_limit": {},
	"_ts":         {},
}

// HTTPClient implements Client against the search engine's HTTP API.
type HTTPClient struct {
	fetcher    *fetch.Fetcher
	baseURL    string
	apiKey     string
	searchPath string
	feedPath   string
	pageSize   int
	facetLimit int
	log        *slog.Logger
	nowFunc    func() time.Time
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithSearchPath overrides the search endpoint path.
func WithSearchPath(p string) Option {
	return func(c *HTTPClient) {
		c.searchPath = p
	}
}

// WithFeedPath overrides the "for you" endpoint path.
func WithFeedPath(p string) Option {
	return func(c *HTTPClient) {
		c.feedPath = p
	}
}

// WithPageSize overrides the fixed page size used for search and feed.
func WithPageSize(n int) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithBrandFacetLimit overrides how many facet values the brand directory
// requests.
func WithBrandFacetLimit(n int) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.facetLimit = n
		}
	}
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) {
		c.log = l
	}
}

// WithNowFunc overrides the clock used for the cache-busting timestamp.
func WithNowFunc(f func() time.Time) Option {
	return func(c *HTTPClient) {
		c.nowFunc = f
	}
}

// NewHTTPClient creates a catalog client. It fails when apiKey is empty so
// a misconfigured process never reaches the first request.
func NewHTTPClient(
	fetcher *fetch.Fetcher,
	baseURL, apiKey string,
	opts ...Option,
) (*HTTPClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parsing catalog base URL: %w", err)
	}

	c := &HTTPClient{
		fetcher:    fetcher,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		searchPath: defaultSearchPath,
		feedPath:   defaultFeedPath,
		pageSize:   defaultPageSize,
		facetLimit: defaultBrandFacetLimit,
		log:        slog.Default(),
		nowFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PageSize returns the fixed page size the client requests.
func (c *HTTPClient) PageSize() int {
	return c.pageSize
}

// Search implements Client.Search.
func (c *HTTPClient) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	page := max(req.Page, 1)

	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(c.pageSize))
	if req.SortBy != "" {
		params.Set("sort_by", req.SortBy)
	}
	if req.SortOrder != "" {
		params.Set("sort_order", req.SortOrder)
	}
	for _, k := range sortedKeys(req.Filters) {
		if _, ok := controlParams[k]; ok {
			continue
		}
		for _, v := range req.Filters[k] {
			params.Add(k, v)
		}
	}

	var apiResp searchAPIResponse
	if err := c.get(ctx, c.searchPath, params, &apiResp); err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	if apiResp.Results == nil {
		return nil, fmt.Errorf("searching catalog: %w: missing results array", ErrUnexpectedShape)
	}

	items, dropped := ToProductSummaries(*apiResp.Results)

	logger.FromContext(ctx, c.log).Debug("catalog search",
		"query", req.Query,
		"page", page,
		"raw", len(*apiResp.Results),
		"dropped", dropped,
	)

	return &SearchResult{
		Page: domain.Page[domain.ProductSummary]{
			Items:       items,
			CurrentPage: page,
			Total:       apiResp.Total,
			HasMore:     SearchHasMore(len(items), c.pageSize, page, apiResp.Total),
		},
		Facets: ToFacets(apiResp.Facets),
	}, nil
}

// Feed implements Client.Feed.
func (c *HTTPClient) Feed(ctx context.Context, page int) (*domain.Page[domain.ProductSummary], error) {
	page = max(page, 1)

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(c.pageSize))

	var apiResp searchAPIResponse
	if err := c.get(ctx, c.feedPath, params, &apiResp); err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	if apiResp.Results == nil {
		return nil, fmt.Errorf("fetching feed: %w: missing results array", ErrUnexpectedShape)
	}

	items, _ := ToProductSummaries(*apiResp.Results)

	return &domain.Page[domain.ProductSummary]{
		Items:       items,
		CurrentPage: page,
		Total:       apiResp.Total,
		HasMore:     FeedHasMore(len(items)),
	}, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, dst any) error {
	params.Set("_ts", strconv.FormatInt(c.nowFunc().UnixMilli(), 10))

	return c.fetcher.Do(ctx, fetch.Request{
		Method: http.MethodGet,
		URL:    c.baseURL + path + "?" + params.Encode(),
		Header: http.Header{apiKeyHeader: []string{c.apiKey}},
	}, dst)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
