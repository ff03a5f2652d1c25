package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/donaldgifford/storefront-gateway/api/openapi"
	"github.com/donaldgifford/storefront-gateway/internal/api/handlers"
	mw "github.com/donaldgifford/storefront-gateway/internal/api/middleware"
	"github.com/donaldgifford/storefront-gateway/internal/catalog"
	"github.com/donaldgifford/storefront-gateway/internal/config"
	"github.com/donaldgifford/storefront-gateway/internal/content"
	"github.com/donaldgifford/storefront-gateway/internal/currency"
	"github.com/donaldgifford/storefront-gateway/internal/fetch"
	"github.com/donaldgifford/storefront-gateway/internal/marketplace"
	"github.com/donaldgifford/storefront-gateway/internal/telemetry"
	"github.com/donaldgifford/storefront-gateway/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Tracing, Version, log)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("flushing traces", "error", err)
		}
	}()

	srv, err := newServer(cfg, log)
	if err != nil {
		return err
	}

	e := srv.echo
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "version", Version)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("running server: %w", err)
	}

	log.Info("shutting down server")
	srv.health.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// server bundles the router with the handles runServe needs after startup.
type server struct {
	echo   *echo.Echo
	health *handlers.HealthHandler
}

// newServer builds the upstream clients from cfg and mounts every route.
func newServer(cfg *config.Config, log *slog.Logger) (*server, error) {
	limiters := make(map[string]*fetch.RateLimiter)

	catalogClient, err := catalog.NewHTTPClient(
		newFetcher("catalog", cfg.Catalog.Fetch, cfg.Catalog.RateLimit, log, limiters),
		cfg.Catalog.BaseURL,
		cfg.Catalog.APIKey,
		catalog.WithSearchPath(cfg.Catalog.SearchPath),
		catalog.WithFeedPath(cfg.Catalog.FeedPath),
		catalog.WithPageSize(cfg.Catalog.PageSize),
		catalog.WithBrandFacetLimit(cfg.Catalog.BrandFacetLimit),
		catalog.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("creating catalog client: %w", err)
	}

	aggregator := marketplace.NewAggregator(
		marketplace.NewHTTPSource(
			newFetcher("marketplace", cfg.Marketplace.Fetch, cfg.Marketplace.RateLimit, log, limiters),
			cfg.Marketplace.BaseURL,
		),
		marketplace.WithRegion(cfg.Marketplace.RegionCode),
		marketplace.WithRecommendationCount(cfg.Marketplace.RecommendationCount),
		marketplace.WithLogger(log),
	)

	contentClient := content.NewHTTPClient(
		newFetcher("content", cfg.Content.Fetch, config.RateLimitConfig{}, log, limiters),
		cfg.Content.SuggestionsURL,
		content.WithLogger(log),
	)

	currencyClient := currency.NewHTTPClient(
		fetch.New("currency", fetch.WithLogger(log)),
		cfg.Currency.URL,
		currency.WithTimeout(cfg.Currency.Timeout),
		currency.WithLogger(log),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(
		mw.RequestLog(log),
		mw.Tracing(otel.GetTracerProvider()),
		mw.Metrics(),
		mw.Recovery(log),
	)

	health := handlers.NewHealthHandler()
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := registerAPI(e, routeDeps{
		catalog:     catalogClient,
		marketplace: aggregator,
		content:     contentClient,
		currency:    currencyClient,
		base:        cfg.Currency.Base,
		target:      cfg.Currency.Target,
		limiters:    limiters,
	})
	openapi.RegisterRoutes(e, api)

	return &server{echo: e, health: health}, nil
}

// routeDeps are the upstream clients the API handlers delegate to.
type routeDeps struct {
	catalog     catalog.Client
	marketplace marketplace.Client
	content     content.Client
	currency    currency.Client
	base        string
	target      string
	limiters    map[string]*fetch.RateLimiter
}

// registerAPI mounts every huma operation on e.
func registerAPI(e *echo.Echo, deps routeDeps) huma.API {
	humaCfg := huma.DefaultConfig("Storefront Gateway API", Version)
	humaCfg.Info.Description = "Normalized catalog, product detail, suggestion and currency endpoints for the storefront."
	api := humaecho.New(e, humaCfg)

	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(deps.catalog))
	handlers.RegisterProductRoutes(api, handlers.NewProductHandler(deps.marketplace))
	handlers.RegisterSuggestionsRoutes(api, handlers.NewSuggestionsHandler(deps.content))
	handlers.RegisterCurrencyRoutes(api, handlers.NewCurrencyHandler(deps.currency, deps.base, deps.target))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(deps.limiters))

	return api
}

// newFetcher builds the fetcher for one upstream. A limiter is attached and
// recorded in limiters only when rl enables one.
func newFetcher(
	name string,
	fc config.FetchConfig,
	rl config.RateLimitConfig,
	log *slog.Logger,
	limiters map[string]*fetch.RateLimiter,
) *fetch.Fetcher {
	opts := []fetch.Option{
		fetch.WithPolicy(fetch.Policy{
			Timeout:     fc.Timeout,
			MaxAttempts: fc.MaxAttempts,
			Backoff:     fc.Backoff,
		}),
		fetch.WithLogger(log),
	}

	if rl.PerSecond > 0 {
		limiter := fetch.NewRateLimiter(rl.PerSecond, rl.Burst, rl.DailyLimit)
		limiters[name] = limiter
		opts = append(opts, fetch.WithRateLimiter(limiter))
	}

	return fetch.New(name, opts...)
}
