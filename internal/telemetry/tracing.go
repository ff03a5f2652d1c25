// Package telemetry configures OpenTelemetry trace export for the gateway.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"

	"github.com/donaldgifford/storefront-gateway/internal/config"
)

const serviceName = "storefront-gateway"

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs the global tracer provider and W3C trace-context
// propagator. With tracing disabled it only installs the propagator so
// inbound traceparent headers still flow to upstream calls.
func Setup(
	ctx context.Context,
	cfg config.TracingConfig,
	version string,
	log *slog.Logger,
) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.Enabled {
		return noopShutdown, nil
	}

	exp, err := newExporter(ctx, cfg, version)
	if err != nil {
		return nil, err
	}

	tp := NewTracerProvider(cfg.SampleRatio, version, sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)

	log.Info("tracing enabled",
		"endpoint", cfg.Endpoint,
		"sample_ratio", cfg.SampleRatio,
	)

	return tp.Shutdown, nil
}

// NewTracerProvider builds a provider tagged with the service resource and
// a parent-based ratio sampler. Span processors or exporters are supplied by
// the caller.
func NewTracerProvider(
	ratio float64,
	version string,
	opts ...sdktrace.TracerProviderOption,
) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)

	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}, opts...)

	return sdktrace.NewTracerProvider(opts...)
}

func newExporter(ctx context.Context, cfg config.TracingConfig, version string) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithDialOption(grpc.WithUserAgent(serviceName + "/" + version)),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exp, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}
	return exp, nil
}
