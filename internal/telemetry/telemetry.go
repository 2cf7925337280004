// Package telemetry sets up OpenTelemetry tracing for the HTTP server.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"storefront-be/internal/config"
	"storefront-be/internal/logger"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const ServiceName = "storefront-be"

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Init installs a global tracer provider. An OTLP endpoint wins over the
// stdout exporter; with neither configured tracing stays disabled.
func Init(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return noop, err
	}
	if exporter == nil {
		logger.L().Info("tracing disabled")
		return noop, nil
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(cfg)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.L().Info("tracing enabled",
		zap.String("endpoint", cfg.OtelEndpoint),
		zap.Bool("stdout", cfg.OtelEndpoint == "" && cfg.OtelStdout),
	)

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, cfg *config.Config) (sdktrace.SpanExporter, error) {
	switch {
	case cfg.OtelEndpoint != "":
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OtelEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		return exp, nil
	case cfg.OtelStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		return exp, nil
	default:
		return nil, nil
	}
}

func newResource(cfg *config.Config) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("deployment.environment", cfg.AppEnv),
	)
}

// Handler wraps next with otelhttp server spans. Health checks are not traced.
func Handler(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, ServiceName,
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
