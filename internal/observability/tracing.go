package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitTracing installs a global tracer provider so every update handled by
// the bot runs under a real span and log lines carry trace ids. No exporter
// is configured; spans exist to correlate logs, not to ship telemetry.
func InitTracing(serviceName string, logger *slog.Logger) func(context.Context) error {
	if logger == nil {
		logger = slog.Default()
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)
	otel.SetTracerProvider(provider)

	logger.Info("tracing initialised", "service", serviceName)

	return provider.Shutdown
}
