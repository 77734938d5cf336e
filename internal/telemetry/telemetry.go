// Package telemetry installs the OpenTelemetry tracer provider used by the
// instrumented API transport.
package telemetry

import (
	"context"
	"os"

	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	EndpointEnvVar = "OTEL_EXPORTER_OTLP_ENDPOINT"
	InsecureEnvVar = "OTEL_EXPORTER_OTLP_INSECURE"
)

// ShutdownFunc flushes and stops the exporter.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Setup exports traces over OTLP/gRPC when $OTEL_EXPORTER_OTLP_ENDPOINT is
// set. Without it, or when the exporter cannot be built, tracing stays on
// the global no-op provider and the returned shutdown does nothing.
func Setup(ctx context.Context, serviceName string, log logging.Logger) ShutdownFunc {
	endpoint := os.Getenv(EndpointEnvVar)
	if endpoint == "" {
		return noop
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if os.Getenv(InsecureEnvVar) == "true" {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		log.Warn(ctx, "otel exporter error", "error", err)
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		log.Warn(ctx, "otel resource error", "error", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	log.Debug(ctx, "tracing enabled", "endpoint", endpoint)

	return provider.Shutdown
}
