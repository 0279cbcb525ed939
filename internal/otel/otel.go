package otel

import (
	"context"

	sdkotel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures the global OpenTelemetry tracer provider to export spans
// to an OTLP collector over gRPC. If endpoint is empty, tracing stays a
// no-op: Tracer still returns a usable trace.Tracer, it just never exports
// anything, so build pipelines can unconditionally wrap their phases in
// spans without checking whether tracing was configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	sdkotel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Tracer returns a tracer scoped to name, using whatever tracer provider is
// currently registered globally (the real OTLP one after Setup, a no-op one
// otherwise).
func Tracer(name string) trace.Tracer {
	return sdkotel.Tracer(name)
}
