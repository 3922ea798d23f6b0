// Package observability concentra métricas Prometheus y trazas OpenTelemetry del servicio.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName instrumentación de los casos de uso.
const TracerName = "aviso-pontos"

// Tracer devuelve el tracer global del servicio. Sin SetupTracing es un no-op.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// SetupTracing registra un TracerProvider que exporta por OTLP/HTTP al endpoint indicado.
// Con endpoint vacío no se exporta nada y el shutdown devuelto no hace nada.
func SetupTracing(ctx context.Context, serviceName, endpoint string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, fmt.Errorf("observability: exporter otlp: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
