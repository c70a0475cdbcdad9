package infra

import (
	"context"
	"log"

	"github.com/tnqbao/movie-catalog-service/config"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// InitMetrics registers a global OTLP meter provider plus Go runtime
// instrumentation. Without an endpoint the global provider stays a no-op,
// so domain counters are always safe to record against.
func InitMetrics(cfg *config.EnvConfig) {
	if cfg.Grafana.OTLPEndpoint == "" {
		return
	}

	exporter, err := otlpmetrichttp.New(context.Background(),
		otlpmetrichttp.WithEndpoint(cfg.Grafana.OTLPEndpoint),
	)
	if err != nil {
		log.Printf("Failed to initialize OTLP metric exporter, metrics disabled: %v", err)
		return
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.Grafana.ServiceName),
		attribute.String("deployment.environment", cfg.Environment.Mode),
	)

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	if err := runtime.Start(); err != nil {
		log.Printf("Failed to start runtime instrumentation: %v", err)
	}
}
