package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/storefront/logger"
)

// InitMeter installs an OTLP HTTP meter provider as the global provider.
func InitMeter(ctx context.Context, cfg Config, serviceName, serviceVersion string) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(serviceName, serviceVersion)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns the storefront meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}

// CallMetrics records API call counts and latencies.
type CallMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
}

// NewCallMetrics creates the call instruments on meter.
func NewCallMetrics(meter metric.Meter) (*CallMetrics, error) {
	calls, err := meter.Int64Counter("storefront.api.calls",
		metric.WithDescription("API calls by method and status class"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating storefront.api.calls counter: %w", err)
	}
	duration, err := meter.Float64Histogram("storefront.api.duration",
		metric.WithDescription("API call duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating storefront.api.duration histogram: %w", err)
	}
	active, err := meter.Int64UpDownCounter("storefront.api.active",
		metric.WithDescription("API calls in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating storefront.api.active counter: %w", err)
	}
	return &CallMetrics{calls: calls, duration: duration, active: active}, nil
}

// Start marks a call as in flight.
func (m *CallMetrics) Start(ctx context.Context) {
	m.active.Add(ctx, 1)
}

// End records a finished call.
func (m *CallMetrics) End(ctx context.Context, method, statusClass string, d time.Duration) {
	m.active.Add(ctx, -1)
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("status", statusClass),
	))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
	))
}
