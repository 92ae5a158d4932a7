// Package otelx wires OpenTelemetry metrics for the authorization service.
//
// A disabled Instrumentation uses the no-op meter provider, so call sites
// never need nil checks.
package otelx

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const scopePrefix = "github.com/snehalbaghel/badgr-server/"

// Config holds instrumentation configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string

	// Enabled selects the SDK meter provider. When false every instrument
	// is a no-op.
	Enabled bool

	// Reader receives collected metrics when Enabled. Exporters (or a
	// ManualReader in tests) plug in here. Nil means metrics are aggregated
	// but never exported.
	Reader sdkmetric.Reader
}

// Instrumentation owns the meter provider and the service's instruments.
type Instrumentation struct {
	meterProvider metric.MeterProvider
	metrics       *Metrics
	shutdown      func(context.Context) error
}

// New builds an Instrumentation from cfg.
func New(cfg Config) (*Instrumentation, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "badgr-auth"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "unknown"
	}

	inst := &Instrumentation{shutdown: func(context.Context) error { return nil }}

	if cfg.Enabled {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				semconv.ServiceName(cfg.ServiceName),
				semconv.ServiceVersion(cfg.ServiceVersion),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}

		opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
		if cfg.Reader != nil {
			opts = append(opts, sdkmetric.WithReader(cfg.Reader))
		}
		mp := sdkmetric.NewMeterProvider(opts...)
		inst.meterProvider = mp
		inst.shutdown = mp.Shutdown
	} else {
		inst.meterProvider = noop.NewMeterProvider()
	}

	m, err := newMetrics(inst.Meter("oauth"))
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	inst.metrics = m

	return inst, nil
}

// Noop returns a disabled Instrumentation. It never fails.
func Noop() *Instrumentation {
	inst, err := New(Config{})
	if err != nil {
		panic(err)
	}
	return inst
}

// Meter returns a meter named after scope, e.g. "oauth" or "backoff".
func (i *Instrumentation) Meter(scope string) metric.Meter {
	return i.meterProvider.Meter(scopePrefix + scope)
}

// Metrics returns the pre-built instruments.
func (i *Instrumentation) Metrics() *Metrics {
	return i.metrics
}

// Shutdown flushes and stops the meter provider.
func (i *Instrumentation) Shutdown(ctx context.Context) error {
	return i.shutdown(ctx)
}
