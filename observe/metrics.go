// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/danielhkuo/pokedex"

// Metrics holds the metric instruments for the service.
type Metrics struct {
	// HTTPRequestDuration tracks request latency by method, route and status.
	HTTPRequestDuration metric.Float64Histogram

	// Operations counts service operations by op and outcome.
	Operations metric.Int64Counter

	// SeedImported counts pokemon written by the seed importer.
	SeedImported metric.Int64Counter
}

var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// NewMetrics creates the instruments on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.HTTPRequestDuration, err = m.Float64Histogram("pokedex.http.request.duration",
		metric.WithDescription("HTTP request latency by method, route and status."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Operations, err = m.Int64Counter("pokedex.pokemon.operations",
		metric.WithDescription("Pokemon service operations by op and outcome."),
	); err != nil {
		return nil, err
	}
	if met.SeedImported, err = m.Int64Counter("pokedex.seed.imported",
		metric.WithDescription("Pokemon inserted by seed runs."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level instance built on the global
// meter provider. Instruments created before InitProvider are forwarded to
// the real provider once it is installed.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

func (m *Metrics) RecordOperation(ctx context.Context, op, outcome string) {
	m.Operations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("outcome", outcome),
		),
	)
}

func (m *Metrics) RecordRequest(ctx context.Context, method, route string, status int, seconds float64) {
	m.HTTPRequestDuration.Record(ctx, seconds,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("route", route),
			attribute.Int("status", status),
		),
	)
}

func (m *Metrics) RecordSeed(ctx context.Context, inserted int) {
	m.SeedImported.Add(ctx, int64(inserted))
}
