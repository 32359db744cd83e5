package directions

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/greenways/greenways/internal/directions"

// serviceMetrics instruments the directions cache and provider calls.
// Instrument creation failures leave the corresponding field nil and the
// record methods become no-ops; metrics never block serving directions.
type serviceMetrics struct {
	cacheHits       metric.Int64Counter
	cacheMisses     metric.Int64Counter
	requestDuration metric.Float64Histogram
}

func newServiceMetrics() *serviceMetrics {
	meter := otel.Meter(meterName)
	m := &serviceMetrics{}

	m.cacheHits, _ = meter.Int64Counter(
		"directions.cache.hit",
		metric.WithDescription("Number of directions served from cache"),
		metric.WithUnit("{hit}"),
	)
	m.cacheMisses, _ = meter.Int64Counter(
		"directions.cache.miss",
		metric.WithDescription("Number of directions fetched from the provider"),
		metric.WithUnit("{miss}"),
	)
	m.requestDuration, _ = meter.Float64Histogram(
		"directions.provider.request.duration",
		metric.WithDescription("Duration of directions provider requests in seconds"),
		metric.WithUnit("s"),
	)

	return m
}

func (m *serviceMetrics) recordCacheHit(ctx context.Context, provider, mode string) {
	if m.cacheHits == nil {
		return
	}
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider.name", provider),
		attribute.String("travel.mode", mode),
	))
}

func (m *serviceMetrics) recordCacheMiss(ctx context.Context, provider, mode string) {
	if m.cacheMisses == nil {
		return
	}
	m.cacheMisses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider.name", provider),
		attribute.String("travel.mode", mode),
	))
}

func (m *serviceMetrics) recordRequest(ctx context.Context, provider, mode string, duration time.Duration, err error) {
	if m.requestDuration == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("provider.name", provider),
		attribute.String("travel.mode", mode),
	}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	}
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
