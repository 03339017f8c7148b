package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the console's instruments: outgoing backend traffic and
// query-cache behavior.
type Metrics struct {
	upstreamRequests metric.Int64Counter
	upstreamLatency  metric.Float64Histogram
	cacheHits        metric.Int64Counter
	cacheMisses      metric.Int64Counter
	cacheStale       metric.Int64Counter
}

// NewMetrics registers the console instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.upstreamRequests, err = meter.Int64Counter(
		"console.upstream.requests",
		metric.WithDescription("Requests sent to the backend API"),
	); err != nil {
		return nil, err
	}
	if m.upstreamLatency, err = meter.Float64Histogram(
		"console.upstream.duration",
		metric.WithDescription("Backend API request duration"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.cacheHits, err = meter.Int64Counter(
		"console.cache.hits",
		metric.WithDescription("Query-cache reads served from a fresh entry"),
	); err != nil {
		return nil, err
	}
	if m.cacheMisses, err = meter.Int64Counter(
		"console.cache.misses",
		metric.WithDescription("Query-cache reads that required a backend fetch"),
	); err != nil {
		return nil, err
	}
	if m.cacheStale, err = meter.Int64Counter(
		"console.cache.stale_served",
		metric.WithDescription("Query-cache reads that served a stale entry after a failed refresh"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordUpstreamRequest records one backend call with its outcome.
func (m *Metrics) RecordUpstreamRequest(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", status),
	)
	m.upstreamRequests.Add(ctx, 1, attrs)
	m.upstreamLatency.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordCacheHit records a read served from a fresh cache entry.
func (m *Metrics) RecordCacheHit(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.kind", kind)))
}

// RecordCacheMiss records a read that went to the backend.
func (m *Metrics) RecordCacheMiss(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.cacheMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.kind", kind)))
}

// RecordCacheStaleServed records a stale entry handed out alongside a
// refresh error.
func (m *Metrics) RecordCacheStaleServed(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.cacheStale.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.kind", kind)))
}
