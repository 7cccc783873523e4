package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for hub metrics.
const meterName = "github.com/xraph/hub"

// Metrics returns middleware that records per-delivery metrics using the
// global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - hub.delivery.duration (Float64Histogram): callback time in seconds,
//     with attributes: hub, event, pattern, status ("ok" or "error")
//   - hub.deliveries (Int64Counter): total callback invocations,
//     with attributes: hub, event, pattern, status ("ok" or "error")
func Metrics() Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"hub.delivery.duration",
		metric.WithDescription("Duration of listener callback execution in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	deliveries, cErr := meter.Int64Counter(
		"hub.deliveries",
		metric.WithDescription("Total number of listener callback invocations"),
		metric.WithUnit("{delivery}"),
	)
	_ = cErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, d *Delivery, next Handler) error {
		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("hub", d.Hub),
			attribute.String("event", d.Event),
			attribute.String("pattern", d.Listener.PatternKey()),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		deliveries.Add(ctx, 1, attrs)

		return err
	}
}
