package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for hub tracing.
const tracerName = "github.com/xraph/hub"

// Tracing returns middleware that wraps callback invocation in an
// OpenTelemetry span. If no TracerProvider is configured globally, the
// default noop tracer is used and this middleware becomes a pass-through
// with zero overhead.
//
// Span attributes include: hub.name, hub.listener.key, hub.event,
// hub.pattern, hub.ordering, hub.mode. On error, the span status is set
// to codes.Error with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, d *Delivery, next Handler) error {
		ctx, span := tracer.Start(ctx, "hub.listener.invoke",
			trace.WithAttributes(
				attribute.String("hub.name", d.Hub),
				attribute.String("hub.listener.key", d.Listener.Key.String()),
				attribute.String("hub.event", d.Event),
				attribute.String("hub.pattern", d.Listener.PatternKey()),
				attribute.String("hub.ordering", d.Listener.Ordering.String()),
				attribute.String("hub.mode", d.Listener.Mode.String()),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
