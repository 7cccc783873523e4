// Package middleware provides composable middleware for listener callback
// invocation.
//
// A [Middleware] is a function that wraps a callback invocation. Middleware
// are composed into a chain using [Chain] and applied around each delivery.
// They are applied right-to-left: the first middleware in the slice is the
// outermost wrapper.
//
//	// logging → recover → callback
//	chain := middleware.Chain(middleware.Logging(logger), middleware.Recover(logger))
//
// # Built-in Middleware
//
//   - [Logging] — logs listener key, pattern, event, duration, and outcome
//   - [Recover] — catches callback panics and converts them to errors
//   - [Tracing] — wraps invocation in an OpenTelemetry span
//   - [Metrics] — records per-delivery duration and outcome counters
//
// # Writing Custom Middleware
//
//	func MyMiddleware() middleware.Middleware {
//	    return func(ctx context.Context, d *middleware.Delivery, next middleware.Handler) error {
//	        // pre-processing
//	        err := next(ctx)
//	        // post-processing
//	        return err
//	    }
//	}
//
// Middleware MUST call next to continue the chain unless intentionally
// short-circuiting (e.g., muting a listener).
package middleware
