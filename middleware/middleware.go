// Package middleware provides composable middleware for listener callback
// invocation. Middleware wraps callback calls synchronously and can modify
// execution (recover from panics, log, record metrics, add tracing).
package middleware

import (
	"context"

	"github.com/xraph/hub/listener"
)

// Delivery describes one callback invocation: the hub performing it, the
// listener whose pattern completed, and the event that completed it.
type Delivery struct {
	// Hub is the diagnostic name of the hub dispatching the callback.
	Hub string

	// Listener is the listener being invoked.
	Listener *listener.Listener

	// Event is the announced event name that completed the pattern.
	Event string
}

// Handler is the terminal function that invokes the listener callback.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic.
// It receives the current context, the delivery being performed, and the
// next handler to call. Middleware MUST call next to continue the chain
// (unless short-circuiting on error).
type Middleware func(ctx context.Context, d *Delivery, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover) executes as:
//
//	logging → recover → callback
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, d *Delivery, next Handler) error {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, d, prev)
			}
		}
		return h(ctx)
	}
}
