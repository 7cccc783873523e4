package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Recover returns middleware that recovers from panics in the callback
// chain. Panics are converted to errors and logged with a stack trace, so
// one misbehaving listener cannot take down the announcer.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, d *Delivery, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("listener callback panicked",
					slog.String("hub", d.Hub),
					slog.String("listener", d.Listener.Key.String()),
					slog.String("pattern", d.Listener.PatternKey()),
					slog.String("event", d.Event),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				retErr = fmt.Errorf("panic in listener %s: %v", d.Listener.Key, r)
			}
		}()
		return next(ctx)
	}
}
