package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that logs each callback invocation and its
// outcome.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, d *Delivery, next Handler) error {
		logger.Debug("listener invoked",
			slog.String("hub", d.Hub),
			slog.String("listener", d.Listener.Key.String()),
			slog.String("pattern", d.Listener.PatternKey()),
			slog.String("event", d.Event),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("listener callback failed",
				slog.String("hub", d.Hub),
				slog.String("listener", d.Listener.Key.String()),
				slog.String("event", d.Event),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Debug("listener callback completed",
				slog.String("hub", d.Hub),
				slog.String("listener", d.Listener.Key.String()),
				slog.String("event", d.Event),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
