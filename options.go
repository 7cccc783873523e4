package hub

import (
	"fmt"
	"log/slog"

	"github.com/xraph/hub/middleware"
)

// Option configures a Hub.
type Option func(*Hub) error

// WithName sets the hub's diagnostic name.
func WithName(name string) Option {
	return func(h *Hub) error {
		h.config.Name = name
		return nil
	}
}

// WithLogger sets the structured logger for the hub.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) error {
		h.logger = l
		return nil
	}
}

// WithMaxListeners sets the global listener ceiling at construction time.
// Equivalent to calling SetMaxListeners on the constructed hub.
func WithMaxListeners(n int) Option {
	return func(h *Hub) error {
		if n <= 0 {
			return fmt.Errorf("%w: max listeners must be positive, got %d", ErrInvalidArgument, n)
		}
		h.config.MaxListeners = n
		return nil
	}
}

// WithWarnThreshold sets how many free registration slots may remain before
// ceiling-proximity warnings are logged.
func WithWarnThreshold(n int) Option {
	return func(h *Hub) error {
		if n < 0 {
			return fmt.Errorf("%w: warn threshold must not be negative, got %d", ErrInvalidArgument, n)
		}
		h.config.WarnThreshold = n
		return nil
	}
}

// WithMiddleware appends middleware to the hub's delivery chain.
// Middleware run in the order added, outermost first.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(h *Hub) error {
		h.mws = append(h.mws, mws...)
		return nil
	}
}
