package hub

import (
	"context"
	"log/slog"

	"github.com/xraph/hub/listener"
	"github.com/xraph/hub/middleware"
)

// Announce publishes a named event with a payload to all matching
// listeners, synchronously and in registration order. A slow callback
// blocks the announcer until it returns.
//
// When the hub is disconnected the announcement is discarded entirely
// after an advisory warning; no listener is evaluated. Callback errors are
// logged and never propagated to the announcer.
func (h *Hub) Announce(ctx context.Context, event string, payload any) {
	h.ensure()

	h.mu.Lock()
	if !h.connected {
		h.stats.Dropped++
		h.mu.Unlock()
		h.logger.Warn("announcement discarded: hub disconnected",
			slog.String("hub", h.config.Name),
			slog.String("event", event),
		)
		return
	}
	h.mu.Unlock()

	h.dispatch(ctx, event, payload)
}

// dispatch runs one announce pass over a stable snapshot of the registry.
// Callbacks run with no locks held, so they may register, remove, or
// announce without deadlocking; mutations never affect the pass in flight.
func (h *Hub) dispatch(ctx context.Context, event string, payload any) {
	h.mu.Lock()
	h.stats.Announced++
	snapshot := make([]*listener.Listener, len(h.order))
	copy(snapshot, h.order)
	h.mu.Unlock()

	for _, l := range snapshot {
		h.mu.Lock()
		payloads, matched := l.Observe(event, payload)
		if matched {
			l.Invocations++
			if l.Mode == listener.OneShot {
				l.Fired = true
			}
		}
		h.mu.Unlock()

		if !matched {
			continue
		}
		h.invoke(ctx, l, event, payloads)
	}
}

// invoke runs one callback through the middleware chain.
func (h *Hub) invoke(ctx context.Context, l *listener.Listener, event string, payloads listener.Payloads) {
	handler := func(ctx context.Context) error {
		return l.Callback(ctx, payloads)
	}

	var err error
	if h.chain != nil {
		d := &middleware.Delivery{Hub: h.config.Name, Listener: l, Event: event}
		err = h.chain(ctx, d, handler)
	} else {
		err = handler(ctx)
	}

	h.mu.Lock()
	h.stats.Delivered++
	if err != nil {
		h.stats.CallbackErrors++
	}
	h.mu.Unlock()

	if err != nil {
		h.logger.Error("listener callback failed",
			slog.String("hub", h.config.Name),
			slog.String("listener", l.Key.String()),
			slog.String("pattern", l.PatternKey()),
			slog.String("event", event),
			slog.String("error", err.Error()),
		)
	}
}
