package hub

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xraph/hub/id"
	"github.com/xraph/hub/listener"
	"github.com/xraph/hub/train"
)

// Register adds a persistent listener with loose ordering: for a
// multi-event pattern the callback fires once every pattern member has
// been announced, in any order, with no intervening foreign event.
// A single-name pattern fires on every matching announcement.
//
// Returns the listener's key, or id.Nil with a nil error when the hub is
// disconnected (no key issued). A nil callback is replaced with a no-op.
func (h *Hub) Register(pattern []string, cb listener.Callback) (id.ID, error) {
	return h.register(pattern, cb, listener.Persistent, train.Loose)
}

// RegisterOrdered adds a persistent listener with strict ordering: the
// pattern's events must be announced in the exact declared order, with no
// intervening foreign events.
func (h *Hub) RegisterOrdered(pattern []string, cb listener.Callback) (id.ID, error) {
	return h.register(pattern, cb, listener.Persistent, train.Strict)
}

// RegisterOnce adds a one-shot listener with loose ordering. It fires at
// most once, then takes no further matches.
func (h *Hub) RegisterOnce(pattern []string, cb listener.Callback) (id.ID, error) {
	return h.register(pattern, cb, listener.OneShot, train.Loose)
}

// RegisterOnceOrdered adds a one-shot listener with strict ordering.
func (h *Hub) RegisterOnceOrdered(pattern []string, cb listener.Callback) (id.ID, error) {
	return h.register(pattern, cb, listener.OneShot, train.Strict)
}

func (h *Hub) register(pattern []string, cb listener.Callback, mode listener.Mode, ordering train.Ordering) (id.ID, error) {
	h.ensure()

	norm := normalizePattern(pattern)
	if len(norm) == 0 {
		return id.Nil, fmt.Errorf("%w: pattern has no event names", ErrInvalidArgument)
	}
	patternKey := strings.Join(norm, " ")

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.connected {
		h.logger.Warn("registration ignored: hub disconnected",
			slog.String("hub", h.config.Name),
			slog.String("pattern", patternKey),
		)
		return id.Nil, nil
	}

	if max := h.config.MaxListeners; max > 0 {
		if len(h.order) >= max {
			return id.Nil, fmt.Errorf("%w: hub %q reached its global ceiling of %d", ErrCapacityExceeded, h.config.Name, max)
		}
		if remaining := max - len(h.order); remaining < h.config.WarnThreshold {
			h.logger.Warn("approaching global listener ceiling",
				slog.String("hub", h.config.Name),
				slog.Int("remaining", remaining),
				slog.Int("ceiling", max),
			)
		}
	}

	q := h.quotas[patternKey]
	if q == nil {
		q = &quotaEntry{}
		h.quotas[patternKey] = q
	}
	if q.limit > 0 {
		if q.count >= q.limit {
			return id.Nil, fmt.Errorf("%w: pattern %q reached its ceiling of %d", ErrCapacityExceeded, patternKey, q.limit)
		}
		if remaining := q.limit - q.count; remaining < h.config.WarnThreshold {
			h.logger.Warn("approaching pattern listener ceiling",
				slog.String("hub", h.config.Name),
				slog.String("pattern", patternKey),
				slog.Int("remaining", remaining),
				slog.Int("ceiling", q.limit),
			)
		}
	}

	l := listener.New(id.NewListenerID(), norm, mode, ordering, cb)
	q.count++
	h.order = append(h.order, l)
	h.byKey[l.Key] = l
	return l.Key, nil
}

// normalizePattern trims each event name and drops empties.
func normalizePattern(pattern []string) []string {
	norm := make([]string, 0, len(pattern))
	for _, name := range pattern {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		norm = append(norm, name)
	}
	return norm
}
