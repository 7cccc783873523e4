package hub

import (
	"log/slog"
	"sort"

	"github.com/xraph/hub/id"
	"github.com/xraph/hub/listener"
)

// Remove detaches the listener with the given key from dispatch and
// decrements its pattern's quota count. The listener itself is retained,
// so Reconnect can later re-attach it without issuing a new key. Unknown
// keys and already-detached listeners are advisory no-ops.
func (h *Hub) Remove(key id.ID) {
	h.ensure()
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.byKey[key]
	if !ok {
		h.logger.Warn("remove ignored: unknown listener key",
			slog.String("hub", h.config.Name),
			slog.String("key", key.String()),
		)
		return
	}

	idx := h.indexOf(l)
	if idx < 0 {
		h.logger.Warn("remove ignored: listener already detached",
			slog.String("hub", h.config.Name),
			slog.String("key", key.String()),
		)
		return
	}

	h.order = append(h.order[:idx], h.order[idx+1:]...)
	if q := h.quotas[l.PatternKey()]; q != nil && q.count > 0 {
		q.count--
	}
}

// Reconnect re-appends a previously removed listener to the end of the
// dispatch order, with its in-progress train state intact. Ceilings are
// re-checked; a full hub logs a warning and leaves the listener detached.
// Unknown keys and already-attached listeners are advisory no-ops.
func (h *Hub) Reconnect(key id.ID) {
	h.ensure()
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.byKey[key]
	if !ok {
		h.logger.Warn("reconnect ignored: unknown listener key",
			slog.String("hub", h.config.Name),
			slog.String("key", key.String()),
		)
		return
	}
	if h.indexOf(l) >= 0 {
		h.logger.Warn("reconnect ignored: listener already attached",
			slog.String("hub", h.config.Name),
			slog.String("key", key.String()),
		)
		return
	}

	if max := h.config.MaxListeners; max > 0 && len(h.order) >= max {
		h.logger.Warn("reconnect ignored: global listener ceiling reached",
			slog.String("hub", h.config.Name),
			slog.String("key", key.String()),
			slog.Int("ceiling", max),
		)
		return
	}

	patternKey := l.PatternKey()
	q := h.quotas[patternKey]
	if q == nil {
		q = &quotaEntry{}
		h.quotas[patternKey] = q
	}
	if q.limit > 0 && q.count >= q.limit {
		h.logger.Warn("reconnect ignored: pattern listener ceiling reached",
			slog.String("hub", h.config.Name),
			slog.String("pattern", patternKey),
			slog.Int("ceiling", q.limit),
		)
		return
	}

	q.count++
	h.order = append(h.order, l)
}

// DropAll removes every listener and resets quota counts. Per-pattern
// limits and the global ceiling are preserved.
func (h *Hub) DropAll() {
	h.ensure()
	h.mu.Lock()
	defer h.mu.Unlock()

	h.order = nil
	h.byKey = make(map[id.ID]*listener.Listener)
	for key, q := range h.quotas {
		if q.limit > 0 {
			q.count = 0
		} else {
			delete(h.quotas, key)
		}
	}
}

// indexOf returns the dispatch-order index of l, or -1 when detached.
// Callers hold h.mu.
func (h *Hub) indexOf(l *listener.Listener) int {
	for i, cur := range h.order {
		if cur == l {
			return i
		}
	}
	return -1
}

// ──────────────────────────────────────────────────
// Diagnostic snapshots
// ──────────────────────────────────────────────────

// ListenerInfo is a point-in-time view of one listener for diagnostics
// and testing.
type ListenerInfo struct {
	Key         id.ID    `json:"key"`
	Pattern     []string `json:"pattern"`
	Mode        string   `json:"mode"`
	Ordering    string   `json:"ordering"`
	Invocations int      `json:"invocations"`
	Fired       bool     `json:"fired"`
	Matched     []string `json:"matched,omitempty"`
	Attached    bool     `json:"attached"`
}

// Listeners returns a snapshot of every known listener: attached ones in
// dispatch order, then detached ones sorted by key.
func (h *Hub) Listeners() []ListenerInfo {
	h.ensure()
	h.mu.Lock()
	defer h.mu.Unlock()

	attached := make(map[id.ID]bool, len(h.order))
	out := make([]ListenerInfo, 0, len(h.byKey))
	for _, l := range h.order {
		attached[l.Key] = true
		out = append(out, h.listenerInfo(l, true))
	}

	var detached []ListenerInfo
	for _, l := range h.byKey {
		if !attached[l.Key] {
			detached = append(detached, h.listenerInfo(l, false))
		}
	}
	sort.Slice(detached, func(i, j int) bool {
		return detached[i].Key.String() < detached[j].Key.String()
	})
	return append(out, detached...)
}

func (h *Hub) listenerInfo(l *listener.Listener, attached bool) ListenerInfo {
	pattern := make([]string, len(l.Pattern))
	copy(pattern, l.Pattern)
	return ListenerInfo{
		Key:         l.Key,
		Pattern:     pattern,
		Mode:        l.Mode.String(),
		Ordering:    l.Ordering.String(),
		Invocations: l.Invocations,
		Fired:       l.Fired,
		Matched:     l.Matched(),
		Attached:    attached,
	}
}
