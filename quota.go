package hub

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// quotaEntry tracks, per registered pattern string, how many listeners
// share the pattern and the optional per-pattern ceiling. Entries are
// created lazily on first registration; counts are decremented on removal
// and limits survive DropAll.
type quotaEntry struct {
	count int
	limit int // zero means unlimited
}

// SetMaxListeners sets the global listener ceiling. Registration fails
// with ErrCapacityExceeded once the number of attached listeners reaches
// the ceiling.
func (h *Hub) SetMaxListeners(limit int) error {
	h.ensure()
	if limit <= 0 {
		return fmt.Errorf("%w: max listeners must be positive, got %d", ErrInvalidArgument, limit)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.config.MaxListeners = limit
	return nil
}

// SetEventMaxListeners sets the ceiling for one registered pattern. The
// pattern string is the space-joined event names as registered (a single
// event name for plain listeners). Setting a ceiling for a pattern that
// was never registered is an advisory no-op.
func (h *Hub) SetEventMaxListeners(pattern string, limit int) error {
	h.ensure()
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return fmt.Errorf("%w: empty pattern", ErrInvalidArgument)
	}
	if limit <= 0 {
		return fmt.Errorf("%w: pattern ceiling must be positive, got %d", ErrInvalidArgument, limit)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	q, ok := h.quotas[pattern]
	if !ok {
		h.logger.Warn("pattern ceiling ignored: pattern never registered",
			slog.String("hub", h.config.Name),
			slog.String("pattern", pattern),
		)
		return nil
	}
	q.limit = limit
	return nil
}

// QuotaInfo is a point-in-time view of one pattern's quota bookkeeping.
type QuotaInfo struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
	Limit   int    `json:"limit,omitempty"`
}

// Quotas returns a snapshot of the quota table, sorted by pattern.
func (h *Hub) Quotas() []QuotaInfo {
	h.ensure()
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]QuotaInfo, 0, len(h.quotas))
	for pattern, q := range h.quotas {
		out = append(out, QuotaInfo{Pattern: pattern, Count: q.count, Limit: q.limit})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}
