// Package train implements the sequence-matching state machine behind
// multi-event listener patterns ("trains"). A Tracker observes one
// announcement at a time and reports when the full pattern has been seen,
// accumulating the most recent payload for each pattern member along the way.
//
// Two ordering disciplines are supported:
//
//   - [Strict]: the pattern's events must arrive in declared order with no
//     intervening foreign events. A foreign event invalidates the run; the
//     pattern's first event always starts a fresh run.
//   - [Loose]: the pattern's events may arrive in any order, but any event
//     outside the pattern invalidates the accumulation. The train completes
//     once every distinct member has been seen.
//
// Both disciplines share the reset-on-foreign-event policy so that stray
// announcements cannot poison an unrelated future match window.
package train

// Ordering selects the discipline a Tracker uses to recognize its pattern.
type Ordering int

const (
	// Loose completes once every pattern member has been observed,
	// regardless of arrival order.
	Loose Ordering = iota

	// Strict requires the exact pattern, in order, with no intervening
	// non-pattern events.
	Strict
)

// String returns a human-readable ordering name.
func (o Ordering) String() string {
	switch o {
	case Strict:
		return "strict"
	case Loose:
		return "loose"
	default:
		return "unknown"
	}
}

// Tracker holds the in-progress match state for one listener's pattern.
// It is not safe for concurrent use; the owning hub serializes access.
type Tracker struct {
	pattern  []string
	ordering Ordering
	members  map[string]struct{}

	matched  []string
	payloads map[string]any
}

// New creates a tracker for the given pattern. For Loose ordering,
// duplicate names are collapsed: completion counts distinct members, so a
// duplicate could never be satisfied. Strict patterns keep duplicates,
// which are meaningful there.
func New(pattern []string, ordering Ordering) *Tracker {
	members := make(map[string]struct{}, len(pattern))
	for _, name := range pattern {
		members[name] = struct{}{}
	}

	if ordering == Loose && len(members) < len(pattern) {
		deduped := make([]string, 0, len(members))
		seen := make(map[string]struct{}, len(members))
		for _, name := range pattern {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			deduped = append(deduped, name)
		}
		pattern = deduped
	}

	return &Tracker{
		pattern:  pattern,
		ordering: ordering,
		members:  members,
		payloads: make(map[string]any),
	}
}

// Observe applies one announcement to the tracker and reports whether the
// pattern is now complete. A non-conforming event clears all in-progress
// state. On completion the accumulated payloads remain available via
// Payloads until Reset is called.
func (t *Tracker) Observe(event string, payload any) bool {
	if t.ordering == Strict {
		return t.observeStrict(event, payload)
	}
	return t.observeLoose(event, payload)
}

func (t *Tracker) observeStrict(event string, payload any) bool {
	// Extend the current run if the event is the next expected name.
	if len(t.matched) < len(t.pattern) && t.pattern[len(t.matched)] == event {
		t.matched = append(t.matched, event)
		t.payloads[event] = payload
		return len(t.matched) == len(t.pattern)
	}

	// The run broke. The pattern's first event starts a fresh run;
	// anything else invalidates entirely.
	t.Reset()
	if event == t.pattern[0] {
		t.matched = append(t.matched, event)
		t.payloads[event] = payload
		return len(t.matched) == len(t.pattern)
	}
	return false
}

func (t *Tracker) observeLoose(event string, payload any) bool {
	if _, ok := t.members[event]; !ok {
		t.Reset()
		return false
	}

	if _, seen := t.payloads[event]; !seen {
		t.matched = append(t.matched, event)
	}
	t.payloads[event] = payload
	return len(t.matched) == len(t.pattern)
}

// Matched returns a copy of the event names matched so far, in the order
// they were credited toward completion.
func (t *Tracker) Matched() []string {
	out := make([]string, len(t.matched))
	copy(out, t.matched)
	return out
}

// Payloads returns a copy of the payloads accumulated for the current run,
// keyed by event name.
func (t *Tracker) Payloads() map[string]any {
	out := make(map[string]any, len(t.payloads))
	for k, v := range t.payloads {
		out[k] = v
	}
	return out
}

// Reset clears all in-progress match state, returning the tracker to its
// initial condition.
func (t *Tracker) Reset() {
	t.matched = t.matched[:0]
	t.payloads = make(map[string]any)
}
