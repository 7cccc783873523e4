// Package listener defines the listener entity managed by a Hub: the
// registered pattern, delivery mode, callback, and the in-progress match
// state for multi-event trains.
//
// A listener is either a single-event interest (pattern of length one,
// matched directly) or a train (pattern of length > 1, matched through a
// [train.Tracker] under strict or loose ordering).
package listener

import (
	"context"
	"strings"

	"github.com/xraph/hub/id"
	"github.com/xraph/hub/train"
)

// Mode determines whether a listener survives a successful full match.
type Mode int

const (
	// Persistent listeners reset after each completion and keep matching.
	Persistent Mode = iota

	// OneShot listeners fire once and take no further matches.
	OneShot
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case OneShot:
		return "one-shot"
	case Persistent:
		return "persistent"
	default:
		return "unknown"
	}
}

// Payloads carries the values accumulated for a completed pattern, keyed by
// event name. Single-event listeners receive a one-entry map keyed by the
// announced event's name.
type Payloads map[string]any

// Callback is invoked synchronously when a listener's pattern completes.
// A returned error is logged by the hub and never propagated to the
// announcer.
type Callback func(ctx context.Context, payloads Payloads) error

// Noop is the callback substituted at registration time when the caller
// supplies none. Registering without a callback is never an error.
func Noop(context.Context, Payloads) error { return nil }

// Listener is one registered interest. Progress fields are mutated only by
// the owning hub during announce passes; the hub serializes all access.
type Listener struct {
	// Key is the opaque unique identifier assigned at registration.
	Key id.ID

	// Pattern is the ordered sequence of event names this listener
	// cares about. Length one means a plain single-event listener.
	Pattern []string

	// Mode selects persistent or one-shot delivery.
	Mode Mode

	// Ordering selects the train discipline. Only meaningful when the
	// pattern has more than one event.
	Ordering train.Ordering

	// Callback is invoked on each full match. Never nil.
	Callback Callback

	// Invocations counts how many times the callback has fired.
	Invocations int

	// Fired is set once a OneShot listener has used its single
	// permitted invocation.
	Fired bool

	tracker *train.Tracker
}

// New creates a listener for the given normalized pattern. A nil callback
// is replaced with [Noop]. Patterns longer than one event get a train
// tracker with the requested ordering.
func New(key id.ID, pattern []string, mode Mode, ordering train.Ordering, cb Callback) *Listener {
	if cb == nil {
		cb = Noop
	}

	l := &Listener{
		Key:      key,
		Pattern:  pattern,
		Mode:     mode,
		Ordering: ordering,
		Callback: cb,
	}
	if len(pattern) > 1 {
		l.tracker = train.New(pattern, ordering)
	}
	return l
}

// Observe applies one announcement to the listener's match state. On a full
// match it returns the payloads to deliver and true; the train state is
// reset so a persistent listener can match again from scratch. Fired
// one-shot listeners never match.
func (l *Listener) Observe(event string, payload any) (Payloads, bool) {
	if l.Fired {
		return nil, false
	}

	if l.tracker == nil {
		if event != l.Pattern[0] {
			return nil, false
		}
		return Payloads{event: payload}, true
	}

	if !l.tracker.Observe(event, payload) {
		return nil, false
	}
	payloads := Payloads(l.tracker.Payloads())
	l.tracker.Reset()
	return payloads, true
}

// PatternKey returns the space-joined pattern string used for quota
// bookkeeping and per-pattern ceilings.
func (l *Listener) PatternKey() string {
	return strings.Join(l.Pattern, " ")
}

// Matched returns the in-progress matched prefix for train listeners, or
// nil for single-event listeners.
func (l *Listener) Matched() []string {
	if l.tracker == nil {
		return nil
	}
	return l.tracker.Matched()
}

// ResetProgress clears any in-progress train accumulation.
func (l *Listener) ResetProgress() {
	if l.tracker != nil {
		l.tracker.Reset()
	}
}
