// Package hub provides an in-process publish/subscribe hub. Callers
// register interest in one or more named events and receive synchronous
// callbacks when those events are announced.
//
// Hub is designed as a library: construct one with New, register listeners,
// and announce events. There is no network, persistence, or cross-process
// concern; dispatch is fully synchronous and in registration order.
//
// # Quick Start
//
//	h, err := hub.New(
//	    hub.WithName("payments"),
//	    hub.WithMaxListeners(100),
//	)
//
//	key, err := h.Register([]string{"order.created"}, func(ctx context.Context, p listener.Payloads) error {
//	    fmt.Println("order:", p["order.created"])
//	    return nil
//	})
//
//	h.Announce(ctx, "order.created", order)
//
// # Trains
//
// A pattern with more than one event is a "train": the listener fires only
// once the whole sequence has been observed, with payloads accumulated
// across announcements. RegisterOrdered requires the exact declared order
// with no intervening foreign events; Register accepts any order. In both
// disciplines an unrelated event invalidates the in-progress run.
//
//	// Fires once login, fetch, and render have been announced in order.
//	h.RegisterOrdered([]string{"login", "fetch", "render"}, cb)
//
// # Lifecycle
//
// A hub starts connected. Disconnect suppresses delivery (announcements are
// discarded with a warning) without destroying listeners; Connect resumes
// it. Both emit synthetic "connect"/"disconnect" events through the same
// engine, so listeners may subscribe to them like any other event name.
//
// # Architecture
//
// The root package owns the dispatch engine: the listener registry, the
// per-pattern quota table, and the announce loop. Sequence matching lives
// in hub/train, the listener entity in hub/listener, and cross-cutting
// invocation wrappers (logging, panic recovery, OTel metrics and tracing)
// in hub/middleware.
//
// Listener keys use TypeID — type-prefixed, K-sortable, UUIDv7-based
// identifiers.
package hub
