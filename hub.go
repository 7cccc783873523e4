package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/xraph/hub/id"
	"github.com/xraph/hub/listener"
	"github.com/xraph/hub/middleware"
)

// Names of the synthetic lifecycle events dispatched by Connect and
// Disconnect. Listeners may subscribe to them like any other event.
const (
	EventConnect    = "connect"
	EventDisconnect = "disconnect"
)

// ConnectionInfo is the payload carried by connect/disconnect announcements.
type ConnectionInfo struct {
	ConnectionID string `json:"connection_id"`
	Connections  int    `json:"connections"`
	Connected    bool   `json:"connected"`
}

// Stats contains hub dispatch counters.
type Stats struct {
	// Announced is the total number of announcements dispatched.
	Announced uint64 `json:"announced"`

	// Delivered is the total number of listener callback invocations.
	Delivered uint64 `json:"delivered"`

	// Dropped is the number of announcements discarded while disconnected.
	Dropped uint64 `json:"dropped"`

	// CallbackErrors is the number of callbacks that returned an error.
	CallbackErrors uint64 `json:"callback_errors"`

	// ActiveListeners is the current number of attached listeners.
	ActiveListeners int `json:"active_listeners"`
}

// Hub is an in-process publish/subscribe dispatch engine. It owns the
// listener registry, the per-pattern quota table, and the connected flag
// gating delivery.
//
// Create one with New. A Hub is safe for concurrent use: internal state is
// mutex-guarded, and callbacks are invoked with no locks held over a
// snapshot of the registration order, so callbacks may re-enter the hub.
// A listener registered or removed by a callback does not affect the
// announce pass in flight.
type Hub struct {
	mu     sync.Mutex
	config Config
	logger *slog.Logger

	mws   []middleware.Middleware
	chain middleware.Middleware

	// order is the dispatch registry in registration order. byKey owns
	// every listener ever registered and not dropped; Remove detaches a
	// listener from order but keeps its byKey entry so Reconnect can
	// re-append it with progress intact.
	order  []*listener.Listener
	byKey  map[id.ID]*listener.Listener
	quotas map[string]*quotaEntry

	connected    bool
	connectionID string
	connections  int

	stats Stats
}

// New creates a connected Hub with the given options.
func New(opts ...Option) (*Hub, error) {
	h := &Hub{
		config:       DefaultConfig(),
		logger:       slog.Default(),
		byKey:        make(map[id.ID]*listener.Listener),
		quotas:       make(map[string]*quotaEntry),
		connected:    true,
		connectionID: uuid.NewString(),
		connections:  1,
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	if len(h.mws) > 0 {
		h.chain = middleware.Chain(h.mws...)
	}
	return h, nil
}

// ensure panics when the hub was not built by New (programming error).
func (h *Hub) ensure() {
	if h == nil || h.byKey == nil {
		panic(ErrNotConstructed)
	}
}

// Name returns the hub's diagnostic name.
func (h *Hub) Name() string { return h.config.Name }

// Logger returns the hub's logger.
func (h *Hub) Logger() *slog.Logger { return h.logger }

// Connected reports whether announcements are currently delivered.
func (h *Hub) Connected() bool {
	h.ensure()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connected
}

// ConnectionID returns the identifier of the current connection.
func (h *Hub) ConnectionID() string {
	h.ensure()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connectionID
}

// Stats returns a copy of the hub's dispatch counters.
func (h *Hub) Stats() Stats {
	h.ensure()
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.stats
	s.ActiveListeners = len(h.order)
	return s
}

// Connect marks the hub connected under a fresh connection identity, then
// announces a connect event carrying the connection info.
func (h *Hub) Connect(ctx context.Context) {
	h.ensure()
	h.mu.Lock()
	h.connected = true
	h.connectionID = uuid.NewString()
	h.connections++
	info := ConnectionInfo{
		ConnectionID: h.connectionID,
		Connections:  h.connections,
		Connected:    true,
	}
	h.mu.Unlock()

	h.Announce(ctx, EventConnect, info)
}

// Disconnect suppresses further delivery without destroying listeners.
// It is a no-op when already disconnected. The synthetic disconnect event
// is still delivered, bypassing the connected gate, so listeners observe
// Connected: false in its payload.
func (h *Hub) Disconnect(ctx context.Context) {
	h.ensure()
	h.mu.Lock()
	if !h.connected {
		h.mu.Unlock()
		return
	}
	h.connected = false
	info := ConnectionInfo{
		ConnectionID: h.connectionID,
		Connections:  h.connections,
		Connected:    false,
	}
	h.mu.Unlock()

	h.dispatch(ctx, EventDisconnect, info)
}
