package hub_test

import (
	"context"
	"testing"

	"github.com/xraph/hub"
	"github.com/xraph/hub/id"
	"github.com/xraph/hub/listener"
)

func TestRemove_StopsDelivery(t *testing.T) {
	h := newHub(t)
	ctx := context.Background()

	var calls int
	key, err := h.Register([]string{"tick"}, func(_ context.Context, _ listener.Payloads) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	h.Remove(key)
	h.Announce(ctx, "tick", 1)
	if calls != 0 {
		t.Errorf("calls = %d after Remove, want 0", calls)
	}
}

func TestRemove_UnknownKeyIsNoOp(t *testing.T) {
	h := newHub(t)

	// Must not panic or disturb other listeners.
	h.Remove(id.NewListenerID())

	var calls int
	if _, err := h.Register([]string{"tick"}, func(_ context.Context, _ listener.Payloads) error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	h.Remove(id.NewListenerID())
	h.Announce(context.Background(), "tick", 1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRemove_DecrementsQuota(t *testing.T) {
	h := newHub(t)

	key, err := h.Register([]string{"tick"}, nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := h.Register([]string{"tick"}, nil); err != nil {
		t.Fatalf("Register: %v", err)
	}

	h.Remove(key)

	quotas := h.Quotas()
	if len(quotas) != 1 || quotas[0].Count != 1 {
		t.Errorf("Quotas() = %+v, want tick count 1", quotas)
	}

	// Removing twice must not decrement twice.
	h.Remove(key)
	if got := h.Quotas()[0].Count; got != 1 {
		t.Errorf("count after double Remove = %d, want 1", got)
	}
}

func TestReconnect_RestoresDelivery(t *testing.T) {
	h := newHub(t)
	ctx := context.Background()

	var calls int
	key, err := h.Register([]string{"tick"}, func(_ context.Context, _ listener.Payloads) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	h.Remove(key)
	h.Announce(ctx, "tick", 1)
	h.Reconnect(key)
	h.Announce(ctx, "tick", 2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (only the post-reconnect announce)", calls)
	}
}

func TestReconnect_PreservesTrainProgress(t *testing.T) {
	h := newHub(t)
	ctx := context.Background()

	var calls int
	key, err := h.RegisterOrdered([]string{"a", "b"}, func(_ context.Context, _ listener.Payloads) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("RegisterOrdered: %v", err)
	}

	h.Announce(ctx, "a", 1)
	h.Remove(key)
	h.Reconnect(key)
	h.Announce(ctx, "b", 2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (progress survives pause/resume)", calls)
	}
}

func TestReconnect_UnknownKeyIsNoOp(t *testing.T) {
	h := newHub(t)
	h.Reconnect(id.NewListenerID())
}

func TestReconnect_RespectsGlobalCeiling(t *testing.T) {
	h := newHub(t, hub.WithMaxListeners(1))
	ctx := context.Background()

	var oldCalls int
	key, err := h.Register([]string{"tick"}, func(_ context.Context, _ listener.Payloads) error {
		oldCalls++
		return nil
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	h.Remove(key)

	if _, err := h.Register([]string{"tick"}, nil); err != nil {
		t.Fatalf("Register after Remove: %v", err)
	}

	// The hub is full again; reconnect is an advisory no-op.
	h.Reconnect(key)
	h.Announce(ctx, "tick", 1)
	if oldCalls != 0 {
		t.Errorf("oldCalls = %d, want 0 (reconnect refused at ceiling)", oldCalls)
	}
}

func TestDropAll(t *testing.T) {
	h := newHub(t)
	ctx := context.Background()

	var calls int
	if _, err := h.Register([]string{"tick"}, func(_ context.Context, _ listener.Payloads) error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := h.SetEventMaxListeners("tick", 2); err != nil {
		t.Fatalf("SetEventMaxListeners: %v", err)
	}

	h.DropAll()

	h.Announce(ctx, "tick", 1)
	if calls != 0 {
		t.Errorf("calls = %d after DropAll, want 0", calls)
	}
	if got := len(h.Listeners()); got != 0 {
		t.Errorf("Listeners() has %d entries after DropAll, want 0", got)
	}

	// The pattern ceiling survives the drop and still binds.
	quotas := h.Quotas()
	if len(quotas) != 1 || quotas[0].Limit != 2 || quotas[0].Count != 0 {
		t.Fatalf("Quotas() = %+v, want tick limit 2 count 0", quotas)
	}
	if _, err := h.Register([]string{"tick"}, nil); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := h.Register([]string{"tick"}, nil); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := h.Register([]string{"tick"}, nil); err == nil {
		t.Error("expected the preserved ceiling to reject a 3rd registration")
	}
}

func TestListenersSnapshot_DetachedListener(t *testing.T) {
	h := newHub(t)

	key, err := h.Register([]string{"tick"}, nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	h.Remove(key)

	infos := h.Listeners()
	if len(infos) != 1 {
		t.Fatalf("got %d listeners, want 1", len(infos))
	}
	if infos[0].Attached {
		t.Error("Attached = true for a removed listener, want false")
	}
}
