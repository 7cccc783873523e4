package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/xraph/hub/id"
	"github.com/xraph/hub/listener"
	"github.com/xraph/hub/middleware"
	"github.com/xraph/hub/train"
)

func newTestDelivery() *middleware.Delivery {
	l := listener.New(id.NewListenerID(), []string{"login", "fetch"}, listener.Persistent, train.Strict, nil)
	return &middleware.Delivery{
		Hub:      "test-hub",
		Listener: l,
		Event:    "fetch",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChain_ExecutionOrder(t *testing.T) {
	var order []string

	mw1 := func(ctx context.Context, _ *middleware.Delivery, next middleware.Handler) error {
		order = append(order, "mw1-before")
		err := next(ctx)
		order = append(order, "mw1-after")
		return err
	}

	mw2 := func(ctx context.Context, _ *middleware.Delivery, next middleware.Handler) error {
		order = append(order, "mw2-before")
		err := next(ctx)
		order = append(order, "mw2-after")
		return err
	}

	chain := middleware.Chain(mw1, mw2)
	handler := func(_ context.Context) error {
		order = append(order, "callback")
		return nil
	}

	err := chain(context.Background(), newTestDelivery(), handler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"mw1-before", "mw2-before", "callback", "mw2-after", "mw1-after"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(order), order)
	}
	for i, want := range expected {
		if order[i] != want {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want)
		}
	}
}

func TestChain_Empty(t *testing.T) {
	chain := middleware.Chain()
	called := false
	handler := func(_ context.Context) error {
		called = true
		return nil
	}

	if err := chain(context.Background(), newTestDelivery(), handler); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("handler not called through empty chain")
	}
}

func TestChain_ErrorPropagation(t *testing.T) {
	wantErr := errors.New("callback failed")
	chain := middleware.Chain(middleware.Logging(discardLogger()))
	handler := func(_ context.Context) error { return wantErr }

	err := chain(context.Background(), newTestDelivery(), handler)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
}

func TestRecover_ConvertsPanicToError(t *testing.T) {
	m := middleware.Recover(discardLogger())
	d := newTestDelivery()

	err := m(context.Background(), d, func(_ context.Context) error {
		panic("boom")
	})
	if err == nil {
		t.Fatal("expected error from panicking callback")
	}
}

func TestRecover_PassesThroughSuccess(t *testing.T) {
	m := middleware.Recover(discardLogger())

	err := m(context.Background(), newTestDelivery(), func(_ context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogging_PassesThroughError(t *testing.T) {
	m := middleware.Logging(discardLogger())
	wantErr := errors.New("nope")

	err := m(context.Background(), newTestDelivery(), func(_ context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
}
