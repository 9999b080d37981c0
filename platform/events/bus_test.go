package events

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
)

type testEvent struct {
	BaseEvent
	Seq int
}

func (e testEvent) EventName() string { return "test.event" }

func TestPublishSyncDeliversInOrder(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var got []int
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		got = append(got, e.(testEvent).Seq)
		return nil
	}))

	for i := 1; i <= 5; i++ {
		if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), i}); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	if len(got) != 5 {
		t.Fatalf("delivered %d events", len(got))
	}
	for i, seq := range got {
		if seq != i+1 {
			t.Fatalf("event order broken: %v", got)
		}
	}
}

func TestPublishSyncJoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(nil)
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		return fmt.Errorf("handler one failed")
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), 1}); err == nil {
		t.Fatal("expected the handler error to surface")
	}
}

func TestPublishAsyncCompletesOnWait(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var handled atomic.Int32
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		handled.Add(1)
		return nil
	}))

	for i := 0; i < 10; i++ {
		bus.Publish(context.Background(), testEvent{NewBaseEvent(), i})
	}
	bus.Wait()

	if got := handled.Load(); got != 10 {
		t.Fatalf("handled %d of 10 events", got)
	}
}

func TestPublishWithNoSubscribers(t *testing.T) {
	bus := NewInMemoryBus(nil)
	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), 1}); err != nil {
		t.Fatalf("publishing without subscribers must be a no-op: %v", err)
	}
}
