package events

import (
	"context"
	"errors"
	"sync"
)

// Logger is the minimal logging surface the bus needs, kept as a local
// interface so the platform layer does not depend on the logger package.
type Logger interface {
	Error(msg string, args ...any)
}

// InMemoryBus is a process-local Bus implementation. Synchronous publishes
// preserve ordering per publishing goroutine, which is what the discovery
// sink contract requires.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      Logger
	wg       sync.WaitGroup
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the named event type.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all handlers asynchronously.
// Handler errors are logged, not returned.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	handlers := b.snapshot(event.EventName())

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for _, h := range handlers {
			if err := h.Handle(ctx, event); err != nil && b.log != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "error", err.Error())
			}
		}
	}()
}

// PublishSync dispatches the event to all handlers in registration order and
// returns the joined handler errors, if any.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	var errs []error
	for _, h := range b.snapshot(event.EventName()) {
		if err := h.Handle(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Wait blocks until all asynchronously published events have been handled.
// Intended for graceful shutdown and tests.
func (b *InMemoryBus) Wait() {
	b.wg.Wait()
}

func (b *InMemoryBus) snapshot(eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	handlers := make([]Handler, len(b.handlers[eventName]))
	copy(handlers, b.handlers[eventName])
	return handlers
}

var _ Bus = (*InMemoryBus)(nil)
