package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"revenue_leak_backend/platform/logger"
)

// InMemoryBus is a process-local Bus implementation. Handlers registered via
// Subscribe are invoked in registration order; Publish runs them on their own
// goroutines, PublishSync runs them inline and joins their errors.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	wg       sync.WaitGroup
	log      *logger.Logger
}

// NewInMemoryBus creates an empty in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
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

// Publish dispatches the event to all handlers asynchronously. Handler panics
// are recovered and logged so one subscriber cannot take down another.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	for _, h := range b.handlersFor(event.EventName()) {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			defer b.recoverHandler(event.EventName())

			if err := h.Handle(ctx, event); err != nil && b.log != nil {
				b.log.Error("event handler failed",
					"event", event.EventName(),
					"error", err,
				)
			}
		}(h)
	}
}

// PublishSync dispatches the event to all handlers in order and returns the
// joined errors, if any.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	var errs []error
	for _, h := range b.handlersFor(event.EventName()) {
		if err := b.handleSync(ctx, event, h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Wait blocks until all asynchronously published events have been handled.
// Called during graceful shutdown to drain in-flight handlers.
func (b *InMemoryBus) Wait() {
	b.wg.Wait()
}

func (b *InMemoryBus) handlersFor(eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	registered := b.handlers[eventName]
	snapshot := make([]Handler, len(registered))
	copy(snapshot, registered)
	return snapshot
}

func (b *InMemoryBus) handleSync(ctx context.Context, event Event, h Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, event)
}

func (b *InMemoryBus) recoverHandler(eventName string) {
	if r := recover(); r != nil && b.log != nil {
		b.log.Error("event handler panicked",
			"event", eventName,
			"panic", fmt.Sprintf("%v", r),
		)
	}
}

var _ Bus = (*InMemoryBus)(nil)
