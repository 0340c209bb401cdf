package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"revenue_leak_backend/platform/logger"
)

type stubEvent struct {
	BaseEvent
	name string
}

func (e stubEvent) EventName() string { return e.name }

func newStubEvent(name string) stubEvent {
	return stubEvent{BaseEvent: NewBaseEvent(), name: name}
}

func TestInMemoryBus_PublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		bus.Subscribe("unit.test", HandlerFunc(func(ctx context.Context, e Event) error {
			order = append(order, i)
			return nil
		}))
	}

	if err := bus.PublishSync(context.Background(), newStubEvent("unit.test")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(order) != 3 {
		t.Fatalf("expected 3 handler invocations, got %d", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("expected handler %d at position %d, got %d", i, i, got)
		}
	}
}

func TestInMemoryBus_PublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	wantErr := errors.New("handler broke")
	bus.Subscribe("unit.test", HandlerFunc(func(ctx context.Context, e Event) error {
		return wantErr
	}))
	bus.Subscribe("unit.test", HandlerFunc(func(ctx context.Context, e Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), newStubEvent("unit.test"))
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected joined error to contain %v, got %v", wantErr, err)
	}
}

func TestInMemoryBus_PublishSyncRecoversPanics(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	bus.Subscribe("unit.test", HandlerFunc(func(ctx context.Context, e Event) error {
		panic("boom")
	}))

	err := bus.PublishSync(context.Background(), newStubEvent("unit.test"))
	if err == nil {
		t.Fatal("expected an error from a panicking handler")
	}
}

func TestInMemoryBus_PublishIsAsynchronousAndWaitable(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var mu sync.Mutex
	handled := 0
	bus.Subscribe("unit.test", HandlerFunc(func(ctx context.Context, e Event) error {
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		handled++
		mu.Unlock()
		return nil
	}))

	for i := 0; i < 5; i++ {
		bus.Publish(context.Background(), newStubEvent("unit.test"))
	}
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	if handled != 5 {
		t.Fatalf("expected 5 handled events after Wait, got %d", handled)
	}
}

func TestInMemoryBus_PublishIgnoresUnsubscribedEvents(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	bus.Subscribe("unit.other", HandlerFunc(func(ctx context.Context, e Event) error {
		return fmt.Errorf("should not run")
	}))

	if err := bus.PublishSync(context.Background(), newStubEvent("unit.test")); err != nil {
		t.Fatalf("expected no error for event without subscribers, got %v", err)
	}
}
