package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crateseek/internal/domain"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus := New()
	defer bus.Close()

	received := make(chan DomainEvent, 1)
	bus.Subscribe(EventSearchRequested, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(domain.SearchRequestedEvent{Query: "tokio", Page: 1})

	select {
	case e := <-received:
		event, ok := e.(domain.SearchRequestedEvent)
		require.True(t, ok)
		assert.Equal(t, "tokio", event.Query)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestSubscriberOnlySeesItsEventType(t *testing.T) {
	bus := New()
	defer bus.Close()

	completed := make(chan DomainEvent, 2)
	bus.Subscribe(EventSearchCompleted, func(e DomainEvent) {
		completed <- e
	})

	bus.Publish(domain.SearchRequestedEvent{Query: "a"})
	bus.Publish(domain.SearchCompletedEvent{Query: "b"})

	select {
	case e := <-completed:
		assert.Equal(t, EventSearchCompleted, e.Type())
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
	select {
	case e := <-completed:
		t.Fatalf("unexpected extra event: %v", e.Type())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventsArriveInPublishOrder(t *testing.T) {
	bus := New()
	defer bus.Close()

	const n = 50
	received := make(chan DomainEvent, n)
	bus.Subscribe(EventSearchCompleted, func(e DomainEvent) {
		received <- e
	})

	for i := 0; i < n; i++ {
		bus.Publish(domain.SearchCompletedEvent{Page: i})
	}

	for i := 0; i < n; i++ {
		select {
		case e := <-received:
			assert.Equal(t, i, e.(domain.SearchCompletedEvent).Page)
		case <-time.After(2 * time.Second):
			t.Fatalf("event %d not delivered", i)
		}
	}
}

func TestConcurrentPublishers(t *testing.T) {
	bus := New()
	defer bus.Close()

	var mu sync.Mutex
	count := 0
	done := make(chan struct{})
	bus.Subscribe(EventSearchCompleted, func(DomainEvent) {
		mu.Lock()
		count++
		if count == 40 {
			close(done)
		}
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				bus.Publish(domain.SearchCompletedEvent{})
			}
		}()
	}
	wg.Wait()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		mu.Lock()
		t.Fatalf("only %d of 40 events delivered", count)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New()
	defer bus.Close()

	first := make(chan DomainEvent, 4)
	second := make(chan DomainEvent, 4)
	unsubscribe := bus.Subscribe(EventSearchCompleted, func(e DomainEvent) { first <- e })
	bus.Subscribe(EventSearchCompleted, func(e DomainEvent) { second <- e })

	unsubscribe()
	bus.Publish(domain.SearchCompletedEvent{})

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber lost delivery")
	}
	select {
	case <-first:
		t.Fatal("unsubscribed handler still called")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPanickingHandlerDoesNotKillDispatcher(t *testing.T) {
	bus := New()
	defer bus.Close()

	received := make(chan DomainEvent, 2)
	bus.Subscribe(EventSearchCompleted, func(DomainEvent) { panic("boom") })
	bus.Subscribe(EventSearchCompleted, func(e DomainEvent) { received <- e })

	bus.Publish(domain.SearchCompletedEvent{})
	bus.Publish(domain.SearchCompletedEvent{})

	for i := 0; i < 2; i++ {
		select {
		case <-received:
		case <-time.After(2 * time.Second):
			t.Fatalf("event %d not delivered after handler panic", i)
		}
	}
}

func TestPublishAfterCloseDoesNotBlock(t *testing.T) {
	bus := New()
	bus.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			bus.Publish(domain.SearchCompletedEvent{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked after close")
	}
}
