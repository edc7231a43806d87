package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"crateseek/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchRequested = domain.EventSearchRequested
	EventSearchCompleted = domain.EventSearchCompleted
	EventError           = domain.EventError
)

// Re-export domain event types
type SearchRequestedEvent = domain.SearchRequestedEvent
type SearchCompletedEvent = domain.SearchCompletedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
	nextID   int
	ids      map[EventType][]int

	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus and starts its dispatcher
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]EventHandler),
		ids:       make(map[EventType][]int),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers. It never blocks; if the
// bus channel is full the event is dropped with a log line.
func (b *bus) Publish(event DomainEvent) {
	select {
	case b.eventChan <- event:
	case <-b.quit:
	default:
		log.Printf("event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.ids[eventType] = append(b.ids[eventType], id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		for i, hid := range b.ids[eventType] {
			if hid == id {
				b.handlers[eventType] = append(b.handlers[eventType][:i], b.handlers[eventType][i+1:]...)
				b.ids[eventType] = append(b.ids[eventType][:i], b.ids[eventType][i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Events already queued are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers. Handlers run on the
// dispatcher goroutine so each subscriber observes events in publish order.
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			handlers := make([]EventHandler, len(b.handlers[event.Type()]))
			copy(handlers, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, handler := range handlers {
				b.call(handler, event)
			}

		case <-b.quit:
			return
		}
	}
}

func (b *bus) call(handler EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event handler panic for %s: %v\nstack: %s", event.Type(), r, debug.Stack())
		}
	}()
	handler(event)
}
