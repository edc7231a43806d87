package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchRequested EventType = "SearchRequested"
	EventSearchCompleted EventType = "SearchCompleted"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchRequestedEvent is emitted when a new registry search is issued
type SearchRequestedEvent struct {
	Query string
	Page  int
	Sort  SortOrder
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// SearchCompletedEvent is emitted when a registry search finishes, whether it
// succeeded or not. Exactly one is published per issued search.
type SearchCompletedEvent struct {
	Query  string
	Page   int
	Sort   SortOrder
	Crates []Crate
	Err    error
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// ErrorEvent is emitted when a background component fails outside a search
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
