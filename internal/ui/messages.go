package ui

import (
	"crateseek/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer to drive the text-entry cursor blink. The seq
// ties a tick to the editing session that armed it so a stale timer cannot
// start a second blink loop.
type tickMsg struct {
	seq int
}
