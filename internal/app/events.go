package app

import (
	"sync"
)

// EventKind names a document lifecycle event.
type EventKind string

const (
	EventOpened    EventKind = "document.opened"
	EventSaved     EventKind = "document.saved"
	EventCleared   EventKind = "document.cleared"
	EventFailed    EventKind = "document.failed"
	EventCancelled EventKind = "document.cancelled"
)

// DocumentEvent describes what happened to the open document.
type DocumentEvent struct {
	Kind   EventKind
	Action string // open, save, new
	Name   string
	Path   string
	Bytes  int
	Err    error
}

// EventHandler receives published events on its own goroutine.
type EventHandler func(DocumentEvent)

// EventBus fans document events out to subscribers.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[EventKind][]EventHandler
	all      []EventHandler
	wg       sync.WaitGroup
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventKind][]EventHandler),
	}
}

// Subscribe registers handler for one kind of event.
func (eb *EventBus) Subscribe(kind EventKind, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[kind] = append(eb.handlers[kind], handler)
}

// SubscribeAll registers handler for every event.
func (eb *EventBus) SubscribeAll(handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.all = append(eb.all, handler)
}

// Unsubscribe drops all handlers of one kind.
func (eb *EventBus) Unsubscribe(kind EventKind) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	delete(eb.handlers, kind)
}

// Publish runs every matching handler in its own goroutine.
func (eb *EventBus) Publish(event DocumentEvent) {
	eb.mu.RLock()
	handlers := append(append([]EventHandler{}, eb.handlers[event.Kind]...), eb.all...)
	eb.mu.RUnlock()

	for _, handler := range handlers {
		eb.wg.Add(1)
		go func(h EventHandler) {
			defer eb.wg.Done()
			h(event)
		}(handler)
	}
}

// Wait blocks until every handler started so far has returned.
func (eb *EventBus) Wait() {
	eb.wg.Wait()
}
