package events

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// Bus manages event distribution
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]EventListener),
	}
}

// SubscribeAll adds a listener for every battle event type
func (b *Bus) SubscribeAll(listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range AllEventTypes() {
		b.insert(eventType, listener)
	}
	log.Printf("EventBus: Subscribed listener %s to all events with priority %d", listener.ID(), listener.Priority())
}

// Subscribe adds a listener for one event type
func (b *Bus) Subscribe(eventType EventType, listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.insert(eventType, listener)
	log.Printf("EventBus: Subscribed listener %s to event %s with priority %d",
		listener.ID(), eventType, listener.Priority())
}

// insert keeps listeners ordered by priority, subscription order breaking ties
func (b *Bus) insert(eventType EventType, listener EventListener) {
	listeners := b.listeners[eventType]
	at := sort.Search(len(listeners), func(i int) bool {
		return listeners[i].Priority() > listener.Priority()
	})
	listeners = append(listeners, nil)
	copy(listeners[at+1:], listeners[at:])
	listeners[at] = listener
	b.listeners[eventType] = listeners
}

// Unsubscribe removes a listener from one event type
func (b *Bus) Unsubscribe(eventType EventType, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.remove(eventType, listenerID) {
		log.Printf("EventBus: Unsubscribed listener %s from event %s", listenerID, eventType)
	}
}

// UnsubscribeAll removes a listener from every event type
func (b *Bus) UnsubscribeAll(listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType := range b.listeners {
		b.remove(eventType, listenerID)
	}
}

func (b *Bus) remove(eventType EventType, listenerID string) bool {
	listeners := b.listeners[eventType]
	kept := listeners[:0]
	for _, l := range listeners {
		if l.ID() != listenerID {
			kept = append(kept, l)
		}
	}
	removed := len(kept) != len(listeners)
	// clear the tail so dropped listeners can be collected
	for i := len(kept); i < len(listeners); i++ {
		listeners[i] = nil
	}
	b.listeners[eventType] = kept
	return removed
}

// Emit sends an event to all registered listeners
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.GetType()]))
	copy(listeners, b.listeners[event.GetType()])
	b.mu.RUnlock()

	// Process listeners in priority order
	for _, listener := range listeners {
		if event.IsCancelled() {
			break
		}

		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed: %w", listener.ID(), err)
		}
	}

	return nil
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
	log.Printf("EventBus: Cleared all listeners")
}
