// Package rules hosts the turn-structure machinery: the day-phase state
// machine, the Afternoon turn loop, the reaction priority queue, and the
// event bus that ties them to subscribers.
package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of an engine event.
type EventType string

const (
	// Day cycle events
	EventPhaseChanged       EventType = "PHASE_CHANGED"
	EventDayAdvanced        EventType = "DAY_ADVANCED"
	EventNextDayFirstPlayer EventType = "NEXT_DAY_FIRST_PLAYER_SET"
	EventTurnAdvanced       EventType = "TURN_ADVANCED"
	EventAfternoonEnded     EventType = "AFTERNOON_ENDED"
	EventAtNoon             EventType = "AT_NOON"
	EventGameEnded          EventType = "GAME_ENDED"
	EventTiebreakerEntered  EventType = "TIEBREAKER_ENTERED"

	// Action events
	EventCardPlayed       EventType = "CARD_PLAYED"
	EventReactionPlayed   EventType = "REACTION_PLAYED"
	EventReactionQueued   EventType = "REACTION_QUEUED"
	EventQuickActionTaken EventType = "QUICK_ACTION_TAKEN"
	EventPlayerPassed     EventType = "PLAYER_PASSED"

	// State change events
	EventZoneChange           EventType = "ZONE_CHANGE"
	EventCardDrawn            EventType = "CARD_DRAWN"
	EventCardDiscarded        EventType = "CARD_DISCARDED"
	EventManaExpanded         EventType = "MANA_EXPANDED"
	EventManaConverted        EventType = "MANA_CONVERTED"
	EventManaPaid             EventType = "MANA_PAID"
	EventExpeditionProgressed EventType = "EXPEDITION_PROGRESSED"
	EventStatusChanged        EventType = "STATUS_CHANGED"
)

// Event represents a state change that subscribers may react to. The
// publisher never waits for acknowledgment; listeners must not block.
type Event struct {
	Type      EventType
	PlayerID  string
	ObjectID  string
	Amount    int
	Data      string
	Timestamp time.Time
	Metadata  map[string]string
}

// NewEvent creates an event with common fields populated.
func NewEvent(eventType EventType, playerID, objectID string) Event {
	return Event{
		Type:      eventType,
		PlayerID:  playerID,
		ObjectID:  objectID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// Listener is a callback that reacts to incoming events.
type Listener func(Event)

type typedListener struct {
	handle   int
	callback func(Event)
}

// EventBus is a synchronous publish/subscribe implementation with optional
// type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]typedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]typedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a single event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], typedListener{
		handle:   handle,
		callback: callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	all := make([]Listener, 0, len(bus.listeners))
	for _, l := range bus.listeners {
		all = append(all, l)
	}
	typed := append([]typedListener(nil), bus.typedListeners[event.Type]...)
	bus.mu.RUnlock()

	for _, listener := range all {
		listener(event)
	}
	for _, listener := range typed {
		listener.callback(event)
	}
}
