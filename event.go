package chomp

import (
	"slices"

	"github.com/akmonengine/chomp/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	SCORE_CHANGED EventType = iota
	COLLECT
	WIN
	LOSS
	CONTACT_ENTER
	CONTACT_STAY
	CONTACT_EXIT
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ScoreChangedEvent is sent after every collected item
type ScoreChangedEvent struct {
	Remaining int
	Collected int
}

func (e ScoreChangedEvent) Type() EventType { return SCORE_CHANGED }

// CollectEvent is sent when a collectible node leaves the world
type CollectEvent struct {
	Node *actor.Node
}

func (e CollectEvent) Type() EventType { return COLLECT }

// WinEvent is sent once, when the last collectible is taken
type WinEvent struct{}

func (e WinEvent) Type() EventType { return WIN }

// LossEvent is sent on every contact with a hazard or a wall
type LossEvent struct {
	Node *actor.Node
	Kind actor.Kind
}

func (e LossEvent) Type() EventType { return LOSS }

// Contact events, tracked per node across frames where collisions were tested
type ContactEnterEvent struct {
	Node       *actor.Node
	Correction mgl64.Vec3
}

func (e ContactEnterEvent) Type() EventType { return CONTACT_ENTER }

type ContactStayEvent struct {
	Node       *actor.Node
	Correction mgl64.Vec3
}

func (e ContactStayEvent) Type() EventType { return CONTACT_STAY }

type ContactExitEvent struct {
	Node *actor.Node
}

func (e ContactExitEvent) Type() EventType { return CONTACT_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contact tracking for Enter/Stay/Exit detection
	previousContacts map[*actor.Node]bool
	currentContacts  map[*actor.Node]mgl64.Vec3
	// insertion order of both maps, to keep emission deterministic
	previousOrder []*actor.Node
	contactOrder  []*actor.Node
	tested        bool
}

func NewEvents() Events {
	return Events{
		listeners:        make(map[EventType][]EventListener),
		buffer:           make([]Event, 0, 64),
		previousContacts: make(map[*actor.Node]bool),
		currentContacts:  make(map[*actor.Node]mgl64.Vec3),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// recordContact is called for every overlap found while testing
func (e *Events) recordContact(node *actor.Node, correction mgl64.Vec3) {
	if e.currentContacts == nil {
		e.currentContacts = make(map[*actor.Node]mgl64.Vec3)
	}
	if _, ok := e.currentContacts[node]; !ok {
		e.contactOrder = append(e.contactOrder, node)
	}
	e.currentContacts[node] = correction
}

// markTested tells processContactEvents that the current frame ran collision tests
func (e *Events) markTested() {
	e.tested = true
}

// forget drops any contact state kept for node, without an exit event
func (e *Events) forget(node *actor.Node) {
	delete(e.previousContacts, node)
	delete(e.currentContacts, node)
	e.contactOrder = slices.DeleteFunc(e.contactOrder, func(n *actor.Node) bool { return n == node })
}

// processContactEvents compares current and previous contacts to detect
// Enter/Stay/Exit. Frames without collision tests keep the previous state.
func (e *Events) processContactEvents() {
	if !e.tested {
		return
	}

	for _, node := range e.contactOrder {
		correction, ok := e.currentContacts[node]
		if !ok {
			continue
		}
		if e.previousContacts[node] {
			e.buffer = append(e.buffer, ContactStayEvent{Node: node, Correction: correction})
		} else {
			e.buffer = append(e.buffer, ContactEnterEvent{Node: node, Correction: correction})
		}
	}

	for _, node := range e.previousOrder {
		if !e.previousContacts[node] {
			continue
		}
		if _, ok := e.currentContacts[node]; !ok {
			e.buffer = append(e.buffer, ContactExitEvent{Node: node})
		}
	}

	if e.previousContacts == nil {
		e.previousContacts = make(map[*actor.Node]bool)
	}
	clear(e.previousContacts)
	e.previousOrder = e.previousOrder[:0]
	for _, node := range e.contactOrder {
		if _, ok := e.currentContacts[node]; ok {
			e.previousContacts[node] = true
			e.previousOrder = append(e.previousOrder, node)
		}
	}
	clear(e.currentContacts)
	e.contactOrder = e.contactOrder[:0]
	e.tested = false
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processContactEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
