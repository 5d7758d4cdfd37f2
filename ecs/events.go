package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// ShapeEventKind identifies shape lifecycle events.
type ShapeEventKind string

const (
	ShapeEventMounted   ShapeEventKind = "mounted"
	ShapeEventMeasured  ShapeEventKind = "measured"
	ShapeEventActivated ShapeEventKind = "activated"
	ShapeEventUnmounted ShapeEventKind = "unmounted"
)

// ShapeEvent is emitted when a shape changes lifecycle state.
type ShapeEvent struct {
	Entity  Entity
	ShapeID string
	Kind    ShapeEventKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// PushShape adds a shape lifecycle event.
func (q *EventQueue) PushShape(evt ShapeEvent) {
	q.Push(Event{Type: string(evt.Kind), Data: evt})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
