package ecs

// EventKind identifies gameplay events raised during an update.
type EventKind string

const (
	EventFoodEaten     EventKind = "food_eaten"
	EventSnakeCrashed  EventKind = "snake_crashed"
	EventObstacleMoved EventKind = "obstacle_moved"
)

// Event is a gameplay event payload.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue flushed at the end of each update.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Of returns the queued events of kind without removing them.
func (q *EventQueue) Of(kind EventKind) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Kind == kind {
			out = append(out, evt)
		}
	}
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
