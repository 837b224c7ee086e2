package ecs

import "github.com/milk9111/snake/ecs/component"

// World owns entities and their component tables.
type World struct {
	entities entityStore
	tables   map[component.ComponentID]table
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{tables: make(map[component.ComponentID]table)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, t := range w.tables {
		t.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is still valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) handles(ids []entityID) []Entity {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entities.handle(id); ok {
			out = append(out, e)
		}
	}
	return out
}
