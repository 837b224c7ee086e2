package ecs

import "github.com/milk9111/snake/ecs/component"

func lookup[T any](w *World, kind component.ComponentKind[T]) *typedTable[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	t, ok := w.tables[kind.ID()]
	if !ok {
		return nil
	}
	typed, _ := t.(*typedTable[T])
	return typed
}

func lookupOrCreate[T any](w *World, kind component.ComponentKind[T]) *typedTable[T] {
	if t := lookup(w, kind); t != nil {
		return t
	}
	if w.tables == nil {
		w.tables = make(map[component.ComponentID]table)
	}
	t := &typedTable[T]{}
	w.tables[kind.ID()] = t
	return t
}

// Add attaches value to e, replacing any previous value of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	lookupOrCreate(w, kind).set.Set(e.id(), value)
	return nil
}

// Remove detaches kind from e.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	t := lookup(w, kind)
	if t == nil {
		return false
	}
	return t.set.Remove(e.id())
}

// Has reports whether e holds kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	t := lookup(w, kind)
	return t != nil && t.set.Has(e.id())
}

// Get returns the value of kind attached to e.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	t := lookup(w, kind)
	if t == nil {
		return nil, false
	}
	return t.set.Get(e.id())
}
