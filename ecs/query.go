package ecs

import "github.com/milk9111/snake/ecs/component"

// table is the type-erased view of a component table used for joins and
// entity teardown.
type table interface {
	has(id entityID) bool
	remove(id entityID) bool
	ids() []entityID
	size() int
}

type typedTable[T any] struct {
	set SparseSet[*T]
}

func (t *typedTable[T]) has(id entityID) bool    { return t.set.Has(id) }
func (t *typedTable[T]) remove(id entityID) bool { return t.set.Remove(id) }
func (t *typedTable[T]) ids() []entityID         { return t.set.ids() }
func (t *typedTable[T]) size() int               { return t.set.Len() }

// intersect returns the ids present in every table, iterating the smallest.
func intersect(tables ...table) []entityID {
	if len(tables) == 0 {
		return nil
	}
	smallest := 0
	for i, t := range tables {
		if t == nil {
			return nil
		}
		if t.size() < tables[smallest].size() {
			smallest = i
		}
	}
	candidates := tables[smallest].ids()
	out := candidates[:0]
	for _, id := range candidates {
		keep := true
		for i, t := range tables {
			if i == smallest {
				continue
			}
			if !t.has(id) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, id)
		}
	}
	return out
}

// Query returns the live entities holding every listed component id.
func Query(w *World, ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	tables := make([]table, 0, len(ids))
	for _, id := range ids {
		tables = append(tables, w.tables[id])
	}
	return w.handles(intersect(tables...))
}

// ForEach visits every live entity holding kind.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	ta := lookup(w, ka)
	if ta == nil {
		return
	}
	for _, id := range ta.ids() {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		a, ok := ta.set.Get(id)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

// ForEach2 visits every live entity holding both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	ta, tb := lookup(w, ka), lookup(w, kb)
	if ta == nil || tb == nil {
		return
	}
	for _, id := range intersect(ta, tb) {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		a, okA := ta.set.Get(id)
		b, okB := tb.set.Get(id)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// ForEach3 visits every live entity holding all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ta, tb, tc := lookup(w, ka), lookup(w, kb), lookup(w, kc)
	if ta == nil || tb == nil || tc == nil {
		return
	}
	for _, id := range intersect(ta, tb, tc) {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		a, okA := ta.set.Get(id)
		b, okB := tb.set.Get(id)
		c, okC := tc.set.Get(id)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// ForEach4 visits every live entity holding all four kinds.
func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	ta, tb, tc, td := lookup(w, ka), lookup(w, kb), lookup(w, kc), lookup(w, kd)
	if ta == nil || tb == nil || tc == nil || td == nil {
		return
	}
	for _, id := range intersect(ta, tb, tc, td) {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		a, okA := ta.set.Get(id)
		b, okB := tb.set.Get(id)
		c, okC := tc.set.Get(id)
		d, okD := td.set.Get(id)
		if okA && okB && okC && okD {
			fn(e, a, b, c, d)
		}
	}
}

// First returns the lowest-slot live entity holding kind.
func First[A any](w *World, ka component.ComponentKind[A]) (Entity, bool) {
	ta := lookup(w, ka)
	if ta == nil {
		return 0, false
	}
	var best entityID
	for _, id := range ta.set.denseIDs {
		if best == 0 || id < best {
			best = id
		}
	}
	if best == 0 {
		return 0, false
	}
	return w.entities.handle(best)
}
