package system

import (
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// gameState returns the session singleton, or nil for worlds without one.
func gameState(w *ecs.World) *component.GameState {
	ent, ok := ecs.First(w, component.GameStateComponent.Kind())
	if !ok {
		return nil
	}
	state, _ := ecs.Get(w, ent, component.GameStateComponent.Kind())
	return state
}

// running treats a world without a GameState as running.
func running(w *ecs.World) bool {
	state := gameState(w)
	return state == nil || state.Running()
}

func counter(w *ecs.World) *component.Counter {
	ent, ok := ecs.First(w, component.CounterComponent.Kind())
	if !ok {
		return nil
	}
	c, _ := ecs.Get(w, ent, component.CounterComponent.Kind())
	return c
}
