package entity

import (
	"fmt"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/ecs/render"
)

// NewSessionState builds the entity holding the game state, the eaten
// counter and the session's audio clips.
func NewSessionState(w *ecs.World, prefab string, textures *render.TextureCache) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab, textures)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.GameStateComponent.Kind()) {
		if err := ecs.Add(w, e, component.GameStateComponent.Kind(), &component.GameState{}); err != nil {
			return 0, fmt.Errorf("session: add game state: %w", err)
		}
	}
	if !ecs.Has(w, e, component.CounterComponent.Kind()) {
		if err := ecs.Add(w, e, component.CounterComponent.Kind(), &component.Counter{}); err != nil {
			return 0, fmt.Errorf("session: add counter: %w", err)
		}
	}
	return e, nil
}

// NewBackground builds the scrolling backdrop.
func NewBackground(w *ecs.World, prefab string, textures *render.TextureCache) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab, textures)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.BackgroundTagComponent.Kind()) {
		if err := ecs.Add(w, e, component.BackgroundTagComponent.Kind(), &component.BackgroundTag{}); err != nil {
			return 0, fmt.Errorf("background: add tag: %w", err)
		}
	}
	return e, nil
}
