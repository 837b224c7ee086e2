package entity

import (
	"fmt"

	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/ecs/render"
)

func NewSnake(w *ecs.World, prefab string, textures *render.TextureCache) (ecs.Entity, error) {
	return BuildEntity(w, prefab, textures)
}

// NewSnakeAt builds the snake prefab and resets its body to a single
// segment at start heading dir.
func NewSnakeAt(w *ecs.World, prefab string, textures *render.TextureCache, start common.Position, dir common.Direction) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab, textures)
	if err != nil {
		return 0, err
	}
	s, ok := ecs.Get(w, e, component.SnakeComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("snake: prefab %q has no snake component", prefab)
	}
	delay := s.MoveDelay
	*s = *component.NewSnake(start, dir)
	s.MoveDelay = delay
	return e, nil
}

// AttachPace adds a pace script to the snake. An empty script is a no-op.
func AttachPace(w *ecs.World, e ecs.Entity, script string) error {
	if script == "" {
		return nil
	}
	s, ok := ecs.Get(w, e, component.SnakeComponent.Kind())
	if !ok {
		return fmt.Errorf("pace: entity %s has no snake component", e)
	}
	return ecs.Add(w, e, component.PaceComponent.Kind(), &component.Pace{
		Script:    script,
		BaseDelay: s.MoveDelay,
		LastEaten: -1,
	})
}
