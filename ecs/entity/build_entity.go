package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/ecs/render"
	"github.com/milk9111/snake/prefabs"
)

type buildContext struct {
	PrefabPath string
	Textures   *render.TextureCache
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"game_state":   addGameState,
	"counter":      addCounter,
	"controlled":   addControlled,
	"background":   addBackgroundTag,
	"snake":        addSnake,
	"food":         addFood,
	"obstacle":     addObstacle,
	"pace":         addPace,
	"transform":    addTransform,
	"parallax":     addParallax,
	"sprite":       addSprite,
	"snake_sprite": addSnakeSprite,
	"render_layer": addRenderLayer,
	"audio":        addAudio,
}

// pace reads the snake's move delay, so snake is built first.
var componentBuildOrder = []string{
	"game_state",
	"counter",
	"controlled",
	"background",
	"snake",
	"food",
	"obstacle",
	"pace",
	"transform",
	"parallax",
	"sprite",
	"snake_sprite",
	"render_layer",
	"audio",
}

// BuildEntity creates one entity from the named prefab. Textures referenced
// by the prefab are loaded through textures; a texture that fails to load
// fails the build and leaves no entity behind.
func BuildEntity(w *ecs.World, prefabPath string, textures *render.TextureCache) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Textures: textures}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

func addGameState(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GameStateComponent.Kind(), &component.GameState{})
}

func addCounter(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CounterComponent.Kind(), &component.Counter{})
}

func addControlled(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ControlledComponent.Kind(), &component.Controlled{})
}

func addBackgroundTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BackgroundTagComponent.Kind(), &component.BackgroundTag{})
}

type snakeSpec = prefabs.SnakeComponentSpec

func addSnake(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[snakeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode snake spec: %w", err)
	}
	dir := common.Right
	if spec.Direction != "" {
		dir, err = common.ParseDirection(spec.Direction)
		if err != nil {
			return err
		}
	}
	s := component.NewSnake(common.Position{X: spec.X, Y: spec.Y}, dir)
	if spec.MoveDelay > 0 {
		s.MoveDelay = spec.MoveDelay
	}
	return ecs.Add(w, e, component.SnakeComponent.Kind(), s)
}

type foodSpec = prefabs.FoodComponentSpec

func addFood(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[foodSpec](raw)
	if err != nil {
		return fmt.Errorf("decode food spec: %w", err)
	}
	return ecs.Add(w, e, component.FoodComponent.Kind(), &component.Food{
		Position:      common.Position{X: spec.X, Y: spec.Y},
		AvoidOccupied: spec.AvoidOccupied,
	})
}

type obstacleSpec = prefabs.ObstacleComponentSpec

func addObstacle(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[obstacleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode obstacle spec: %w", err)
	}
	period := spec.Period
	if period <= 0 {
		period = component.DefaultObstaclePeriod
	}
	return ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{
		State:  component.ObstacleIdle,
		Period: period,
	})
}

type paceSpec = prefabs.PaceComponentSpec

func addPace(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[paceSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pace spec: %w", err)
	}
	base := component.DefaultMoveDelay
	if s, ok := ecs.Get(w, e, component.SnakeComponent.Kind()); ok {
		base = s.MoveDelay
	}
	return ecs.Add(w, e, component.PaceComponent.Kind(), &component.Pace{
		Script:    spec.Script,
		BaseDelay: base,
		LastEaten: -1,
	})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y})
}

type parallaxSpec = prefabs.ParallaxComponentSpec

func addParallax(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[parallaxSpec](raw)
	if err != nil {
		return fmt.Errorf("decode parallax spec: %w", err)
	}
	return ecs.Add(w, e, component.ParallaxComponent.Kind(), &component.Parallax{SpeedX: spec.SpeedX, SpeedY: spec.SpeedY})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	if spec.Image == "" {
		return fmt.Errorf("sprite: image is required")
	}
	if ctx == nil || ctx.Textures == nil {
		return fmt.Errorf("sprite %q: no texture cache", spec.Image)
	}

	tex, err := ctx.Textures.Load(spec.Image)
	if err != nil {
		return err
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Texture:   tex,
		Source:    rectOf(spec.Source),
		UseSource: spec.UseSource,
		Width:     spec.Width,
		Height:    spec.Height,
	})
}

type snakeSpriteSpec = prefabs.SnakeSpriteComponentSpec

func addSnakeSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[snakeSpriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode snake_sprite spec: %w", err)
	}
	return ecs.Add(w, e, component.SnakeSpriteComponent.Kind(), &component.SnakeSprite{
		Head: rectOf(spec.Head),
		Body: rectOf(spec.Body),
	})
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	audioComp, err := buildAudioComponent(spec)
	if err != nil {
		return err
	}
	if audioComp == nil {
		return nil
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), audioComp)
}

func rectOf(r prefabs.RectSpec) render.Rect {
	return render.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
