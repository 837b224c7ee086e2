package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/ecs/render"
)

// RenderSystem turns sprite-carrying entities into draw commands, in
// RenderLayer order. It computes geometry only.
type RenderSystem struct {
	bounds     common.Bounds
	background color.Color
}

func NewRenderSystem(bounds common.Bounds, background color.Color) *RenderSystem {
	if background == nil {
		background = color.Black
	}
	return &RenderSystem{bounds: bounds, background: background}
}

func (r *RenderSystem) Update(*ecs.World, float64) {}

func (r *RenderSystem) Draw(w *ecs.World, surface render.Surface) {
	if r == nil || surface == nil {
		return
	}
	surface.Clear(r.background)
	for _, cmd := range r.Commands(w) {
		surface.Draw(cmd)
	}
}

// Commands returns this frame's draw list.
func (r *RenderSystem) Commands(w *ecs.World) []render.DrawCommand {
	entities := ecs.Query(w, component.SpriteComponent.ID(), component.RenderLayerComponent.ID())
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf(w, entities[i]), layerOf(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	var cmds []render.DrawCommand
	for _, e := range entities {
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Texture == nil {
			continue
		}
		if snake, ok := ecs.Get(w, e, component.SnakeComponent.Kind()); ok {
			skin, _ := ecs.Get(w, e, component.SnakeSpriteComponent.Kind())
			cmds = r.appendSnake(cmds, s, skin, snake)
			continue
		}
		if food, ok := ecs.Get(w, e, component.FoodComponent.Kind()); ok {
			cmds = append(cmds, r.tile(s, food.Position, 0))
			continue
		}
		if o, ok := ecs.Get(w, e, component.ObstacleComponent.Kind()); ok {
			if o.State != component.ObstaclePlaced {
				continue
			}
			for _, t := range o.Tiles {
				cmds = append(cmds, r.tile(s, t, 0))
			}
			continue
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			cmds = r.appendTiled(cmds, s, t)
		}
	}
	return cmds
}

func (r *RenderSystem) appendSnake(cmds []render.DrawCommand, s *component.Sprite, skin *component.SnakeSprite, snake *component.Snake) []render.DrawCommand {
	for i, seg := range snake.Segments {
		dir := snake.Direction
		if i < len(snake.Directions) {
			dir = snake.Directions[i]
		}
		cmd := r.tile(s, seg, BodyAngle(dir))
		if i == 0 {
			cmd.Angle = HeadAngle(dir)
		}
		if skin != nil {
			src := skin.Body
			if i == 0 {
				src = skin.Head
			}
			cmd.Source = &src
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

// appendTiled covers the field with copies of a scrolling texture.
func (r *RenderSystem) appendTiled(cmds []render.DrawCommand, s *component.Sprite, t *component.Transform) []render.DrawCommand {
	wt, ht := spriteSize(s, 0)
	if wt <= 0 || ht <= 0 {
		return cmds
	}
	x0 := int(math.Floor(t.X))
	y0 := int(math.Floor(t.Y))
	for x0 > 0 {
		x0 -= wt
	}
	for y0 > 0 {
		y0 -= ht
	}
	for y := y0; y < r.bounds.Height; y += ht {
		for x := x0; x < r.bounds.Width; x += wt {
			cmds = append(cmds, render.DrawCommand{
				Texture: s.Texture,
				Source:  sourceOf(s),
				Dest:    render.Rect{X: x, Y: y, W: wt, H: ht},
			})
		}
	}
	return cmds
}

func (r *RenderSystem) tile(s *component.Sprite, p common.Position, angle float64) render.DrawCommand {
	wt, ht := spriteSize(s, r.bounds.Tile)
	return render.DrawCommand{
		Texture: s.Texture,
		Source:  sourceOf(s),
		Dest:    render.Rect{X: p.X, Y: p.Y, W: wt, H: ht},
		Angle:   angle,
	}
}

// HeadAngle is the head sprite rotation in degrees; the sprite faces down.
func HeadAngle(d common.Direction) float64 {
	switch d {
	case common.Up:
		return 180
	case common.Left:
		return 90
	case common.Right:
		return 270
	default:
		return 0
	}
}

// BodyAngle is the body sprite rotation in degrees.
func BodyAngle(d common.Direction) float64 {
	if d.Horizontal() {
		return 90
	}
	return 0
}

// spriteSize returns the destination size of s, falling back to the tile
// size, then to the texture size when tile is zero.
func spriteSize(s *component.Sprite, tile int) (int, int) {
	if s == nil {
		return 0, 0
	}
	wt, ht := s.Width, s.Height
	if wt <= 0 {
		wt = tile
	}
	if ht <= 0 {
		ht = tile
	}
	if (wt <= 0 || ht <= 0) && s.Texture != nil {
		if wt <= 0 {
			wt = s.Texture.Width
		}
		if ht <= 0 {
			ht = s.Texture.Height
		}
	}
	return wt, ht
}

func sourceOf(s *component.Sprite) *render.Rect {
	if !s.UseSource {
		return nil
	}
	src := s.Source
	return &src
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}
