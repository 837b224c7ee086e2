package system

import (
	"math"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// ParallaxSystem scrolls textured transforms and keeps the offset inside one
// texture period so the background repeats.
type ParallaxSystem struct{}

func NewParallaxSystem() *ParallaxSystem {
	return &ParallaxSystem{}
}

func (p *ParallaxSystem) Update(w *ecs.World, dt float64) {
	if !running(w) {
		return
	}
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.ParallaxComponent.Kind(), component.SpriteComponent.Kind(),
		func(_ ecs.Entity, t *component.Transform, px *component.Parallax, s *component.Sprite) {
			t.X += px.SpeedX * dt
			t.Y += px.SpeedY * dt
			wt, ht := spriteSize(s, 0)
			t.X = wrapOffset(t.X, float64(wt))
			t.Y = wrapOffset(t.Y, float64(ht))
		})
}

func wrapOffset(v, period float64) float64 {
	if period <= 0 {
		return v
	}
	v = math.Mod(v, period)
	if v < 0 {
		v += period
	}
	return v
}
