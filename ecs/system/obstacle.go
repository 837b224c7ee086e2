package system

import (
	"math/rand/v2"

	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// obstacleMargin is the border, in tiles, kept clear on every side.
const obstacleMargin = 2

// ObstacleSystem places the obstacle cluster on first update and moves it
// every Period seconds afterwards.
type ObstacleSystem struct {
	bounds common.Bounds
	rng    *rand.Rand
}

func NewObstacleSystem(bounds common.Bounds, rng *rand.Rand) *ObstacleSystem {
	return &ObstacleSystem{bounds: bounds, rng: rng}
}

func (s *ObstacleSystem) Update(w *ecs.World, dt float64) {
	if !running(w) {
		return
	}
	ecs.ForEach(w, component.ObstacleComponent.Kind(), func(e ecs.Entity, o *component.Obstacle) {
		switch o.State {
		case component.ObstacleIdle:
			RegenerateObstacle(o, s.rng, s.bounds)
			o.State = component.ObstaclePlaced
			o.Timer = 0
		case component.ObstaclePlaced:
			o.Timer += dt
			period := o.Period
			if period <= 0 {
				period = component.DefaultObstaclePeriod
			}
			if o.Timer < period {
				return
			}
			RegenerateObstacle(o, s.rng, s.bounds)
			o.Timer = 0
		default:
			return
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventObstacleMoved, Entity: e, Data: o.Tiles})
	})
}

// RegenerateObstacle lays a new straight cluster, horizontal or vertical
// with equal odds, whose tiles all stay inside the obstacleMargin border.
func RegenerateObstacle(o *component.Obstacle, rng *rand.Rand, b common.Bounds) {
	if o == nil || rng == nil {
		return
	}
	o.Horizontal = rng.IntN(2) == 0

	along, across := b.Columns(), b.Rows()
	if !o.Horizontal {
		along, across = across, along
	}
	a := obstacleMargin + rng.IntN(anchorSpan(along, component.ClusterSize))
	c := obstacleMargin + rng.IntN(anchorSpan(across, 1))

	for i := range o.Tiles {
		if o.Horizontal {
			o.Tiles[i] = b.TileAt(a+i, c)
		} else {
			o.Tiles[i] = b.TileAt(c, a+i)
		}
	}
}

// anchorSpan counts the anchor indices that keep length tiles within
// [obstacleMargin, n-1-obstacleMargin].
func anchorSpan(n, length int) int {
	span := n - 2*obstacleMargin - length + 1
	if span < 1 {
		return 1
	}
	return span
}
