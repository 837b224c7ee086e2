package system

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// cp.BB overlap is inclusive, so tiles are inset to keep edge-adjacent tiles
// from colliding.
const tileInset = 0.5

// CollisionSystem resolves head contacts with food, the body and obstacles.
type CollisionSystem struct {
	bounds common.Bounds
	rng    *rand.Rand
}

func NewCollisionSystem(bounds common.Bounds, rng *rand.Rand) *CollisionSystem {
	return &CollisionSystem{bounds: bounds, rng: rng}
}

func (c *CollisionSystem) Update(w *ecs.World, _ float64) {
	if !running(w) {
		return
	}
	state := gameState(w)
	count := counter(w)

	ecs.ForEach(w, component.SnakeComponent.Kind(), func(se ecs.Entity, s *component.Snake) {
		if len(s.Segments) == 0 {
			return
		}
		head := s.Head()

		ecs.ForEach(w, component.FoodComponent.Kind(), func(_ ecs.Entity, f *component.Food) {
			if !FoodCollision(head, f.Position, c.bounds) {
				return
			}
			var occupied func(common.Position) bool
			if f.AvoidOccupied {
				occupied = occupiedTiles(w, c.bounds)
			}
			RelocateFood(f, c.rng, c.bounds, occupied)
			s.Grow = true
			eaten := 0
			if count != nil {
				count.Eaten++
				eaten = count.Eaten
			}
			w.Events().Push(ecs.Event{Kind: ecs.EventFoodEaten, Entity: se, Data: eaten})
		})

		cause := component.CauseNone
		if SelfCollision(s) {
			cause = component.CauseSelfCollision
		} else {
			ecs.ForEach(w, component.ObstacleComponent.Kind(), func(_ ecs.Entity, o *component.Obstacle) {
				if cause == component.CauseNone && HitsObstacle(head, o, c.bounds.Tile) {
					cause = component.CauseObstacleCollision
				}
			})
		}
		if cause == component.CauseNone {
			return
		}
		if state != nil && !state.Terminate(cause) {
			return
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventSnakeCrashed, Entity: se, Data: cause})
	})
}

// FoodCollision compares the tiles containing head and food.
func FoodCollision(head, food common.Position, b common.Bounds) bool {
	return b.Snap(head) == b.Snap(food)
}

// SelfCollision reports whether the head sits on a body segment. The neck
// at index 1 always trails the head and is skipped.
func SelfCollision(s *component.Snake) bool {
	if s == nil || len(s.Segments) < 3 {
		return false
	}
	head := s.Segments[0]
	for i := 2; i < len(s.Segments); i++ {
		if s.Segments[i] == head {
			return true
		}
	}
	return false
}

// HitsObstacle tests the head tile against each placed cluster tile.
func HitsObstacle(head common.Position, o *component.Obstacle, tile int) bool {
	if o == nil || o.State != component.ObstaclePlaced {
		return false
	}
	hb := tileBB(head, tile)
	for _, t := range o.Tiles {
		if hb.Intersects(tileBB(t, tile)) {
			return true
		}
	}
	return false
}

func tileBB(p common.Position, tile int) cp.BB {
	return cp.BB{
		L: float64(p.X) + tileInset,
		B: float64(p.Y) + tileInset,
		R: float64(p.X+tile) - tileInset,
		T: float64(p.Y+tile) - tileInset,
	}
}
