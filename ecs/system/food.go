package system

import (
	"math/rand/v2"

	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

const maxRelocateAttempts = 64

// RelocateFood moves f to a uniformly random tile. The tile just eaten is
// never reused; occupied, when non-nil, rejects further tiles. After
// maxRelocateAttempts the last sample is kept.
func RelocateFood(f *component.Food, rng *rand.Rand, b common.Bounds, occupied func(common.Position) bool) {
	if f == nil || rng == nil {
		return
	}
	cols, rows := b.Columns(), b.Rows()
	if cols <= 0 || rows <= 0 {
		return
	}
	eaten := b.Snap(f.Position)
	next := eaten
	for attempt := 0; attempt < maxRelocateAttempts; attempt++ {
		next = b.TileAt(rng.IntN(cols), rng.IntN(rows))
		if next == eaten {
			continue
		}
		if occupied != nil && occupied(next) {
			continue
		}
		break
	}
	f.Position = next
}

// occupiedTiles snapshots the tiles held by snakes and placed obstacles.
func occupiedTiles(w *ecs.World, b common.Bounds) func(common.Position) bool {
	taken := make(map[common.Position]struct{})
	ecs.ForEach(w, component.SnakeComponent.Kind(), func(_ ecs.Entity, s *component.Snake) {
		for _, seg := range s.Segments {
			taken[b.Snap(seg)] = struct{}{}
		}
	})
	ecs.ForEach(w, component.ObstacleComponent.Kind(), func(_ ecs.Entity, o *component.Obstacle) {
		if o.State != component.ObstaclePlaced {
			return
		}
		for _, t := range o.Tiles {
			taken[b.Snap(t)] = struct{}{}
		}
	})
	return func(p common.Position) bool {
		_, ok := taken[b.Snap(p)]
		return ok
	}
}
