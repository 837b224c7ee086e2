package system

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func pos(x, y int) common.Position {
	return common.Position{X: x, Y: y}
}

// snakeWith builds a snake whose segments all head in dir.
func snakeWith(dir common.Direction, segs ...common.Position) *component.Snake {
	s := component.NewSnake(segs[0], dir)
	for _, p := range segs[1:] {
		s.Segments = append(s.Segments, p)
		s.Directions = append(s.Directions, dir)
	}
	return s
}

type fixture struct {
	w        *ecs.World
	state    *component.GameState
	counter  *component.Counter
	snakeE   ecs.Entity
	snake    *component.Snake
	food     *component.Food
	obstacle *component.Obstacle
}

func newFixture(t *testing.T, s *component.Snake, food common.Position) *fixture {
	t.Helper()
	w := ecs.NewWorld()
	f := &fixture{
		w:        w,
		state:    &component.GameState{},
		counter:  &component.Counter{},
		snake:    s,
		food:     &component.Food{Position: food},
		obstacle: &component.Obstacle{Period: component.DefaultObstaclePeriod},
	}

	sess := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, sess, component.GameStateComponent.Kind(), f.state))
	mustAdd(t, ecs.Add(w, sess, component.CounterComponent.Kind(), f.counter))

	f.snakeE = ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, f.snakeE, component.SnakeComponent.Kind(), s))
	mustAdd(t, ecs.Add(w, f.snakeE, component.ControlledComponent.Kind(), &component.Controlled{}))

	foodE := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, foodE, component.FoodComponent.Kind(), f.food))

	rock := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, rock, component.ObstacleComponent.Kind(), f.obstacle))
	return f
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}
