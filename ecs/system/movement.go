package system

import (
	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// MovementSystem moves every snake one tile per elapsed move delay.
type MovementSystem struct {
	bounds common.Bounds
}

func NewMovementSystem(bounds common.Bounds) *MovementSystem {
	return &MovementSystem{bounds: bounds}
}

func (m *MovementSystem) Update(w *ecs.World, dt float64) {
	if !running(w) {
		return
	}
	ecs.ForEach(w, component.SnakeComponent.Kind(), func(_ ecs.Entity, s *component.Snake) {
		Advance(s, dt, m.bounds)
	})
}

// Advance accumulates dt and performs at most one move tick. It reports
// whether the snake moved.
func Advance(s *component.Snake, dt float64, b common.Bounds) bool {
	if s == nil || len(s.Segments) == 0 {
		return false
	}

	s.MoveTimer += dt
	delay := s.MoveDelay
	if delay <= 0 {
		delay = component.DefaultMoveDelay
	}
	if s.MoveTimer < delay {
		return false
	}

	tail := len(s.Segments) - 1
	oldTail, oldTailDir := s.Segments[tail], s.Directions[tail]

	// Walk from the tail so each segment still reads its predecessor's
	// pre-move state.
	for i := tail; i > 0; i-- {
		s.Segments[i] = s.Segments[i-1]
		s.Directions[i] = s.Directions[i-1]
	}
	s.Segments[0] = b.Step(s.Segments[0], s.Direction)
	s.Directions[0] = s.Direction

	if s.Grow {
		s.Segments = append(s.Segments, oldTail)
		s.Directions = append(s.Directions, oldTailDir)
		s.Grow = false
	}

	s.MoveTimer = 0
	return true
}
