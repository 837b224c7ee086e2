package system

import (
	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// Turn sets the heading of s unless d would reverse it onto its own neck.
// Reversal is judged against the head's last move, so several turns inside
// one tick cannot add up to a U-turn.
func Turn(s *component.Snake, d common.Direction) bool {
	if s == nil || !d.Valid() {
		return false
	}
	moved := s.Direction
	if len(s.Directions) > 0 {
		moved = s.Directions[0]
	}
	if d == moved.Reverse() {
		return false
	}
	s.Direction = d
	return true
}

// Steer applies a direction key to every player-controlled snake. The new
// heading shows on the next move tick.
func Steer(w *ecs.World, d common.Direction) {
	if !running(w) {
		return
	}
	ecs.ForEach2(w, component.SnakeComponent.Kind(), component.ControlledComponent.Kind(), func(_ ecs.Entity, s *component.Snake, _ *component.Controlled) {
		Turn(s, d)
	})
}
