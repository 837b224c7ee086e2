package component

import "github.com/milk9111/snake/common"

// DefaultMoveDelay is the time between move ticks in seconds.
const DefaultMoveDelay = 0.15

// Snake is the player body. Segments and Directions are parallel, head
// first, and never empty.
type Snake struct {
	Segments   []common.Position
	Directions []common.Direction
	Direction  common.Direction
	MoveTimer  float64
	MoveDelay  float64
	Grow       bool
}

var SnakeComponent = NewComponent[Snake]()

// NewSnake returns a one-segment snake at start heading in dir.
func NewSnake(start common.Position, dir common.Direction) *Snake {
	return &Snake{
		Segments:   []common.Position{start},
		Directions: []common.Direction{dir},
		Direction:  dir,
		MoveDelay:  DefaultMoveDelay,
	}
}

func (s *Snake) Head() common.Position {
	return s.Segments[0]
}

func (s *Snake) Len() int {
	return len(s.Segments)
}
