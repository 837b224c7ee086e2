package component

import "github.com/milk9111/snake/common"

const (
	ClusterSize           = 3
	DefaultObstaclePeriod = 15.0
)

type ObstacleState uint8

const (
	ObstacleIdle ObstacleState = iota
	ObstaclePlaced
)

func (s ObstacleState) String() string {
	if s == ObstaclePlaced {
		return "placed"
	}
	return "idle"
}

// Obstacle is a straight cluster of ClusterSize tiles that relocates every
// Period seconds once placed.
type Obstacle struct {
	State      ObstacleState
	Tiles      [ClusterSize]common.Position
	Horizontal bool
	Timer      float64
	Period     float64
}

var ObstacleComponent = NewComponent[Obstacle]()
