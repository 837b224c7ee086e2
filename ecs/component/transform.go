package component

// Transform is a free (non tile-locked) pixel offset, used by the scrolling
// background.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
