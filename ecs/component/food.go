package component

import "github.com/milk9111/snake/common"

// Food is the single edible item. It is repositioned, never destroyed.
type Food struct {
	Position common.Position
	// AvoidOccupied makes relocation skip tiles held by the snake or the
	// obstacle cluster.
	AvoidOccupied bool
}

var FoodComponent = NewComponent[Food]()
