package component

// Pace recomputes a snake's move delay from a script whenever the eaten
// counter changes. LastEaten starts at -1 so the first update always runs.
type Pace struct {
	Script    string
	BaseDelay float64
	LastEaten int
}

var PaceComponent = NewComponent[Pace]()
