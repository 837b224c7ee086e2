package component

// Counter counts items eaten this run.
type Counter struct {
	Eaten int
}

var CounterComponent = NewComponent[Counter]()
