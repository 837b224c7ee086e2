package component

// Controlled marks the snake that receives player steering.
type Controlled struct{}

var ControlledComponent = NewComponent[Controlled]()

type BackgroundTag struct{}

var BackgroundTagComponent = NewComponent[BackgroundTag]()
