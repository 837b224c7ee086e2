package component

// Parallax scrolls a Transform at a constant speed in pixels per second.
type Parallax struct {
	SpeedX float64
	SpeedY float64
}

var ParallaxComponent = NewComponent[Parallax]()
