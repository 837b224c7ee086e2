package render

import "image/color"

type Flip uint8

const (
	FlipNone Flip = iota
	FlipHorizontal
	FlipVertical
)

// DrawCommand is one textured quad. Source nil means the whole texture.
// Angle is in degrees, clockwise, around the destination centre.
type DrawCommand struct {
	Texture *Texture
	Source  *Rect
	Dest    Rect
	Angle   float64
	Flip    Flip
}

// Surface is the pixel sink a frontend provides.
type Surface interface {
	Clear(c color.Color)
	Draw(cmd DrawCommand)
	Present()
}

// Recorder is a Surface that keeps every call, for tests and headless runs.
type Recorder struct {
	Clears    []color.Color
	Commands  []DrawCommand
	Presented int
}

func (r *Recorder) Clear(c color.Color) {
	r.Clears = append(r.Clears, c)
	r.Commands = r.Commands[:0]
}

func (r *Recorder) Draw(cmd DrawCommand) {
	r.Commands = append(r.Commands, cmd)
}

func (r *Recorder) Present() {
	r.Presented++
}
