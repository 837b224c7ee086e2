package render

import "fmt"

// Texture is an opaque backend image plus its pixel size. Handle is owned
// by whichever Decoder produced it.
type Texture struct {
	Path   string
	Width  int
	Height int
	Handle any
}

// Rect is an integer rectangle in pixels.
type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.W, r.H)
}
