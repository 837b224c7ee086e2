package common

import "fmt"

const (
	TileSize     = 32
	ScreenWidth  = 640
	ScreenHeight = 480
)

// Position is a pixel coordinate on the play field.
type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p translated by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

type Direction uint8

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Delta returns the unit step for d.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection maps a config string to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// Bounds describes the play field in pixels and its tile size.
type Bounds struct {
	Width  int
	Height int
	Tile   int
}

// DefaultBounds is the 640x480 field with 32px tiles.
func DefaultBounds() Bounds {
	return Bounds{Width: ScreenWidth, Height: ScreenHeight, Tile: TileSize}
}

func (b Bounds) Columns() int {
	if b.Tile <= 0 {
		return 0
	}
	return b.Width / b.Tile
}

func (b Bounds) Rows() int {
	if b.Tile <= 0 {
		return 0
	}
	return b.Height / b.Tile
}

// Validate rejects fields too small to hold an obstacle cluster inside the
// two-tile border.
func (b Bounds) Validate() error {
	if b.Tile <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", b.Tile)
	}
	if b.Width%b.Tile != 0 || b.Height%b.Tile != 0 {
		return fmt.Errorf("field %dx%d is not a multiple of tile size %d", b.Width, b.Height, b.Tile)
	}
	if b.Columns() < 7 || b.Rows() < 7 {
		return fmt.Errorf("field %dx%d tiles is too small, need at least 7x7", b.Columns(), b.Rows())
	}
	return nil
}

// Wrap moves a coordinate that left [0, size) to the opposite edge.
func (b Bounds) Wrap(p Position) Position {
	if p.X < 0 {
		p.X = b.Width - b.Tile
	} else if p.X >= b.Width {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = b.Height - b.Tile
	} else if p.Y >= b.Height {
		p.Y = 0
	}
	return p
}

// Snap quantizes p to the top-left corner of the tile containing it.
func (b Bounds) Snap(p Position) Position {
	return Position{X: floorTo(p.X, b.Tile), Y: floorTo(p.Y, b.Tile)}
}

// TileAt returns the pixel position of tile (col, row).
func (b Bounds) TileAt(col, row int) Position {
	return Position{X: col * b.Tile, Y: row * b.Tile}
}

// Step moves p one tile in direction d and wraps it.
func (b Bounds) Step(p Position, d Direction) Position {
	dx, dy := d.Delta()
	return b.Wrap(p.Add(dx*b.Tile, dy*b.Tile))
}

func floorTo(v, step int) int {
	if step <= 0 {
		return v
	}
	q := v / step
	if v < 0 && v%step != 0 {
		q--
	}
	return q * step
}
