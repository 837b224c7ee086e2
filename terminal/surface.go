package terminal

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/snake/ecs/render"
)

// cellsPerTile is how many columns one tile spans; terminal cells are
// roughly twice as tall as they are wide.
const cellsPerTile = 2

// Screen renders draw commands as glyphs on a tcell screen. One tile is
// cellsPerTile columns by one row; the row below the field shows a status
// line.
type Screen struct {
	screen tcell.Screen
	tile   int
	rows   int
	bg     tcell.Color
	status string
}

func NewScreen(screen tcell.Screen, tile, rows int) *Screen {
	return &Screen{screen: screen, tile: tile, rows: rows, bg: tcell.ColorBlack}
}

func (s *Screen) Clear(c color.Color) {
	s.bg = toColor(c)
	s.screen.Fill(' ', tcell.StyleDefault.Background(s.bg))
}

func (s *Screen) Draw(cmd render.DrawCommand) {
	g, ok := cmd.Texture.Handle.(Glyph)
	if !ok || s.tile <= 0 {
		return
	}

	if cmd.Dest.W == s.tile && cmd.Dest.H == s.tile {
		s.tileGlyph(cmd, g)
		return
	}

	// Larger sprites cover every cell they overlap.
	style := tcell.StyleDefault.Foreground(g.Color).Background(g.Color)
	if g.Rune != ' ' {
		style = tcell.StyleDefault.Foreground(g.Color).Background(s.bg)
	}
	x0, y0 := s.cell(cmd.Dest.X, cmd.Dest.Y)
	x1, y1 := s.cell(cmd.Dest.X+cmd.Dest.W, cmd.Dest.Y+cmd.Dest.H)
	for y := max(y0, 0); y < min(y1, s.rows); y++ {
		for x := max(x0, 0); x < x1; x++ {
			s.screen.SetContent(x, y, g.Rune, nil, style)
		}
	}
}

func (s *Screen) tileGlyph(cmd render.DrawCommand, g Glyph) {
	x, y := s.cell(cmd.Dest.X, cmd.Dest.Y)
	if y < 0 || y >= s.rows {
		return
	}
	style := tcell.StyleDefault.Foreground(g.Color).Background(s.bg)
	left, right := g.Rune, g.Rune
	if isSheetHead(cmd) {
		left, right = headRune(cmd.Angle), ' '
	}
	s.screen.SetContent(x, y, left, nil, style)
	s.screen.SetContent(x+1, y, right, nil, style)
}

// Status sets the text shown under the field on the next Present.
func (s *Screen) Status(text string) {
	s.status = text
}

func (s *Screen) Present() {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	width, _ := s.screen.Size()
	col := 0
	for _, r := range s.status {
		if col >= width {
			break
		}
		s.screen.SetContent(col, s.rows, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.screen.SetContent(col, s.rows, ' ', nil, style)
	}
	s.screen.Show()
}

func (s *Screen) cell(px, py int) (int, int) {
	return floorDiv(px, s.tile) * cellsPerTile, floorDiv(py, s.tile)
}

// isSheetHead reports whether cmd draws the first cell of a sprite sheet,
// which holds the snake head.
func isSheetHead(cmd render.DrawCommand) bool {
	if cmd.Source == nil || cmd.Texture == nil {
		return false
	}
	return cmd.Source.X == 0 && cmd.Source.Y == 0 && cmd.Source.W < cmd.Texture.Width
}

func headRune(angle float64) rune {
	switch int(angle) % 360 {
	case 180:
		return '▲'
	case 90:
		return '◀'
	case 270:
		return '▶'
	default:
		return '▼'
	}
}

func toColor(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorBlack
	}
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

func floorDiv(v, d int) int {
	q := v / d
	if v < 0 && v%d != 0 {
		q--
	}
	return q
}
