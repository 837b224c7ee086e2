package platform

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/snake/ecs/render"
)

// Screen draws render commands onto an ebiten image, usually the frame's
// screen. Present is a no-op; ebiten presents after Draw returns.
type Screen struct {
	target *ebiten.Image
	warned map[string]bool
}

func NewScreen() *Screen {
	return &Screen{warned: make(map[string]bool)}
}

// Target sets the image drawn to by the following calls.
func (s *Screen) Target(img *ebiten.Image) {
	s.target = img
}

func (s *Screen) Clear(c color.Color) {
	if s.target == nil {
		return
	}
	s.target.Fill(c)
}

func (s *Screen) Draw(cmd render.DrawCommand) {
	if s.target == nil {
		return
	}
	img, err := imageOf(cmd.Texture)
	if err != nil {
		if key := err.Error(); !s.warned[key] {
			s.warned[key] = true
			log.Printf("%v", err)
		}
		return
	}

	src := img
	if cmd.Source != nil && !cmd.Source.Empty() {
		r := image.Rect(cmd.Source.X, cmd.Source.Y, cmd.Source.X+cmd.Source.W, cmd.Source.Y+cmd.Source.H)
		src = img.SubImage(r).(*ebiten.Image)
	}
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	if sw == 0 || sh == 0 || cmd.Dest.W == 0 || cmd.Dest.H == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(sw)/2, -float64(sh)/2)
	switch cmd.Flip {
	case render.FlipHorizontal:
		op.GeoM.Scale(-1, 1)
	case render.FlipVertical:
		op.GeoM.Scale(1, -1)
	}
	op.GeoM.Scale(float64(cmd.Dest.W)/float64(sw), float64(cmd.Dest.H)/float64(sh))
	if cmd.Angle != 0 {
		op.GeoM.Rotate(cmd.Angle * math.Pi / 180)
	}
	op.GeoM.Translate(float64(cmd.Dest.X)+float64(cmd.Dest.W)/2, float64(cmd.Dest.Y)+float64(cmd.Dest.H)/2)
	op.Filter = ebiten.FilterNearest

	s.target.DrawImage(src, op)
}

func (s *Screen) Present() {}
