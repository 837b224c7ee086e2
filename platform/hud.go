package platform

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// DrawHUD prints the eaten counter in the top-left corner, with a drop
// shadow so it reads over the background.
func DrawHUD(screen *ebiten.Image, eaten int) {
	DrawLabel(screen, fmt.Sprintf("Eaten: %d", eaten), 8, 6)
}

// DrawBanner prints msg centred on the screen.
func DrawBanner(screen *ebiten.Image, msg string) {
	w, h := ebtext.Measure(msg, hudFace, 0)
	b := screen.Bounds()
	DrawLabel(screen, msg, (float64(b.Dx())-w)/2, (float64(b.Dy())-h)/2)
}

func DrawLabel(screen *ebiten.Image, msg string, x, y float64) {
	shadow := &ebtext.DrawOptions{}
	shadow.GeoM.Translate(x+1, y+1)
	shadow.ColorScale.ScaleWithColor(color.Black)
	ebtext.Draw(screen, msg, hudFace, shadow)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, msg, hudFace, op)
}
