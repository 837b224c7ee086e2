package terminal

import (
	"image"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/snake/assets"
	"github.com/milk9111/snake/ecs/render"
)

// Glyph is the terminal stand-in for a texture: one rune drawn in the
// image's average color.
type Glyph struct {
	Rune  rune
	Color tcell.Color
}

// DefaultRunes maps the shipped textures to runes. Unknown textures draw
// as a solid block.
var DefaultRunes = map[string]rune{
	"background.png": ' ',
	"snake.png":      '█',
	"food.png":       '●',
	"rock.png":       '▓',
}

// Glyphs decodes textures into Glyph handles.
type Glyphs struct {
	Runes map[string]rune
}

func (g Glyphs) Decode(path string) (*render.Texture, error) {
	img, err := assets.LoadImage(path)
	if err != nil {
		return nil, err
	}
	runes := g.Runes
	if runes == nil {
		runes = DefaultRunes
	}
	r, ok := runes[filepath.Base(path)]
	if !ok {
		r = '█'
	}
	b := img.Bounds()
	return &render.Texture{
		Path:   path,
		Width:  b.Dx(),
		Height: b.Dy(),
		Handle: Glyph{Rune: r, Color: averageColor(img)},
	}, nil
}

// averageColor blends the opaque pixels of img.
func averageColor(img image.Image) tcell.Color {
	var r, g, b, n uint64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			if pa < 0x8000 {
				continue
			}
			r += uint64(pr >> 8)
			g += uint64(pg >> 8)
			b += uint64(pb >> 8)
			n++
		}
	}
	if n == 0 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(r/n), int32(g/n), int32(b/n))
}
