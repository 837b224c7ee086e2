package platform

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/snake/assets"
	"github.com/milk9111/snake/ecs/render"
)

// Textures decodes embedded images into GPU-backed ebiten images.
type Textures struct{}

func (Textures) Decode(path string) (*render.Texture, error) {
	img, err := assets.LoadImage(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &render.Texture{
		Path:   path,
		Width:  b.Dx(),
		Height: b.Dy(),
		Handle: ebiten.NewImageFromImage(img),
	}, nil
}

func (Textures) Release(t *render.Texture) {
	if img, ok := t.Handle.(*ebiten.Image); ok && img != nil {
		img.Deallocate()
	}
}

func imageOf(t *render.Texture) (*ebiten.Image, error) {
	if t == nil {
		return nil, fmt.Errorf("platform: nil texture")
	}
	img, ok := t.Handle.(*ebiten.Image)
	if !ok || img == nil {
		return nil, fmt.Errorf("platform: texture %q has no ebiten image", t.Path)
	}
	return img, nil
}
