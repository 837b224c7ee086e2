package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs/render"
	"github.com/milk9111/snake/ecs/system"
	"github.com/milk9111/snake/platform"
	"github.com/milk9111/snake/prefabs"
)

const (
	cell    = 96
	margin  = 24
	columns = 4
	width   = margin + columns*(cell+margin)
	height  = 2*cell + 4*margin + 16
)

var directions = [columns]common.Direction{common.Up, common.Right, common.Down, common.Left}

// sheetView shows the head and body cells of a snake prefab's sprite sheet
// in every heading, rotated the way the game draws them.
type sheetView struct {
	screen  *platform.Screen
	texture *render.Texture
	head    render.Rect
	body    render.Rect

	tick     int
	perFrame int
	current  int
}

func (v *sheetView) Update() error {
	v.tick++
	if v.tick >= v.perFrame {
		v.tick = 0
		v.current = (v.current + 1) % columns
	}
	return nil
}

func (v *sheetView) Draw(screen *ebiten.Image) {
	v.screen.Target(screen)
	v.screen.Clear(color.RGBA{0x20, 0x20, 0x20, 0xff})

	for i, dir := range directions {
		x := margin + i*(cell+margin)
		head := v.head
		body := v.body
		v.screen.Draw(render.DrawCommand{
			Texture: v.texture,
			Source:  &head,
			Dest:    render.Rect{X: x, Y: margin, W: cell, H: cell},
			Angle:   system.HeadAngle(dir),
		})
		v.screen.Draw(render.DrawCommand{
			Texture: v.texture,
			Source:  &body,
			Dest:    render.Rect{X: x, Y: 2*margin + cell, W: cell, H: cell},
			Angle:   system.BodyAngle(dir),
		})

		label := dir.String()
		if i == v.current {
			label = "> " + label
		}
		platform.DrawLabel(screen, label, float64(x), float64(3*margin+2*cell))
	}
	v.screen.Present()
}

func (v *sheetView) Layout(int, int) (int, int) {
	return width, height
}

func load(prefab string) (*sheetView, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return nil, err
	}
	sprite, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](spec.Components["sprite"])
	if err != nil {
		return nil, fmt.Errorf("%s: sprite: %w", prefab, err)
	}
	skin, err := prefabs.DecodeComponentSpec[prefabs.SnakeSpriteComponentSpec](spec.Components["snake_sprite"])
	if err != nil {
		return nil, fmt.Errorf("%s: snake_sprite: %w", prefab, err)
	}
	if sprite.Image == "" {
		return nil, fmt.Errorf("%s: no sprite image", prefab)
	}

	textures := render.NewTextureCache(platform.Textures{})
	tex, err := textures.Load(sprite.Image)
	if err != nil {
		return nil, err
	}
	return &sheetView{
		screen:  platform.NewScreen(),
		texture: tex,
		head:    render.Rect{X: skin.Head.X, Y: skin.Head.Y, W: skin.Head.W, H: skin.Head.H},
		body:    render.Rect{X: skin.Body.X, Y: skin.Body.Y, W: skin.Body.W, H: skin.Body.H},
	}, nil
}

func main() {
	prefab := flag.String("prefab", "snake.yaml", "snake prefab whose sheet to preview")
	fps := flag.Int("fps", 2, "highlight steps per second")
	flag.Parse()

	v, err := load(*prefab)
	if err != nil {
		log.Fatal(err)
	}
	v.perFrame = 1
	if *fps > 0 {
		v.perFrame = max(60 / *fps, 1)
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("snake sheet preview")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
