package component

import "github.com/milk9111/snake/ecs/render"

// Sprite references a cached texture. Width and Height set the destination
// size; zero means the texture's own size.
type Sprite struct {
	Texture   *render.Texture
	Source    render.Rect
	UseSource bool
	Width     int
	Height    int
}

var SpriteComponent = NewComponent[Sprite]()

// SnakeSprite selects the head and body cells of a shared sprite sheet.
type SnakeSprite struct {
	Head render.Rect
	Body render.Rect
}

var SnakeSpriteComponent = NewComponent[SnakeSprite]()
