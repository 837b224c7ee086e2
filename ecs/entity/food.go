package entity

import (
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/render"
)

func NewFood(w *ecs.World, prefab string, textures *render.TextureCache) (ecs.Entity, error) {
	return BuildEntity(w, prefab, textures)
}

func NewObstacle(w *ecs.World, prefab string, textures *render.TextureCache) (ecs.Entity, error) {
	return BuildEntity(w, prefab, textures)
}
