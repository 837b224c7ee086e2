package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type RectSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ParallaxComponentSpec struct {
	SpeedX float64 `yaml:"speed_x"`
	SpeedY float64 `yaml:"speed_y"`
}

type SpriteComponentSpec struct {
	Image     string   `yaml:"image"`
	UseSource bool     `yaml:"use_source"`
	Source    RectSpec `yaml:"source"`
	Width     int      `yaml:"width"`
	Height    int      `yaml:"height"`
}

type SnakeSpriteComponentSpec struct {
	Head RectSpec `yaml:"head"`
	Body RectSpec `yaml:"body"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type SnakeComponentSpec struct {
	X         int     `yaml:"x"`
	Y         int     `yaml:"y"`
	Direction string  `yaml:"direction"`
	MoveDelay float64 `yaml:"move_delay"`
}

type FoodComponentSpec struct {
	X             int  `yaml:"x"`
	Y             int  `yaml:"y"`
	AvoidOccupied bool `yaml:"avoid_occupied"`
}

type ObstacleComponentSpec struct {
	Period float64 `yaml:"period"`
}

type PaceComponentSpec struct {
	Script string `yaml:"script"`
}

type AudioClipSpec struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	Loop bool   `yaml:"loop"`
}

type AudioComponentSpec struct {
	Clips    []AudioClipSpec `yaml:"clips"`
	Autoplay []string        `yaml:"autoplay"`
}
