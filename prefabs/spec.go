package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/snake/common"
	"gopkg.in/yaml.v3"
)

const GameSpecFile = "game.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ScreenSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Tile   int `yaml:"tile"`
}

type ParallaxSpec struct {
	SpeedX float64 `yaml:"speed_x"`
	SpeedY float64 `yaml:"speed_y"`
}

// StartSpec overrides the snake prefab's starting tile and heading.
type StartSpec struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Direction string `yaml:"direction"`
}

// EntitiesSpec names the prefab used for each session entity.
type EntitiesSpec struct {
	Session    string `yaml:"session"`
	Background string `yaml:"background"`
	Snake      string `yaml:"snake"`
	Food       string `yaml:"food"`
	Obstacle   string `yaml:"obstacle"`
}

// GameSpec holds the session tunables. Everything except Screen, Seed and
// Entities can be re-applied to a running session.
type GameSpec struct {
	Screen         ScreenSpec   `yaml:"screen"`
	Seed           uint64       `yaml:"seed"`
	MoveDelay      float64      `yaml:"move_delay"`
	ObstaclePeriod float64      `yaml:"obstacle_period"`
	AvoidOccupied  bool         `yaml:"avoid_occupied"`
	PaceScript     string       `yaml:"pace_script"`
	Parallax       ParallaxSpec `yaml:"parallax"`
	Start          *StartSpec   `yaml:"start,omitempty"`
	Entities       EntitiesSpec `yaml:"entities"`
}

// DefaultGameSpec mirrors the embedded game.yaml.
func DefaultGameSpec() GameSpec {
	return GameSpec{
		Screen:         ScreenSpec{Width: common.ScreenWidth, Height: common.ScreenHeight, Tile: common.TileSize},
		MoveDelay:      0.15,
		ObstaclePeriod: 15,
		Parallax:       ParallaxSpec{SpeedX: 50},
		Entities: EntitiesSpec{
			Session:    "session.yaml",
			Background: "background.yaml",
			Snake:      "snake.yaml",
			Food:       "food.yaml",
			Obstacle:   "obstacle.yaml",
		},
	}
}

// LoadGameSpec reads path from disk, or the embedded game.yaml when path is
// empty. Missing fields keep their defaults.
func LoadGameSpec(path string) (GameSpec, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = Load(GameSpecFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return GameSpec{}, fmt.Errorf("prefabs: load game spec %q: %w", path, err)
	}
	return ParseGameSpec(data)
}

// ErrEmptyGameSpec reports a game spec with no content, usually a file
// caught between truncate and write.
var ErrEmptyGameSpec = errors.New("prefabs: game spec is empty")

func ParseGameSpec(data []byte) (GameSpec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return GameSpec{}, ErrEmptyGameSpec
	}
	spec := DefaultGameSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return GameSpec{}, fmt.Errorf("prefabs: unmarshal game spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return GameSpec{}, err
	}
	return spec, nil
}

func (s GameSpec) Bounds() common.Bounds {
	return common.Bounds{Width: s.Screen.Width, Height: s.Screen.Height, Tile: s.Screen.Tile}
}

func (s GameSpec) Validate() error {
	if err := s.Bounds().Validate(); err != nil {
		return fmt.Errorf("prefabs: game spec: %w", err)
	}
	if s.MoveDelay <= 0 {
		return fmt.Errorf("prefabs: game spec: move_delay must be positive, got %v", s.MoveDelay)
	}
	if s.ObstaclePeriod <= 0 {
		return fmt.Errorf("prefabs: game spec: obstacle_period must be positive, got %v", s.ObstaclePeriod)
	}
	if s.Start != nil {
		if _, err := common.ParseDirection(s.Start.Direction); err != nil {
			return fmt.Errorf("prefabs: game spec: start: %w", err)
		}
		b := s.Bounds()
		if s.Start.X < 0 || s.Start.X >= b.Width || s.Start.Y < 0 || s.Start.Y >= b.Height {
			return fmt.Errorf("prefabs: game spec: start (%d,%d) outside %dx%d field", s.Start.X, s.Start.Y, b.Width, b.Height)
		}
	}
	return nil
}
