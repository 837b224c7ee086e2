package entity

import (
	"fmt"
	"slices"

	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/prefabs"
)

// buildAudioComponent lays the clip list out as parallel slices. Autoplay
// clips start with a pending play request.
func buildAudioComponent(spec prefabs.AudioComponentSpec) (*component.Audio, error) {
	n := len(spec.Clips)
	if n == 0 {
		return nil, nil
	}

	names := make([]string, 0, n)
	files := make([]string, 0, n)
	loop := make([]bool, 0, n)
	play := make([]bool, 0, n)

	for i, clip := range spec.Clips {
		if clip.Name == "" || clip.File == "" {
			return nil, fmt.Errorf("audio clip %d: name and file are required", i)
		}
		if slices.Contains(names, clip.Name) {
			return nil, fmt.Errorf("audio clip %d: duplicate name %q", i, clip.Name)
		}
		names = append(names, clip.Name)
		files = append(files, clip.File)
		loop = append(loop, clip.Loop)
		play = append(play, false)
	}

	for _, name := range spec.Autoplay {
		i := slices.Index(names, name)
		if i < 0 {
			return nil, fmt.Errorf("audio autoplay: unknown clip %q", name)
		}
		play[i] = true
	}

	return &component.Audio{
		Names: names,
		Files: files,
		Loop:  loop,
		Play:  play,
	}, nil
}
