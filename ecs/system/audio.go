package system

import (
	"log"

	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

const (
	SoundMusic = "music"
	SoundEat   = "eat"
	SoundCrash = "crash"
)

// SoundPlayer is the fire-and-forget audio backend.
type SoundPlayer interface {
	PlayOnce(path string) error
	PlayLooping(path string) error
}

// AudioSystem turns gameplay events into clip requests and plays every
// requested clip. Playback failures are logged and never stop the game.
type AudioSystem struct {
	player SoundPlayer
}

func NewAudioSystem(player SoundPlayer) *AudioSystem {
	return &AudioSystem{player: player}
}

func (a *AudioSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	a.request(w, ecs.EventFoodEaten, SoundEat)
	a.request(w, ecs.EventSnakeCrashed, SoundCrash)

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Files), len(audioComp.Loop))
		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false
			if a.player == nil {
				continue
			}

			var err error
			if audioComp.Loop[i] {
				err = a.player.PlayLooping(audioComp.Files[i])
			} else {
				err = a.player.PlayOnce(audioComp.Files[i])
			}
			if err != nil {
				log.Printf("audio: play %q (%s): %v", audioComp.Names[i], audioComp.Files[i], err)
			}
		}
	})
}

// request flags clip on every audio source once per frame that saw kind.
func (a *AudioSystem) request(w *ecs.World, kind ecs.EventKind, clip string) {
	if len(w.Events().Of(kind)) == 0 {
		return
	}
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		audioComp.Request(clip)
	})
}
