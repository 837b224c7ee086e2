package main

import (
	"errors"
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/snake/prefabs"
	"github.com/milk9111/snake/session"
)

func main() {
	configPath := flag.String("config", "", "game spec yaml (defaults to the embedded prefabs/game.yaml)")
	seed := flag.Uint64("seed", 0, "placement seed; 0 picks one from the clock")
	watch := flag.Bool("watch", false, "hot reload prefabs/game.yaml and pace scripts")
	scale := flag.Float64("scale", 1, "window scale factor")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		spec.Seed = *seed
	}

	var watcher *prefabs.Watcher
	if *watch {
		dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
		if *configPath != "" {
			if dir := filepath.Dir(*configPath); dir != filepath.Clean(prefabs.Dir) {
				dirs = append(dirs, dir)
			}
		}
		watcher, err = prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("watch: %v; hot reload disabled", err)
		} else {
			defer watcher.Close()
		}
	}

	game, err := NewGame(spec, *configPath, watcher)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()
	log.Printf("snake: seed %d", game.session.Seed())

	if *scale <= 0 {
		*scale = 1
	}
	ebiten.SetWindowSize(int(float64(spec.Screen.Width)**scale), int(float64(spec.Screen.Height)**scale))
	ebiten.SetWindowTitle("snake")
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}

	if over := new(session.GameOverError); errors.As(game.session.Err(), &over) {
		log.Printf("snake: game over (%s), eaten %d", over.Cause, over.Eaten)
	}
}
