package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/snake/ecs/system"
	"github.com/milk9111/snake/prefabs"
	"github.com/milk9111/snake/session"
	"github.com/milk9111/snake/terminal"
)

func main() {
	configPath := flag.String("config", "", "game spec yaml (defaults to the embedded prefabs/game.yaml)")
	seed := flag.Uint64("seed", 0, "placement seed; 0 picks one from the clock")
	watch := flag.Bool("watch", false, "hot reload prefabs/game.yaml and pace scripts")
	logPath := flag.String("log", "", "write log output to this file instead of discarding it")
	volume := flag.Float64("volume", 1, "master volume, 0 mutes")
	flag.Parse()

	summary, err := run(*configPath, *seed, *watch, *logPath, *volume)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	if summary != "" {
		fmt.Println(summary)
	}
}

// run owns the terminal; it returns once the screen has been restored.
func run(configPath string, seed uint64, watch bool, logPath string, volume float64) (string, error) {
	// tcell owns the terminal, so log output goes to a file or nowhere.
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return "", err
		}
		defer f.Close()
		log.SetOutput(f)
	}

	spec, err := prefabs.LoadGameSpec(configPath)
	if err != nil {
		return "", err
	}
	if seed != 0 {
		spec.Seed = seed
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return "", err
	}
	if err := screen.Init(); err != nil {
		return "", err
	}
	defer screen.Fini()

	keys := terminal.NewKeys(screen)
	defer keys.Stop()

	var sounds system.SoundPlayer
	beepSounds, err := terminal.NewSounds(volume)
	if err != nil {
		log.Printf("audio: %v; running silent", err)
	} else {
		defer beepSounds.Close()
		sounds = beepSounds
	}

	sess, err := session.New(session.Options{
		Spec:    spec,
		Decoder: terminal.Glyphs{},
		Input:   keys,
		Sounds:  sounds,
	})
	if err != nil {
		return "", err
	}
	defer sess.Close()
	log.Printf("snake-term: seed %d", sess.Seed())

	opts := terminal.RunOptions{ConfigPath: configPath, GameOverHold: 1500 * time.Millisecond}
	if watch {
		dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
		if configPath != "" {
			dirs = append(dirs, filepath.Dir(configPath))
		}
		if w, err := prefabs.NewWatcher(dirs...); err != nil {
			log.Printf("watch: %v; hot reload disabled", err)
		} else {
			defer w.Close()
			opts.Watcher = w
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	surface := terminal.NewScreen(screen, spec.Screen.Tile, spec.Bounds().Rows())
	err = terminal.Run(ctx, sess, surface, opts)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	var over *session.GameOverError
	if errors.As(sess.Err(), &over) {
		return fmt.Sprintf("game over: %s, eaten %d", over.Cause, over.Eaten), err
	}
	return fmt.Sprintf("quit, eaten %d", sess.Eaten()), err
}
