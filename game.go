package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/snake/platform"
	"github.com/milk9111/snake/prefabs"
	"github.com/milk9111/snake/session"
)

var backgroundColor = color.RGBA{R: 0x10, G: 0x18, B: 0x10, A: 0xff}

// gameOverHoldTicks keeps the final frame up for 1.5s at 60 TPS.
const gameOverHoldTicks = 90

// Game adapts a session to ebiten's Update/Draw/Layout loop.
type Game struct {
	session *session.Session
	screen  *platform.Screen
	sounds  *platform.Sounds
	pauseUI *ebitenui.UI

	watcher    *prefabs.Watcher
	configPath string

	width  int
	height int

	overTicks int
}

func NewGame(spec prefabs.GameSpec, configPath string, watcher *prefabs.Watcher) (*Game, error) {
	sounds := platform.NewSounds()
	sess, err := session.New(session.Options{
		Spec:       spec,
		Decoder:    platform.Textures{},
		Input:      platform.Keyboard{},
		Sounds:     sounds,
		Background: backgroundColor,
	})
	if err != nil {
		_ = sounds.Close()
		return nil, err
	}

	g := &Game{
		session:    sess,
		screen:     platform.NewScreen(),
		sounds:     sounds,
		watcher:    watcher,
		configPath: configPath,
		width:      spec.Screen.Width,
		height:     spec.Screen.Height,
	}
	g.pauseUI = platform.NewPauseUI(g.width, g.height, func() {
		g.session.SetPaused(false)
	}, func() {
		g.session.Quit()
	})
	return g, nil
}

func (g *Game) Update() error {
	g.session.Watch(g.watcher, g.configPath)

	err := g.session.Step()
	if g.session.Paused() {
		g.pauseUI.Update()
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrQuit):
		return ebiten.Termination
	case errors.Is(err, session.ErrGameOver):
		g.overTicks++
		if g.overTicks >= gameOverHoldTicks || ebiten.IsWindowBeingClosed() {
			return ebiten.Termination
		}
		return nil
	default:
		log.Printf("game: %v", err)
		return err
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Target(screen)
	g.session.Draw(g.screen)
	platform.DrawHUD(screen, g.session.Eaten())

	if g.session.Over() {
		platform.DrawBanner(screen, fmt.Sprintf("GAME OVER - eaten %d", g.session.Eaten()))
		return
	}

	if g.session.Paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) Close() {
	g.session.Close()
	_ = g.sounds.Close()
}
