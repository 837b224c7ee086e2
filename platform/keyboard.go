package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/input"
)

var directionKeys = []struct {
	keys []ebiten.Key
	pad  ebiten.StandardGamepadButton
	dir  common.Direction
}{
	{keys: []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, pad: ebiten.StandardGamepadButtonLeftTop, dir: common.Up},
	{keys: []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, pad: ebiten.StandardGamepadButtonLeftBottom, dir: common.Down},
	{keys: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, pad: ebiten.StandardGamepadButtonLeftLeft, dir: common.Left},
	{keys: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, pad: ebiten.StandardGamepadButtonLeftRight, dir: common.Right},
}

// Keyboard reports key presses from the current ebiten tick. The first
// connected standard gamepad's d-pad and start button work too.
type Keyboard struct{}

func (Keyboard) Poll() []input.Event {
	var events []input.Event

	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		events = append(events, input.Quit())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		events = append(events, input.Pause())
	}

	ids := ebiten.AppendGamepadIDs(nil)
	for _, d := range directionKeys {
		pressed := false
		for _, k := range d.keys {
			if inpututil.IsKeyJustPressed(k) {
				pressed = true
			}
		}
		if len(ids) > 0 && inpututil.IsStandardGamepadButtonJustPressed(ids[0], d.pad) {
			pressed = true
		}
		if pressed {
			events = append(events, input.Turn(d.dir))
		}
	}
	if len(ids) > 0 && inpututil.IsStandardGamepadButtonJustPressed(ids[0], ebiten.StandardGamepadButtonCenterRight) {
		events = append(events, input.Pause())
	}

	return events
}
