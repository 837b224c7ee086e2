package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/input"
)

// Keys turns tcell key events into game input. Events are collected by a
// background goroutine and handed out by Poll.
type Keys struct {
	screen tcell.Screen
	events chan input.Event
	done   chan struct{}
}

func NewKeys(screen tcell.Screen) *Keys {
	k := &Keys{
		screen: screen,
		events: make(chan input.Event, 64),
		done:   make(chan struct{}),
	}
	go k.run()
	return k
}

func (k *Keys) Poll() []input.Event {
	var out []input.Event
	for {
		select {
		case evt := <-k.events:
			out = append(out, evt)
		default:
			return out
		}
	}
}

// Stop ends the event goroutine. The screen must be finalized afterwards
// so that the pending PollEvent returns.
func (k *Keys) Stop() {
	select {
	case <-k.done:
	default:
		close(k.done)
	}
}

func (k *Keys) run() {
	for {
		ev := k.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if evt, ok := translateKey(ev); ok {
				select {
				case k.events <- evt:
				case <-k.done:
					return
				default:
				}
			}
		case *tcell.EventResize:
			k.screen.Sync()
		}
		select {
		case <-k.done:
			return
		default:
		}
	}
}

func translateKey(ev *tcell.EventKey) (input.Event, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return input.Quit(), true
	case tcell.KeyEscape:
		return input.Pause(), true
	case tcell.KeyUp:
		return input.Turn(common.Up), true
	case tcell.KeyDown:
		return input.Turn(common.Down), true
	case tcell.KeyLeft:
		return input.Turn(common.Left), true
	case tcell.KeyRight:
		return input.Turn(common.Right), true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return input.Quit(), true
		case 'p', 'P', ' ':
			return input.Pause(), true
		case 'w', 'k':
			return input.Turn(common.Up), true
		case 's', 'j':
			return input.Turn(common.Down), true
		case 'a', 'h':
			return input.Turn(common.Left), true
		case 'd', 'l':
			return input.Turn(common.Right), true
		}
	}
	return input.Event{}, false
}
