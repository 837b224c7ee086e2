package terminal

import (
	"context"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs/render"
	"github.com/milk9111/snake/input"
	"github.com/milk9111/snake/prefabs"
	"github.com/milk9111/snake/session"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want input.Event
		ok   bool
	}{
		{name: "arrow up", key: tcell.KeyUp, want: input.Turn(common.Up), ok: true},
		{name: "arrow left", key: tcell.KeyLeft, want: input.Turn(common.Left), ok: true},
		{name: "wasd d", key: tcell.KeyRune, r: 'd', want: input.Turn(common.Right), ok: true},
		{name: "vi j", key: tcell.KeyRune, r: 'j', want: input.Turn(common.Down), ok: true},
		{name: "pause p", key: tcell.KeyRune, r: 'p', want: input.Pause(), ok: true},
		{name: "pause space", key: tcell.KeyRune, r: ' ', want: input.Pause(), ok: true},
		{name: "escape", key: tcell.KeyEscape, want: input.Pause(), ok: true},
		{name: "quit q", key: tcell.KeyRune, r: 'Q', want: input.Quit(), ok: true},
		{name: "ctrl c", key: tcell.KeyCtrlC, want: input.Quit(), ok: true},
		{name: "unbound", key: tcell.KeyRune, r: 'x'},
		{name: "function key", key: tcell.KeyF1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateKey(tcell.NewEventKey(tt.key, tt.r, tcell.ModNone))
			if ok != tt.ok || got != tt.want {
				t.Fatalf("translateKey = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHeadRune(t *testing.T) {
	tests := map[float64]rune{0: '▼', 90: '◀', 180: '▲', 270: '▶'}
	for angle, want := range tests {
		if got := headRune(angle); got != want {
			t.Fatalf("headRune(%v) = %q, want %q", angle, got, want)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ v, d, want int }{
		{v: 64, d: 32, want: 2},
		{v: 63, d: 32, want: 1},
		{v: -1, d: 32, want: -1},
		{v: -32, d: 32, want: -1},
		{v: -33, d: 32, want: -2},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.v, tt.d); got != tt.want {
			t.Fatalf("floorDiv(%d, %d) = %d, want %d", tt.v, tt.d, got, tt.want)
		}
	}
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	sim.SetSize(40, 16)
	t.Cleanup(sim.Fini)
	return sim
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestScreenDrawsTiles(t *testing.T) {
	sim := newSimScreen(t)
	scr := NewScreen(sim, 32, 15)
	sheet := &render.Texture{Width: 16, Height: 8, Handle: Glyph{Rune: '█', Color: tcell.ColorGreen}}
	apple := &render.Texture{Width: 32, Height: 32, Handle: Glyph{Rune: '●', Color: tcell.ColorRed}}

	scr.Clear(color.Black)
	scr.Draw(render.DrawCommand{
		Texture: sheet,
		Source:  &render.Rect{W: 8, H: 8},
		Dest:    render.Rect{X: 64, Y: 32, W: 32, H: 32},
		Angle:   270,
	})
	scr.Draw(render.DrawCommand{
		Texture: sheet,
		Source:  &render.Rect{X: 8, W: 8, H: 8},
		Dest:    render.Rect{X: 32, Y: 32, W: 32, H: 32},
		Angle:   90,
	})
	scr.Draw(render.DrawCommand{Texture: apple, Dest: render.Rect{X: 160, Y: 160, W: 32, H: 32}})
	scr.Draw(render.DrawCommand{Texture: &render.Texture{Handle: "not a glyph"}, Dest: render.Rect{W: 32, H: 32}})
	scr.Status("Eaten: 3")
	scr.Present()

	checks := []struct {
		x, y int
		want rune
	}{
		{x: 4, y: 1, want: '▶'},
		{x: 5, y: 1, want: ' '},
		{x: 2, y: 1, want: '█'},
		{x: 3, y: 1, want: '█'},
		{x: 10, y: 5, want: '●'},
		{x: 0, y: 0, want: ' '},
	}
	for _, c := range checks {
		if got := runeAt(sim, c.x, c.y); got != c.want {
			t.Fatalf("cell (%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}

	var status strings.Builder
	for x := 0; x < 8; x++ {
		status.WriteRune(runeAt(sim, x, 15))
	}
	if status.String() != "Eaten: 3" {
		t.Fatalf("status row = %q", status.String())
	}
}

func TestGlyphsDecodeShippedTextures(t *testing.T) {
	tex, err := Glyphs{}.Decode("snake.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	g, ok := tex.Handle.(Glyph)
	if !ok || g.Rune != '█' {
		t.Fatalf("handle = %#v", tex.Handle)
	}
	if tex.Width != 16 || tex.Height != 8 {
		t.Fatalf("size = %dx%d", tex.Width, tex.Height)
	}

	if _, err := (Glyphs{}).Decode("missing.png"); err == nil {
		t.Fatalf("expected an error for a missing texture")
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	sim := newSimScreen(t)
	spec := prefabs.DefaultGameSpec()
	spec.Seed = 1
	sess, err := session.New(session.Options{
		Spec:    spec,
		Decoder: Glyphs{},
		Input:   input.NewScript(nil, nil, []input.Event{input.Quit()}),
	})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Run(ctx, sess, NewScreen(sim, spec.Screen.Tile, spec.Bounds().Rows()), RunOptions{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sess.Err() != session.ErrQuit {
		t.Fatalf("session err = %v", sess.Err())
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	sim := newSimScreen(t)
	spec := prefabs.DefaultGameSpec()
	spec.Seed = 1
	sess, err := session.New(session.Options{Spec: spec, Decoder: Glyphs{}})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	defer sess.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, sess, NewScreen(sim, spec.Screen.Tile, spec.Bounds().Rows()), RunOptions{}); err != context.Canceled {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
}
