package session

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/ecs/render"
	"github.com/milk9111/snake/input"
	"github.com/milk9111/snake/prefabs"
)

type fakeDecoder struct {
	decoded  []string
	released []string
	fail     map[string]error
}

func (d *fakeDecoder) Decode(path string) (*render.Texture, error) {
	if err, ok := d.fail[path]; ok {
		return nil, err
	}
	d.decoded = append(d.decoded, path)
	return &render.Texture{Width: 32, Height: 32, Handle: path}, nil
}

func (d *fakeDecoder) Release(t *render.Texture) {
	d.released = append(d.released, t.Path)
}

// testSpec starts the snake on the top row, which obstacles never reach.
func testSpec() prefabs.GameSpec {
	spec := prefabs.DefaultGameSpec()
	spec.Seed = 42
	spec.Start = &prefabs.StartSpec{X: 0, Y: 0, Direction: "right"}
	return spec
}

func newTestSession(t *testing.T, spec prefabs.GameSpec, src input.Source) (*Session, *ManualClock) {
	t.Helper()
	clock := NewManualClock(time.Unix(1000, 0))
	s, err := New(Options{
		Spec:    spec,
		Decoder: &fakeDecoder{},
		Input:   src,
		Clock:   clock,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s, clock
}

func mustStep(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestNewBuildsWorld(t *testing.T) {
	s, _ := newTestSession(t, testSpec(), nil)

	if s.Seed() != 42 {
		t.Fatalf("seed = %d", s.Seed())
	}
	if s.Bounds() != common.DefaultBounds() {
		t.Fatalf("bounds = %+v", s.Bounds())
	}
	snake := s.Snake()
	if snake == nil || snake.Len() != 1 || snake.Head() != (common.Position{}) || snake.Direction != common.Right {
		t.Fatalf("snake = %+v", snake)
	}
	if snake.MoveDelay != 0.15 {
		t.Fatalf("move delay = %v", snake.MoveDelay)
	}
	if _, ok := ecs.First(s.World(), component.FoodComponent.Kind()); !ok {
		t.Fatalf("no food entity")
	}
	if _, ok := ecs.First(s.World(), component.ObstacleComponent.Kind()); !ok {
		t.Fatalf("no obstacle entity")
	}
	if s.Eaten() != 0 || s.Err() != nil || s.Paused() {
		t.Fatalf("fresh session should be running")
	}
}

func TestNewUsesPrefabStartWithoutOverride(t *testing.T) {
	spec := testSpec()
	spec.Start = nil
	s, _ := newTestSession(t, spec, nil)
	if got := s.Snake().Head(); got != (common.Position{X: 320, Y: 224}) {
		t.Fatalf("head = %v", got)
	}
}

func TestNewPlacesPrefabsInsideField(t *testing.T) {
	inField := func(t *testing.T, b common.Bounds, what string, p common.Position) {
		t.Helper()
		if p.X < 0 || p.X >= b.Width || p.Y < 0 || p.Y >= b.Height {
			t.Fatalf("%s %v outside [0,%d)x[0,%d)", what, p, b.Width, b.Height)
		}
		if p != b.Snap(p) {
			t.Fatalf("%s %v not tile aligned", what, p)
		}
	}
	foodAt := func(s *Session) common.Position {
		e, _ := ecs.First(s.World(), component.FoodComponent.Kind())
		f, _ := ecs.Get(s.World(), e, component.FoodComponent.Kind())
		return f.Position
	}

	t.Run("small field", func(t *testing.T) {
		spec := testSpec()
		spec.Start = nil
		spec.Screen.Width = 256
		spec.Screen.Height = 224
		s, _ := newTestSession(t, spec, nil)
		b := spec.Bounds()
		inField(t, b, "snake head", s.Snake().Head())
		inField(t, b, "food", foodAt(s))
	})

	t.Run("off grid", func(t *testing.T) {
		dir := t.TempDir()
		old := prefabs.Dir
		prefabs.Dir = dir
		t.Cleanup(func() { prefabs.Dir = old })
		body := "name: snake\ncomponents:\n  snake:\n    x: 45\n    y: 70\n    direction: up\n  sprite:\n    image: snake.png\n"
		if err := os.WriteFile(filepath.Join(dir, "snake.yaml"), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}

		spec := testSpec()
		spec.Start = nil
		s, _ := newTestSession(t, spec, nil)
		if got := s.Snake().Head(); got != (common.Position{X: 32, Y: 64}) {
			t.Fatalf("head = %v, want (32,64)", got)
		}
		inField(t, spec.Bounds(), "food", foodAt(s))
	})
}

func TestNewSeedsFromTimeWhenZero(t *testing.T) {
	spec := testSpec()
	spec.Seed = 0
	s, _ := newTestSession(t, spec, nil)
	if s.Seed() == 0 {
		t.Fatalf("zero seed should be replaced")
	}
}

func TestNewErrors(t *testing.T) {
	boom := errors.New("decode failed")

	t.Run("invalid spec", func(t *testing.T) {
		spec := testSpec()
		spec.MoveDelay = 0
		if _, err := New(Options{Spec: spec, Decoder: &fakeDecoder{}}); err == nil {
			t.Fatalf("expected validation error")
		}
	})

	t.Run("missing texture", func(t *testing.T) {
		dec := &fakeDecoder{fail: map[string]error{"food.png": boom}}
		_, err := New(Options{Spec: testSpec(), Decoder: dec})
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want %v", err, boom)
		}
		slices.Sort(dec.decoded)
		slices.Sort(dec.released)
		if !slices.Equal(dec.decoded, dec.released) {
			t.Fatalf("loaded %v but released %v", dec.decoded, dec.released)
		}
	})

	t.Run("missing prefab", func(t *testing.T) {
		spec := testSpec()
		spec.Entities.Food = "nope.yaml"
		if _, err := New(Options{Spec: spec, Decoder: &fakeDecoder{}}); err == nil {
			t.Fatalf("expected missing prefab error")
		}
	})
}

func TestStepMovesAfterDelay(t *testing.T) {
	s, clock := newTestSession(t, testSpec(), nil)

	mustStep(t, s)
	clock.AdvanceSeconds(0.1)
	mustStep(t, s)
	if got := s.Snake().Head(); got != (common.Position{}) {
		t.Fatalf("moved early to %v", got)
	}

	clock.AdvanceSeconds(0.05)
	mustStep(t, s)
	if got := s.Snake().Head(); got != (common.Position{X: 32, Y: 0}) {
		t.Fatalf("head = %v, want (32,0)", got)
	}
}

func TestStepSteers(t *testing.T) {
	src := input.NewScript(
		nil,
		[]input.Event{input.Turn(common.Left)},
		[]input.Event{input.Turn(common.Down)},
	)
	s, clock := newTestSession(t, testSpec(), src)

	mustStep(t, s)
	clock.AdvanceSeconds(0.15)
	mustStep(t, s)
	if s.Snake().Direction != common.Right {
		t.Fatalf("reverse turn should be ignored, heading %v", s.Snake().Direction)
	}
	clock.AdvanceSeconds(0.15)
	mustStep(t, s)
	if got := s.Snake().Head(); got != (common.Position{X: 32, Y: 32}) {
		t.Fatalf("head = %v, want (32,32)", got)
	}
}

func TestPauseFreezesAndResumeDropsElapsed(t *testing.T) {
	src := input.NewScript(
		nil,
		[]input.Event{input.Pause()},
		[]input.Event{input.Turn(common.Down)},
		[]input.Event{input.Pause()},
	)
	s, clock := newTestSession(t, testSpec(), src)

	mustStep(t, s)
	clock.AdvanceSeconds(1)
	mustStep(t, s)
	if !s.Paused() {
		t.Fatalf("expected paused")
	}
	clock.AdvanceSeconds(10)
	mustStep(t, s)
	if s.Snake().Direction != common.Right {
		t.Fatalf("input must be ignored while paused")
	}

	clock.AdvanceSeconds(10)
	mustStep(t, s)
	if s.Paused() {
		t.Fatalf("expected resumed")
	}
	snake := s.Snake()
	if snake.Head() != (common.Position{}) || snake.MoveTimer != 0 {
		t.Fatalf("paused time leaked into the simulation: head %v timer %v", snake.Head(), snake.MoveTimer)
	}

	clock.AdvanceSeconds(0.15)
	mustStep(t, s)
	if got := s.Snake().Head(); got != (common.Position{X: 32, Y: 0}) {
		t.Fatalf("head = %v, want (32,0)", got)
	}
}

func TestQuitIsSticky(t *testing.T) {
	polls := 0
	src := input.SourceFunc(func() []input.Event {
		polls++
		return []input.Event{input.Quit()}
	})
	s, clock := newTestSession(t, testSpec(), src)

	if err := s.Step(); !errors.Is(err, ErrQuit) {
		t.Fatalf("err = %v, want ErrQuit", err)
	}
	clock.AdvanceSeconds(1)
	if err := s.Step(); !errors.Is(err, ErrQuit) {
		t.Fatalf("second Step err = %v", err)
	}
	if s.Over() {
		t.Fatalf("quit is not a game over")
	}
	if s.Snake().Head() != (common.Position{}) {
		t.Fatalf("snake moved after quit")
	}
	if polls != 1 {
		t.Fatalf("input polled %d times after quit, want 1", polls)
	}
}

func TestGameOverIsAbsorbing(t *testing.T) {
	s, clock := newTestSession(t, testSpec(), nil)
	snake := s.Snake()
	// Heading down from (0,0) lands on the tail-side segment at (0,32).
	snake.Segments = []common.Position{{X: 0, Y: 0}, {X: 32, Y: 0}, {X: 32, Y: 32}, {X: 0, Y: 32}, {X: 0, Y: 64}}
	snake.Directions = []common.Direction{common.Down, common.Left, common.Up, common.Right, common.Up}
	snake.Direction = common.Down

	mustStep(t, s)
	clock.AdvanceSeconds(0.15)
	err := s.Step()
	var over *GameOverError
	if !errors.As(err, &over) {
		t.Fatalf("err = %v, want *GameOverError", err)
	}
	if over.Cause != component.CauseSelfCollision || !errors.Is(err, ErrGameOver) {
		t.Fatalf("game over = %+v", over)
	}
	if !s.Over() {
		t.Fatalf("Over should report true")
	}

	head := s.Snake().Head()
	clock.AdvanceSeconds(1)
	if again := s.Step(); again != err {
		t.Fatalf("Step after game over = %v, want %v", again, err)
	}
	if s.Snake().Head() != head {
		t.Fatalf("snake moved after game over")
	}
}

func TestDrawPresentsFrame(t *testing.T) {
	s, _ := newTestSession(t, testSpec(), nil)
	rec := &render.Recorder{}

	s.Draw(rec)

	if rec.Presented != 1 || len(rec.Clears) != 1 {
		t.Fatalf("presented=%d clears=%d", rec.Presented, len(rec.Clears))
	}
	n := len(rec.Commands)
	if n < 2 {
		t.Fatalf("got %d commands", n)
	}
	if got := rec.Commands[n-2].Dest; got != (render.Rect{X: 0, Y: 0, W: 32, H: 32}) {
		t.Fatalf("snake head dest = %v", got)
	}
	if got := rec.Commands[n-1].Dest; got != (render.Rect{X: 160, Y: 160, W: 32, H: 32}) {
		t.Fatalf("food dest = %v", got)
	}
}

func TestApplyUpdatesTunables(t *testing.T) {
	s, _ := newTestSession(t, testSpec(), nil)
	w := s.World()

	next := testSpec()
	next.MoveDelay = 0.3
	next.ObstaclePeriod = 5
	next.AvoidOccupied = true
	next.Parallax = prefabs.ParallaxSpec{SpeedX: 10, SpeedY: 20}
	next.PaceScript = "pace.tengo"
	next.Screen.Width = 320
	next.Seed = 7
	s.Apply(next)

	if s.Snake().MoveDelay != 0.3 {
		t.Fatalf("move delay = %v", s.Snake().MoveDelay)
	}
	oe, _ := ecs.First(w, component.ObstacleComponent.Kind())
	if o, _ := ecs.Get(w, oe, component.ObstacleComponent.Kind()); o.Period != 5 {
		t.Fatalf("obstacle period = %v", o.Period)
	}
	fe, _ := ecs.First(w, component.FoodComponent.Kind())
	if f, _ := ecs.Get(w, fe, component.FoodComponent.Kind()); !f.AvoidOccupied {
		t.Fatalf("avoid_occupied not applied")
	}
	pe, _ := ecs.First(w, component.ParallaxComponent.Kind())
	if p, _ := ecs.Get(w, pe, component.ParallaxComponent.Kind()); p.SpeedX != 10 || p.SpeedY != 20 {
		t.Fatalf("parallax = %+v", p)
	}
	pace, ok := ecs.Get(w, s.snake, component.PaceComponent.Kind())
	if !ok || pace.Script != "pace.tengo" || pace.BaseDelay != 0.3 {
		t.Fatalf("pace = %+v, %v", pace, ok)
	}

	got := s.Spec()
	if got.Screen.Width != 640 || got.Seed != 42 {
		t.Fatalf("restart-only fields changed: %+v", got)
	}
	if got.MoveDelay != 0.3 || got.PaceScript != "pace.tengo" {
		t.Fatalf("spec not updated: %+v", got)
	}

	next.PaceScript = ""
	s.Apply(next)
	if ecs.Has(w, s.snake, component.PaceComponent.Kind()) {
		t.Fatalf("clearing pace_script should detach the pace")
	}
}

func TestPaceScriptDrivesDelay(t *testing.T) {
	spec := testSpec()
	spec.PaceScript = "pace.tengo"
	s, clock := newTestSession(t, spec, nil)

	mustStep(t, s)
	if got := s.Snake().MoveDelay; got != 0.15 {
		t.Fatalf("delay with nothing eaten = %v", got)
	}

	c, _ := ecs.Get(s.World(), s.state, component.CounterComponent.Kind())
	c.Eaten = 10
	clock.AdvanceSeconds(0.01)
	mustStep(t, s)
	want := 0.15 * 0.8170728068875467 // 0.98^10
	if diff := s.Snake().MoveDelay - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("delay = %v, want %v", s.Snake().MoveDelay, want)
	}
}

func TestHandleChanges(t *testing.T) {
	s, _ := newTestSession(t, testSpec(), nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "tuned.yaml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("move_delay: 0.25\nobstacle_period: 3\n")
	s.HandleChanges([]string{filepath.Join(dir, "other.yaml")}, path)
	if s.Snake().MoveDelay != 0.15 {
		t.Fatalf("unrelated file should be ignored")
	}

	s.HandleChanges([]string{path}, path)
	if s.Snake().MoveDelay != 0.25 {
		t.Fatalf("move delay = %v, want 0.25", s.Snake().MoveDelay)
	}

	write("move_delay: -1\n")
	s.HandleChanges([]string{path}, path)
	if s.Snake().MoveDelay != 0.25 {
		t.Fatalf("invalid reload should keep the old value, got %v", s.Snake().MoveDelay)
	}

	write("")
	s.HandleChanges([]string{path}, path)
	if s.Snake().MoveDelay != 0.25 {
		t.Fatalf("truncated file should keep the old value, got %v", s.Snake().MoveDelay)
	}
}

func TestHandleScriptChangeRearmsPace(t *testing.T) {
	spec := testSpec()
	spec.PaceScript = "pace.tengo"
	s, _ := newTestSession(t, spec, nil)
	mustStep(t, s)

	pace, _ := ecs.Get(s.World(), s.snake, component.PaceComponent.Kind())
	if pace.LastEaten != 0 {
		t.Fatalf("pace not evaluated, last eaten %d", pace.LastEaten)
	}
	s.HandleChanges([]string{"prefabs/scripts/pace.tengo"}, "")
	if pace.LastEaten != -1 {
		t.Fatalf("script change should re-arm the pace")
	}
}
