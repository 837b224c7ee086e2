package session

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"
	"time"

	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
	"github.com/milk9111/snake/ecs/entity"
	"github.com/milk9111/snake/ecs/render"
	"github.com/milk9111/snake/ecs/system"
	"github.com/milk9111/snake/input"
	"github.com/milk9111/snake/prefabs"
)

// Options wires a session to its frontend.
type Options struct {
	Spec       prefabs.GameSpec
	Decoder    render.Decoder
	Input      input.Source
	Sounds     system.SoundPlayer
	Clock      Clock
	Background color.Color
}

// Session is one run of the game, from the first frame to game over or quit.
// It is not safe for concurrent use.
type Session struct {
	spec   prefabs.GameSpec
	bounds common.Bounds
	seed   uint64

	world     *ecs.World
	scheduler *ecs.Scheduler
	textures  *render.TextureCache
	pace      *system.PaceSystem

	input input.Source
	clock Clock
	last  time.Time
	ticks int

	paused bool
	quit   bool
	err    error

	state ecs.Entity
	snake ecs.Entity
}

// New builds the world from the spec's prefabs. It fails when a prefab or a
// texture it references cannot be loaded.
func New(opts Options) (*Session, error) {
	spec := opts.Spec
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		spec:     spec,
		bounds:   spec.Bounds(),
		seed:     spec.Seed,
		world:    ecs.NewWorld(),
		textures: render.NewTextureCache(opts.Decoder),
		input:    opts.Input,
		clock:    opts.Clock,
	}
	if s.seed == 0 {
		s.seed = uint64(time.Now().UnixNano())
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}

	if err := s.build(); err != nil {
		s.textures.Close()
		return nil, err
	}
	s.Apply(spec)

	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	s.pace = system.NewPaceSystem(prefabs.LoadScript)
	s.scheduler = ecs.NewScheduler(
		system.NewMovementSystem(s.bounds),
		system.NewCollisionSystem(s.bounds, rng),
		system.NewObstacleSystem(s.bounds, rng),
		system.NewParallaxSystem(),
		s.pace,
		system.NewAudioSystem(opts.Sounds),
		system.NewRenderSystem(s.bounds, opts.Background),
	)

	return s, nil
}

func (s *Session) build() error {
	names := s.spec.Entities

	state, err := entity.NewSessionState(s.world, names.Session, s.textures)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.state = state

	if _, err := entity.NewBackground(s.world, names.Background, s.textures); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if start := s.spec.Start; start != nil {
		dir, err := common.ParseDirection(start.Direction)
		if err != nil {
			return fmt.Errorf("session: start: %w", err)
		}
		pos := s.bounds.Snap(common.Position{X: start.X, Y: start.Y})
		s.snake, err = entity.NewSnakeAt(s.world, names.Snake, s.textures, pos, dir)
		if err != nil {
			return fmt.Errorf("session: %w", err)
		}
	} else {
		s.snake, err = entity.NewSnake(s.world, names.Snake, s.textures)
		if err != nil {
			return fmt.Errorf("session: %w", err)
		}
	}

	if sn, ok := ecs.Get(s.world, s.snake, component.SnakeComponent.Kind()); ok {
		for i, seg := range sn.Segments {
			sn.Segments[i] = s.place(seg)
		}
	}

	food, err := entity.NewFood(s.world, names.Food, s.textures)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if f, ok := ecs.Get(s.world, food, component.FoodComponent.Kind()); ok {
		f.Position = s.place(f.Position)
	}
	if _, err := entity.NewObstacle(s.world, names.Obstacle, s.textures); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}

// place snaps a prefab coordinate to the grid and wraps it into the field.
func (s *Session) place(p common.Position) common.Position {
	return s.bounds.Wrap(s.bounds.Snap(p))
}

// Step runs one loop iteration: input, elapsed time, then every system.
// Once the session has ended every call returns the same error.
func (s *Session) Step() error {
	if s.err != nil {
		return s.err
	}

	if s.input != nil {
		for _, evt := range s.input.Poll() {
			s.handle(evt)
		}
	}

	now := s.clock.Now()
	dt := 0.0
	if s.ticks > 0 {
		dt = now.Sub(s.last).Seconds()
	}
	s.last = now
	s.ticks++

	if s.quit {
		s.terminate(component.CauseQuit)
		s.err = ErrQuit
		return s.err
	}
	if s.paused {
		return nil
	}

	s.scheduler.Update(s.world, dt)

	if st := s.gameState(); st != nil && !st.Running() {
		s.err = &GameOverError{Cause: st.Cause, Eaten: s.Eaten()}
		log.Printf("%v", s.err)
		return s.err
	}
	return nil
}

func (s *Session) handle(evt input.Event) {
	switch evt.Kind {
	case input.KindQuit:
		s.quit = true
	case input.KindPause:
		s.SetPaused(!s.paused)
	case input.KindDirection:
		if !s.paused {
			system.Steer(s.world, evt.Direction)
		}
	}
}

// Draw renders the current frame and presents it.
func (s *Session) Draw(surface render.Surface) {
	if surface == nil {
		return
	}
	s.scheduler.Draw(s.world, surface)
	surface.Present()
}

// Apply pushes the live-tunable parts of spec into the running world.
// Screen size, seed and prefab names only take effect in a new session.
func (s *Session) Apply(spec prefabs.GameSpec) {
	if spec.Bounds() != s.bounds {
		log.Printf("session: screen change to %dx%d ignored until restart", spec.Screen.Width, spec.Screen.Height)
	}

	ecs.ForEach(s.world, component.SnakeComponent.Kind(), func(e ecs.Entity, snake *component.Snake) {
		snake.MoveDelay = spec.MoveDelay
		if pace, ok := ecs.Get(s.world, e, component.PaceComponent.Kind()); ok {
			pace.BaseDelay = spec.MoveDelay
			pace.LastEaten = -1
			if spec.PaceScript != "" {
				pace.Script = spec.PaceScript
			}
		}
	})
	if spec.PaceScript != "" && !ecs.Has(s.world, s.snake, component.PaceComponent.Kind()) {
		if err := entity.AttachPace(s.world, s.snake, spec.PaceScript); err != nil {
			log.Printf("session: %v", err)
		}
	}
	if spec.PaceScript == "" && s.spec.PaceScript != "" {
		ecs.Remove(s.world, s.snake, component.PaceComponent.Kind())
	}

	ecs.ForEach(s.world, component.ObstacleComponent.Kind(), func(_ ecs.Entity, o *component.Obstacle) {
		o.Period = spec.ObstaclePeriod
	})
	ecs.ForEach(s.world, component.FoodComponent.Kind(), func(_ ecs.Entity, f *component.Food) {
		f.AvoidOccupied = spec.AvoidOccupied
	})
	ecs.ForEach(s.world, component.ParallaxComponent.Kind(), func(_ ecs.Entity, p *component.Parallax) {
		p.SpeedX = spec.Parallax.SpeedX
		p.SpeedY = spec.Parallax.SpeedY
	})

	keep := s.spec
	s.spec = spec
	s.spec.Screen = keep.Screen
	s.spec.Seed = keep.Seed
	s.spec.Entities = keep.Entities
	s.spec.Start = keep.Start
}

// Reload re-reads path and applies it, keeping the old tunables on error.
func (s *Session) Reload(path string) error {
	spec, err := prefabs.LoadGameSpec(path)
	if err != nil {
		return err
	}
	s.Apply(spec)
	return nil
}

// ReloadScripts recompiles pace scripts on the next update.
func (s *Session) ReloadScripts() {
	s.pace.Reset()
	ecs.ForEach(s.world, component.PaceComponent.Kind(), func(_ ecs.Entity, pace *component.Pace) {
		pace.LastEaten = -1
	})
}

func (s *Session) Paused() bool {
	return s.paused
}

// SetPaused freezes or resumes the simulation. Time spent paused is never
// fed to the systems.
func (s *Session) SetPaused(paused bool) {
	if s.paused && !paused {
		s.last = s.clock.Now()
	}
	s.paused = paused
}

// Quit ends the session at the next Step.
func (s *Session) Quit() {
	s.quit = true
}

// Eaten returns the number of food items eaten so far.
func (s *Session) Eaten() int {
	if c, ok := ecs.Get(s.world, s.state, component.CounterComponent.Kind()); ok {
		return c.Eaten
	}
	return 0
}

// Err returns the error that ended the session, or nil while it runs.
func (s *Session) Err() error {
	return s.err
}

// Over reports whether the session ended by game over rather than quit.
func (s *Session) Over() bool {
	return errors.Is(s.err, ErrGameOver)
}

func (s *Session) Seed() uint64 {
	return s.seed
}

func (s *Session) Bounds() common.Bounds {
	return s.bounds
}

func (s *Session) Spec() prefabs.GameSpec {
	return s.spec
}

func (s *Session) World() *ecs.World {
	return s.world
}

// Snake returns the controlled snake's component.
func (s *Session) Snake() *component.Snake {
	snake, _ := ecs.Get(s.world, s.snake, component.SnakeComponent.Kind())
	return snake
}

// Close releases every texture the session loaded.
func (s *Session) Close() {
	if s.textures != nil {
		s.textures.Close()
	}
}

func (s *Session) gameState() *component.GameState {
	st, _ := ecs.Get(s.world, s.state, component.GameStateComponent.Kind())
	return st
}

func (s *Session) terminate(cause component.Cause) {
	if st := s.gameState(); st != nil {
		st.Terminate(cause)
	}
}
