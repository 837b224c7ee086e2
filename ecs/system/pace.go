package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

// ScriptLoader returns the source of a named script.
type ScriptLoader func(name string) ([]byte, error)

// PaceSystem evaluates a snake's pace script whenever the eaten counter
// changes. The script reads `eaten` and `base_delay` and must define
// `move_delay` in seconds.
type PaceSystem struct {
	load     ScriptLoader
	compiled map[string]*tengo.Compiled
}

func NewPaceSystem(load ScriptLoader) *PaceSystem {
	return &PaceSystem{load: load, compiled: make(map[string]*tengo.Compiled)}
}

func (p *PaceSystem) Update(w *ecs.World, _ float64) {
	if !running(w) {
		return
	}
	eaten := 0
	if c := counter(w); c != nil {
		eaten = c.Eaten
	}
	ecs.ForEach2(w, component.SnakeComponent.Kind(), component.PaceComponent.Kind(), func(e ecs.Entity, s *component.Snake, pace *component.Pace) {
		if pace.Script == "" || pace.LastEaten == eaten {
			return
		}
		pace.LastEaten = eaten
		delay, err := p.Eval(pace.Script, eaten, pace.BaseDelay)
		if err != nil {
			log.Printf("pace: entity=%s script %q: %v", e, pace.Script, err)
			return
		}
		s.MoveDelay = delay
	})
}

// Eval runs script for the given counter and base delay.
func (p *PaceSystem) Eval(script string, eaten int, baseDelay float64) (float64, error) {
	compiled, err := p.compile(script)
	if err != nil {
		return 0, err
	}
	run := compiled.Clone()
	if err := run.Set("eaten", eaten); err != nil {
		return 0, err
	}
	if err := run.Set("base_delay", baseDelay); err != nil {
		return 0, err
	}
	if err := run.Run(); err != nil {
		return 0, fmt.Errorf("run: %w", err)
	}
	if !run.IsDefined("move_delay") {
		return 0, fmt.Errorf("script does not define move_delay")
	}
	delay := run.Get("move_delay").Float()
	if delay <= 0 || delay > 1 {
		return 0, fmt.Errorf("move_delay %.3f outside (0, 1]", delay)
	}
	return delay, nil
}

// Reset drops every compiled script so the next evaluation reloads them.
func (p *PaceSystem) Reset() {
	clear(p.compiled)
}

func (p *PaceSystem) compile(name string) (*tengo.Compiled, error) {
	if c, ok := p.compiled[name]; ok {
		return c, nil
	}
	if p.load == nil {
		return nil, fmt.Errorf("no script loader")
	}
	src, err := p.load(name)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	_ = script.Add("eaten", 0)
	_ = script.Add("base_delay", component.DefaultMoveDelay)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	p.compiled[name] = compiled
	return compiled, nil
}
