package ecs

import "github.com/milk9111/snake/ecs/render"

// System advances the world by dt seconds.
type System interface {
	Update(w *World, dt float64)
}

// RenderSystem emits draw calls for the world.
type RenderSystem interface {
	Draw(w *World, surface render.Surface)
}

// Scheduler runs systems in a fixed order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once and then drops undrained events.
func (s *Scheduler) Update(w *World, dt float64) {
	for _, system := range s.systems {
		system.Update(w, dt)
	}
	w.Events().flush()
}

// Draw calls every render-capable system in order.
func (s *Scheduler) Draw(w *World, surface render.Surface) {
	if surface == nil {
		return
	}
	for _, system := range s.systems {
		if rs, ok := system.(RenderSystem); ok {
			rs.Draw(w, surface)
		}
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
