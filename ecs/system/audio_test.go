package system

import (
	"errors"
	"slices"
	"testing"

	"github.com/milk9111/snake/common"
	"github.com/milk9111/snake/ecs"
	"github.com/milk9111/snake/ecs/component"
)

type playCall struct {
	path string
	loop bool
}

type recordingPlayer struct {
	calls []playCall
	err   error
}

func (p *recordingPlayer) PlayOnce(path string) error {
	p.calls = append(p.calls, playCall{path: path})
	return p.err
}

func (p *recordingPlayer) PlayLooping(path string) error {
	p.calls = append(p.calls, playCall{path: path, loop: true})
	return p.err
}

func newAudioFixture(t *testing.T) (*fixture, *component.Audio) {
	t.Helper()
	f := newFixture(t, snakeWith(common.Right, pos(0, 0)), pos(160, 160))
	a := &component.Audio{
		Names: []string{SoundMusic, SoundEat, SoundCrash},
		Files: []string{"music.wav", "eat.wav", "crash.wav"},
		Loop:  []bool{true, false, false},
		Play:  []bool{true, false, false},
	}
	sess, ok := ecs.First(f.w, component.GameStateComponent.Kind())
	if !ok {
		t.Fatalf("fixture has no session entity")
	}
	mustAdd(t, ecs.Add(f.w, sess, component.AudioComponent.Kind(), a))
	return f, a
}

func TestAudioAutoplayOnce(t *testing.T) {
	f, _ := newAudioFixture(t)
	player := &recordingPlayer{}
	sys := NewAudioSystem(player)

	sys.Update(f.w, 0)
	sys.Update(f.w, 0)

	want := []playCall{{path: "music.wav", loop: true}}
	if !slices.Equal(player.calls, want) {
		t.Fatalf("calls = %v, want %v", player.calls, want)
	}
}

func TestAudioPlaysEventClips(t *testing.T) {
	tests := []struct {
		name string
		kind ecs.EventKind
		want string
	}{
		{name: "eat", kind: ecs.EventFoodEaten, want: "eat.wav"},
		{name: "crash", kind: ecs.EventSnakeCrashed, want: "crash.wav"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, a := newAudioFixture(t)
			a.Play[0] = false
			player := &recordingPlayer{}
			sys := NewAudioSystem(player)

			// Events are raised on the snake, the clips live on the session.
			f.w.Events().Push(ecs.Event{Kind: tt.kind, Entity: f.snakeE})
			f.w.Events().Push(ecs.Event{Kind: tt.kind, Entity: f.snakeE})
			sys.Update(f.w, 0)

			want := []playCall{{path: tt.want}}
			if !slices.Equal(player.calls, want) {
				t.Fatalf("calls = %v, want %v", player.calls, want)
			}
		})
	}
}

func TestAudioErrorsDoNotBlock(t *testing.T) {
	f, a := newAudioFixture(t)
	player := &recordingPlayer{err: errors.New("device busy")}
	sys := NewAudioSystem(player)

	f.w.Events().Push(ecs.Event{Kind: ecs.EventFoodEaten, Entity: f.snakeE})
	sys.Update(f.w, 0)

	if len(player.calls) != 2 {
		t.Fatalf("want both music and eat attempted, got %v", player.calls)
	}
	if slices.Contains(a.Play, true) {
		t.Fatalf("requests must be cleared even when playback fails: %v", a.Play)
	}
}

func TestAudioWithoutPlayer(t *testing.T) {
	f, a := newAudioFixture(t)
	NewAudioSystem(nil).Update(f.w, 0)
	if slices.Contains(a.Play, true) {
		t.Fatalf("requests should be consumed without a player")
	}
}
