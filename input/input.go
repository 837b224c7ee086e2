package input

import (
	"fmt"

	"github.com/milk9111/snake/common"
)

type Kind uint8

const (
	KindQuit Kind = iota + 1
	KindDirection
	KindPause
)

func (k Kind) String() string {
	switch k {
	case KindQuit:
		return "quit"
	case KindDirection:
		return "direction"
	case KindPause:
		return "pause"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Event is one discrete input. Direction is set only for KindDirection.
type Event struct {
	Kind      Kind
	Direction common.Direction
}

func Quit() Event {
	return Event{Kind: KindQuit}
}

func Pause() Event {
	return Event{Kind: KindPause}
}

func Turn(d common.Direction) Event {
	return Event{Kind: KindDirection, Direction: d}
}

func (e Event) String() string {
	if e.Kind == KindDirection {
		return fmt.Sprintf("direction(%s)", e.Direction)
	}
	return e.Kind.String()
}

// Source yields the events captured since the previous Poll. The returned
// slice belongs to the caller.
type Source interface {
	Poll() []Event
}

// SourceFunc adapts a function to Source.
type SourceFunc func() []Event

func (f SourceFunc) Poll() []Event {
	return f()
}

// Script replays a fixed list of frames, one per Poll, then reports no
// further events.
type Script struct {
	frames [][]Event
	next   int
}

func NewScript(frames ...[]Event) *Script {
	return &Script{frames: frames}
}

func (s *Script) Poll() []Event {
	if s == nil || s.next >= len(s.frames) {
		return nil
	}
	frame := s.frames[s.next]
	s.next++
	out := make([]Event, len(frame))
	copy(out, frame)
	return out
}

// Remaining reports how many scripted frames have not been polled yet.
func (s *Script) Remaining() int {
	if s == nil {
		return 0
	}
	return len(s.frames) - s.next
}
