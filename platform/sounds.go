package platform

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/snake/assets"
)

const sampleRate = 44100

// Sounds plays embedded wav clips through the shared ebiten audio context.
type Sounds struct {
	ctx *audio.Context

	mu      sync.Mutex
	pcm     map[string][]byte
	loops   []*audio.Player
	playing []*audio.Player
}

func NewSounds() *Sounds {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Sounds{ctx: ctx, pcm: make(map[string][]byte)}
}

func (s *Sounds) PlayOnce(path string) error {
	pcm, err := s.decode(path)
	if err != nil {
		return err
	}
	player := s.ctx.NewPlayerFromBytes(pcm)
	player.Play()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.playing = append(s.playing, player)
	return nil
}

func (s *Sounds) PlayLooping(path string) error {
	pcm, err := s.decode(path)
	if err != nil {
		return err
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := s.ctx.NewPlayer(loop)
	if err != nil {
		return fmt.Errorf("platform: loop %q: %w", path, err)
	}
	player.Play()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loops = append(s.loops, player)
	return nil
}

// Close stops every clip started by s.
func (s *Sounds) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range append(s.loops, s.playing...) {
		_ = p.Close()
	}
	s.loops = nil
	s.playing = nil
	return nil
}

// decode returns the clip as PCM at the context's sample rate, cached by
// path.
func (s *Sounds) decode(path string) ([]byte, error) {
	s.mu.Lock()
	pcm, ok := s.pcm[path]
	s.mu.Unlock()
	if ok {
		return pcm, nil
	}

	b, err := assets.LoadAudio(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(s.ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("platform: decode wav %q: %w", path, err)
	}
	pcm, err = io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("platform: read wav %q: %w", path, err)
	}

	s.mu.Lock()
	s.pcm[path] = pcm
	s.mu.Unlock()
	return pcm, nil
}

// prune drops finished one-shot players. Callers hold s.mu.
func (s *Sounds) prune() {
	live := s.playing[:0]
	for _, p := range s.playing {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		_ = p.Close()
	}
	s.playing = live
}
