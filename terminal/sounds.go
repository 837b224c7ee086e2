package terminal

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/milk9111/snake/assets"
)

const sampleRate = beep.SampleRate(44100)

// Sounds plays embedded wav clips through the beep speaker. All clips are
// mixed into one stream so Close can silence them together.
type Sounds struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  *effects.Volume
	buffers map[string]*beep.Buffer
	ctrls   []*beep.Ctrl
}

// NewSounds initializes the speaker at volume, a linear gain where 1 is
// unchanged and 0 is silent. A failure leaves the game silent; the caller
// logs it and passes nil as the sound player.
func NewSounds(volume float64) (*Sounds, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("terminal: init speaker: %w", err)
	}
	s := &Sounds{
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer),
	}
	s.volume = &effects.Volume{Streamer: s.mixer, Base: 2}
	setGain(s.volume, volume)
	speaker.Play(s.volume)
	return s, nil
}

// SetVolume changes the master gain of every clip, playing or not.
func (s *Sounds) SetVolume(volume float64) {
	speaker.Lock()
	setGain(s.volume, volume)
	speaker.Unlock()
}

// setGain maps a linear gain onto the log2 scale effects.Volume expects.
func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(gain)
	v.Silent = false
}

func (s *Sounds) PlayOnce(path string) error {
	buf, err := s.load(path)
	if err != nil {
		return err
	}
	s.add(buf.Streamer(0, buf.Len()))
	return nil
}

func (s *Sounds) PlayLooping(path string) error {
	buf, err := s.load(path)
	if err != nil {
		return err
	}
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	s.mu.Lock()
	s.ctrls = append(s.ctrls, ctrl)
	s.mu.Unlock()
	s.add(ctrl)
	return nil
}

func (s *Sounds) Close() error {
	s.mu.Lock()
	ctrls := s.ctrls
	s.ctrls = nil
	s.mu.Unlock()

	speaker.Lock()
	for _, c := range ctrls {
		c.Paused = true
	}
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	return nil
}

func (s *Sounds) add(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// load decodes a clip once and keeps it resampled to the speaker rate.
func (s *Sounds) load(path string) (*beep.Buffer, error) {
	s.mu.Lock()
	buf, ok := s.buffers[path]
	s.mu.Unlock()
	if ok {
		return buf, nil
	}

	b, err := assets.LoadAudio(path)
	if err != nil {
		return nil, err
	}
	streamer, format, err := wav.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("terminal: decode wav %q: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, streamer)
		format.SampleRate = sampleRate
	}
	buf = beep.NewBuffer(format)
	buf.Append(src)

	s.mu.Lock()
	s.buffers[path] = buf
	s.mu.Unlock()
	return buf, nil
}
