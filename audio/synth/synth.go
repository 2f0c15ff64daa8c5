// Package synth plays the game's cues as tones synthesised with beep. It needs
// no asset files, which suits the terminal host.
package synth

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sounds implements game.Sounds on a beep mixer.
type Sounds struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	ambient *beep.Ctrl
	open    bool
}

// New returns a synth whose mixer is not yet attached to a speaker. Streaming
// from Mixer drives it directly.
func New() *Sounds {
	return &Sounds{mixer: &beep.Mixer{}}
}

// Open initialises the speaker and starts playing the mixer.
func (s *Sounds) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.open = true
	return nil
}

// Close silences everything and releases the speaker.
func (s *Sounds) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ambient != nil {
		s.ambient.Paused = true
	}
	if s.open {
		speaker.Clear()
		speaker.Close()
		s.open = false
	}
	s.mixer.Clear()
}

// Mixer is the stream every cue is added to.
func (s *Sounds) Mixer() *beep.Mixer {
	return s.mixer
}

func (s *Sounds) add(streamer beep.Streamer) {
	if s.open {
		speaker.Lock()
		defer speaker.Unlock()
	}
	s.mixer.Add(streamer)
}

func tone(freq float64, d time.Duration, volume float64) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(d), sine),
		Base:     2,
		Volume:   volume,
	}
}

// StartAmbient starts a low drone. Calling it while the drone plays does nothing.
func (s *Sounds) StartAmbient() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ambient != nil && !s.ambient.Paused {
		return
	}
	drone, err := generators.SineTone(sampleRate, 55)
	if err != nil {
		return
	}
	s.ambient = &beep.Ctrl{Streamer: &effects.Volume{Streamer: drone, Base: 2, Volume: -4}}
	s.add(s.ambient)
}

func (s *Sounds) StopAmbient() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ambient == nil {
		return
	}
	if s.open {
		speaker.Lock()
		defer speaker.Unlock()
	}
	s.ambient.Paused = true
	s.ambient.Streamer = nil
}

// PlayHit plays a short high blip.
func (s *Sounds) PlayHit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.add(tone(880, 80*time.Millisecond, -1))
}

// PlayGameOver plays a falling three-note phrase.
func (s *Sounds) PlayGameOver() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.add(beep.Seq(
		tone(440, 200*time.Millisecond, -1),
		tone(330, 200*time.Millisecond, -1),
		tone(220, 400*time.Millisecond, -1),
	))
}
