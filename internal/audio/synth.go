package audio

import (
	"context"
	"math"
	"sync"

	"github.com/zjrosen/dinoguessr/internal/log"

	"github.com/gopxl/beep"
)

// DefaultSampleRate is used when Config.SampleRate is zero.
const DefaultSampleRate = beep.SampleRate(44100)

// VolumeSaver persists the master volume.
type VolumeSaver interface {
	SaveVolume(ctx context.Context, v float64) error
}

// Config configures a Synthesizer.
type Config struct {
	SampleRate beep.SampleRate
	Volume     float64     // initial master volume, clamped to [0, 1]
	Saver      VolumeSaver // optional
}

// Synthesizer plays sound effects through a lazily acquired Output.
//
// If the output cannot be opened the synthesizer logs once and becomes inert:
// Play turns into a no-op for the rest of the process while volume keeps
// working. A Synthesizer with a nil Output is inert from the start.
type Synthesizer struct {
	mu     sync.Mutex
	out    Output
	rate   beep.SampleRate
	ready  bool
	inert  bool
	volume float64
	saver  VolumeSaver
	voices *voiceSet
}

// NewSynthesizer creates a synthesizer. The output is not touched until the
// first Play, which should follow a user action.
func NewSynthesizer(out Output, cfg Config) *Synthesizer {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Synthesizer{
		out:    out,
		rate:   rate,
		inert:  out == nil,
		volume: clampVolume(cfg.Volume),
		saver:  cfg.Saver,
		voices: newVoiceSet(),
	}
}

// Acquire opens the output if it has not been opened yet. It reports whether
// the synthesizer can play.
func (s *Synthesizer) Acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquireLocked()
}

func (s *Synthesizer) acquireLocked() bool {
	if s.inert {
		return false
	}
	if s.ready {
		return true
	}
	if err := s.out.Open(s.rate); err != nil {
		log.ErrorErr(log.CatAudio, "Audio output unavailable, continuing without sound", err)
		s.inert = true
		return false
	}
	s.out.SetGain(s.volume)
	s.ready = true
	log.Debug(log.CatAudio, "Audio output acquired", "sample_rate", int(s.rate))
	return true
}

// Play stops every active voice and starts the effect for ev.
func (s *Synthesizer) Play(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.acquireLocked() {
		return
	}

	s.voices.stopAll()

	v := newVoice(RecipeFor(ev), s.rate, s.voices.remove)
	s.voices.add(v)
	s.out.Play(v)
	log.Debug(log.CatAudio, "Playing sound", "event", ev.String())
}

// SetVolume clamps level to [0, 1], applies it to the master gain
// immediately, and persists it.
func (s *Synthesizer) SetVolume(level float64) {
	level = clampVolume(level)

	s.mu.Lock()
	s.volume = level
	if s.ready {
		s.out.SetGain(level)
	}
	saver := s.saver
	s.mu.Unlock()

	if saver != nil {
		if err := saver.SaveVolume(context.Background(), level); err != nil {
			log.ErrorErr(log.CatAudio, "Failed to persist volume", err, "volume", level)
		}
	}
}

// Volume returns the current master volume.
func (s *Synthesizer) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Active returns the number of voices started and not yet finished or stopped.
func (s *Synthesizer) Active() int {
	return s.voices.len()
}

// Inert reports whether the synthesizer has given up on audio output.
func (s *Synthesizer) Inert() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inert
}

// Close stops all voices and releases the output. Play is a no-op afterwards.
func (s *Synthesizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.voices.stopAll()
	if s.ready {
		s.out.Close()
		s.ready = false
	}
	s.inert = true
}

func clampVolume(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
