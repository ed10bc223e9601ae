package audio

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
)

// voice is one in-flight effect. It streams until its duration elapses or
// Stop is called, and on either path releases itself exactly once.
type voice struct {
	recipe Recipe
	rate   beep.SampleRate
	total  int
	pos    int
	phase  float64

	stopped     atomic.Bool
	releaseOnce sync.Once
	onRelease   func(*voice)
}

func newVoice(r Recipe, rate beep.SampleRate, onRelease func(*voice)) *voice {
	return &voice{
		recipe:    r,
		rate:      rate,
		total:     rate.N(r.Duration),
		onRelease: onRelease,
	}
}

// Stream implements beep.Streamer.
func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.stopped.Load() || v.pos >= v.total {
		v.release()
		return 0, false
	}

	for i := range samples {
		if v.pos >= v.total {
			v.release()
			return i, i > 0
		}
		t := float64(v.pos) / float64(v.rate)

		val := v.recipe.Wave.sample(v.phase)
		if v.recipe.Gain != nil {
			val *= v.recipe.Gain.ValueAt(t)
		}
		samples[i][0] = val
		samples[i][1] = val

		v.phase += v.recipe.Frequency.ValueAt(t) / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	if v.pos >= v.total {
		v.release()
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (v *voice) Err() error { return nil }

// Stop ends the voice early. Stopping a finished voice is a no-op.
func (v *voice) Stop() {
	v.stopped.Store(true)
	v.release()
}

func (v *voice) release() {
	v.releaseOnce.Do(func() {
		if v.onRelease != nil {
			v.onRelease(v)
		}
	})
}

// voiceSet tracks voices that have started and not yet been released.
type voiceSet struct {
	mu     sync.Mutex
	voices map[*voice]struct{}
}

func newVoiceSet() *voiceSet {
	return &voiceSet{voices: make(map[*voice]struct{})}
}

func (s *voiceSet) add(v *voice) {
	s.mu.Lock()
	s.voices[v] = struct{}{}
	s.mu.Unlock()
}

func (s *voiceSet) remove(v *voice) {
	s.mu.Lock()
	delete(s.voices, v)
	s.mu.Unlock()
}

// stopAll stops every tracked voice. The set lock is not held while stopping
// because each Stop removes its voice from the set.
func (s *voiceSet) stopAll() {
	s.mu.Lock()
	active := make([]*voice, 0, len(s.voices))
	for v := range s.voices {
		active = append(active, v)
	}
	s.mu.Unlock()

	for _, v := range active {
		v.Stop()
	}
}

func (s *voiceSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voices)
}
