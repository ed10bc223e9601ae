package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Output is the shared destination voices are mixed into.
type Output interface {
	// Open acquires the device. It is called at most once, on the first Play.
	Open(rate beep.SampleRate) error
	// Play mixes s into the output until it drains.
	Play(s beep.Streamer)
	// SetGain sets the master gain in [0, 1], affecting voices already playing.
	SetGain(g float64)
	Close()
}

// applyGain maps a linear gain onto an effects.Volume stage with base 2.
func applyGain(v *effects.Volume, g float64) {
	if g <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(g)
}

// newMasterStage returns a mixer feeding a base-2 volume stage.
func newMasterStage() (*beep.Mixer, *effects.Volume) {
	mixer := &beep.Mixer{}
	return mixer, &effects.Volume{Streamer: mixer, Base: 2}
}

// SpeakerOutput plays through the system audio device.
type SpeakerOutput struct {
	buffer time.Duration
	mixer  *beep.Mixer
	master *effects.Volume
}

// NewSpeakerOutput creates an output with the given device buffer length.
func NewSpeakerOutput(buffer time.Duration) *SpeakerOutput {
	mixer, master := newMasterStage()
	return &SpeakerOutput{buffer: buffer, mixer: mixer, master: master}
}

// Open implements Output.
func (o *SpeakerOutput) Open(rate beep.SampleRate) error {
	if err := speaker.Init(rate, rate.N(o.buffer)); err != nil {
		return err
	}
	speaker.Play(o.master)
	return nil
}

// Play implements Output.
func (o *SpeakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// SetGain implements Output.
func (o *SpeakerOutput) SetGain(g float64) {
	speaker.Lock()
	applyGain(o.master, g)
	speaker.Unlock()
}

// Close implements Output.
func (o *SpeakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}

// BufferOutput mixes voices in memory and only advances when Render is
// called. Tests use it to drive playback deterministically.
type BufferOutput struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	master *effects.Volume
	rate   beep.SampleRate
	opens  int
	gain   float64
}

// NewBufferOutput creates an unopened in-memory output.
func NewBufferOutput() *BufferOutput {
	mixer, master := newMasterStage()
	return &BufferOutput{mixer: mixer, master: master, gain: 1}
}

// Open implements Output.
func (o *BufferOutput) Open(rate beep.SampleRate) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rate = rate
	o.opens++
	return nil
}

// Play implements Output.
func (o *BufferOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	o.mixer.Add(s)
	o.mu.Unlock()
}

// SetGain implements Output.
func (o *BufferOutput) SetGain(g float64) {
	o.mu.Lock()
	o.gain = g
	applyGain(o.master, g)
	o.mu.Unlock()
}

// Close implements Output.
func (o *BufferOutput) Close() {
	o.mu.Lock()
	o.mixer.Clear()
	o.mu.Unlock()
}

// Render pulls d worth of mixed samples through the master stage.
func (o *BufferOutput) Render(d time.Duration) [][2]float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	buf := make([][2]float64, o.rate.N(d))
	o.master.Stream(buf)
	return buf
}

// Gain returns the last master gain set.
func (o *BufferOutput) Gain() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gain
}

// Opens reports how many times Open was called.
func (o *BufferOutput) Opens() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opens
}
