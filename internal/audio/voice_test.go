package audio

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(8000)

// drain streams v to exhaustion and returns the samples produced.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never drained")
	return nil
}

func TestVoice_NaturalCompletionReleasesOnce(t *testing.T) {
	var releases atomic.Int32
	v := newVoice(RecipeFor(EventStart), testRate, func(*voice) { releases.Add(1) })

	samples := drain(t, v)
	assert.Len(t, samples, testRate.N(RecipeFor(EventStart).Duration))
	assert.Equal(t, int32(1), releases.Load())

	// streaming again after the end must not release twice
	n, ok := v.Stream(make([][2]float64, 16))
	assert.Zero(t, n)
	assert.False(t, ok)
	v.Stop()
	assert.Equal(t, int32(1), releases.Load(), "stop after finish is ignored")
}

func TestVoice_StopEndsStreamAndReleasesOnce(t *testing.T) {
	var releases atomic.Int32
	v := newVoice(RecipeFor(EventTransition), testRate, func(*voice) { releases.Add(1) })

	n, ok := v.Stream(make([][2]float64, 64))
	require.True(t, ok)
	require.Equal(t, 64, n)

	v.Stop()
	v.Stop()
	assert.Equal(t, int32(1), releases.Load())

	n, ok = v.Stream(make([][2]float64, 64))
	assert.Zero(t, n)
	assert.False(t, ok)
	assert.Equal(t, int32(1), releases.Load())
}

func TestVoice_GainEnvelopeBoundsAmplitude(t *testing.T) {
	samples := drain(t, Stream(EventCorrect, testRate))
	for _, s := range samples {
		assert.LessOrEqual(t, math.Abs(s[0]), 0.3+1e-9)
		assert.Equal(t, s[0], s[1], "mono signal on both channels")
	}

	// last samples sit near the 0.001 floor
	tail := samples[len(samples)-1][0]
	assert.LessOrEqual(t, math.Abs(tail), 0.0011)
}

func TestVoiceSet_StopAll(t *testing.T) {
	set := newVoiceSet()
	a := newVoice(RecipeFor(EventStart), testRate, set.remove)
	b := newVoice(RecipeFor(EventCorrect), testRate, set.remove)
	set.add(a)
	set.add(b)
	require.Equal(t, 2, set.len())

	set.stopAll()
	assert.Equal(t, 0, set.len())
	assert.True(t, a.stopped.Load())
	assert.True(t, b.stopped.Load())

	set.stopAll() // empty set is fine
}
