package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipes_Shape(t *testing.T) {
	tests := []struct {
		ev       Event
		wave     Waveform
		duration time.Duration
		hasGain  bool
	}{
		{EventStart, Sine, 200 * time.Millisecond, false},
		{EventTransition, Sawtooth, 400 * time.Millisecond, true},
		{EventCorrect, Triangle, 250 * time.Millisecond, true},
		{EventIncorrect, Sawtooth, 300 * time.Millisecond, false},
	}
	for _, tt := range tests {
		t.Run(tt.ev.String(), func(t *testing.T) {
			r := RecipeFor(tt.ev)
			assert.Equal(t, tt.wave, r.Wave)
			assert.Equal(t, tt.duration, r.Duration)
			assert.Equal(t, tt.hasGain, r.Gain != nil)
			require.NoError(t, r.Frequency.Validate())
			if r.Gain != nil {
				require.NoError(t, r.Gain.Validate())
			}
		})
	}
}

func TestRecipes_FrequencyCurves(t *testing.T) {
	tests := []struct {
		ev   Event
		at   float64
		want float64
	}{
		{EventStart, 0, 261.63},
		{EventStart, 0.1, (261.63 + 523.25) / 2},
		{EventStart, 0.2, 523.25},
		{EventTransition, 0, 1200},
		{EventTransition, 0.2, 1200 * math.Sqrt(100.0/1200.0)},
		{EventTransition, 0.4, 100},
		{EventCorrect, 0, 523.25},
		{EventCorrect, 0.079, 523.25},
		{EventCorrect, 0.08, 659.25},
		{EventCorrect, 0.16, 783.99},
		{EventCorrect, 0.25, 783.99},
		{EventIncorrect, 0, 164.81},
		{EventIncorrect, 0.15, (164.81 + 123.47) / 2},
		{EventIncorrect, 0.3, 123.47},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RecipeFor(tt.ev).Frequency.ValueAt(tt.at), 1e-6, "%s at %.3fs", tt.ev, tt.at)
	}
}

func TestRecipes_GainCurves(t *testing.T) {
	tr := RecipeFor(EventTransition).Gain
	assert.InDelta(t, 0.3, tr.ValueAt(0), 1e-9)
	assert.InDelta(t, MinRampValue, tr.ValueAt(0.4), 1e-9)

	c := RecipeFor(EventCorrect).Gain
	assert.InDelta(t, 0.3, c.ValueAt(0), 1e-9)
	assert.InDelta(t, MinRampValue, c.ValueAt(0.24), 1e-9)
	assert.InDelta(t, MinRampValue, c.ValueAt(0.25), 1e-9, "holds floor until stop")
	assert.Less(t, c.ValueAt(0.12), 0.3)
}

func TestParseEvent(t *testing.T) {
	for _, ev := range Events() {
		got, err := ParseEvent(ev.String())
		require.NoError(t, err)
		assert.Equal(t, ev, got)
	}
	_, err := ParseEvent("roar")
	require.Error(t, err)
	assert.Equal(t, "event(9)", Event(9).String())
}
