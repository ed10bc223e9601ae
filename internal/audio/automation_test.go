package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomation_Linear(t *testing.T) {
	a := NewAutomation(100).SetAt(100, 0).LinearTo(200, 1)

	assert.InDelta(t, 100, a.ValueAt(0), 1e-9)
	assert.InDelta(t, 150, a.ValueAt(0.5), 1e-9)
	assert.InDelta(t, 200, a.ValueAt(1), 1e-9)
	assert.InDelta(t, 200, a.ValueAt(5), 1e-9, "holds after last point")
}

func TestAutomation_Exponential(t *testing.T) {
	a := NewAutomation(1).SetAt(1, 0).ExponentialTo(100, 2)

	assert.InDelta(t, 1, a.ValueAt(0), 1e-9)
	assert.InDelta(t, 10, a.ValueAt(1), 1e-9, "geometric midpoint")
	assert.InDelta(t, 100, a.ValueAt(2), 1e-9)
}

func TestAutomation_Steps(t *testing.T) {
	a := NewAutomation(1).SetAt(1, 0).SetAt(2, 0.1).SetAt(3, 0.2)

	assert.Equal(t, 1.0, a.ValueAt(0.05))
	assert.Equal(t, 2.0, a.ValueAt(0.1))
	assert.Equal(t, 2.0, a.ValueAt(0.15))
	assert.Equal(t, 3.0, a.ValueAt(0.3))
}

func TestAutomation_RampFromInitial(t *testing.T) {
	a := NewAutomation(0).LinearTo(1, 1)
	assert.InDelta(t, 0.25, a.ValueAt(0.25), 1e-9)
}

func TestAutomation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		a       *Automation
		wantErr bool
	}{
		{"ok", NewAutomation(0.3).ExponentialTo(MinRampValue, 0.4), false},
		{"exponential to zero", NewAutomation(0.3).ExponentialTo(0, 0.4), true},
		{"exponential from zero", NewAutomation(0).ExponentialTo(1, 0.4), true},
		{"exponential sign change", NewAutomation(1).ExponentialTo(-1, 0.4), true},
		{"out of order", NewAutomation(1).SetAt(1, 0.5).SetAt(2, 0.1), true},
		{"linear to zero", NewAutomation(1).LinearTo(0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.a.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestWaveform_Range(t *testing.T) {
	for _, w := range []Waveform{Sine, Sawtooth, Triangle, Square} {
		t.Run(w.String(), func(t *testing.T) {
			for i := 0; i < 100; i++ {
				v := w.sample(float64(i) / 100)
				assert.LessOrEqual(t, math.Abs(v), 1.0)
			}
		})
	}
	assert.InDelta(t, 0, Sine.sample(0), 1e-9)
	assert.InDelta(t, 1, Sine.sample(0.25), 1e-9)
	assert.InDelta(t, -1, Sawtooth.sample(0), 1e-9)
	assert.InDelta(t, 1, Triangle.sample(0.5), 1e-9)
}
