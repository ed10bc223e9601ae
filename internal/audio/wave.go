package audio

import "math"

// Waveform is an oscillator shape.
type Waveform int

const (
	Sine Waveform = iota
	Sawtooth
	Triangle
	Square
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	}
	return "unknown"
}

// sample returns the waveform value in [-1, 1] at phase in [0, 1).
func (w Waveform) sample(phase float64) float64 {
	switch w {
	case Sawtooth:
		return 2*phase - 1
	case Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
