package audio

import "time"

// Recipe describes one synthesized effect.
type Recipe struct {
	Wave      Waveform
	Duration  time.Duration
	Frequency *Automation
	Gain      *Automation // nil plays at unity before the master gain
}

// RecipeFor returns the recipe for ev. Each call builds fresh curves.
func RecipeFor(ev Event) Recipe {
	switch ev {
	case EventTransition:
		return Recipe{
			Wave:      Sawtooth,
			Duration:  400 * time.Millisecond,
			Frequency: NewAutomation(1200).SetAt(1200, 0).ExponentialTo(100, 0.4),
			Gain:      NewAutomation(0.3).SetAt(0.3, 0).ExponentialTo(MinRampValue, 0.4),
		}
	case EventCorrect:
		// C5 E5 G5 arpeggio
		return Recipe{
			Wave:     Triangle,
			Duration: 250 * time.Millisecond,
			Frequency: NewAutomation(523.25).
				SetAt(523.25, 0).
				SetAt(659.25, 0.08).
				SetAt(783.99, 0.16),
			Gain: NewAutomation(0.3).SetAt(0.3, 0).ExponentialTo(MinRampValue, 0.24),
		}
	case EventIncorrect:
		// E3 down to B2
		return Recipe{
			Wave:      Sawtooth,
			Duration:  300 * time.Millisecond,
			Frequency: NewAutomation(164.81).SetAt(164.81, 0).LinearTo(123.47, 0.3),
		}
	default:
		// C4 up to C5
		return Recipe{
			Wave:      Sine,
			Duration:  200 * time.Millisecond,
			Frequency: NewAutomation(261.63).SetAt(261.63, 0).LinearTo(523.25, 0.2),
		}
	}
}
