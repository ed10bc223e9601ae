// Package audio synthesizes DinoGuessr's sound effects.
//
// Each effect is a short oscillator voice whose frequency (and optionally
// gain) follows a fixed automation curve. Voices are mixed through one master
// gain stage on a shared output that is acquired on the first Play. Starting a
// voice stops every voice still playing, so effects never overlap.
package audio

import "fmt"

// Event identifies which sound effect to play.
type Event int

const (
	EventStart Event = iota
	EventTransition
	EventCorrect
	EventIncorrect
)

var eventNames = [...]string{"start", "transition", "correct", "incorrect"}

// Events returns every event in declaration order.
func Events() []Event {
	return []Event{EventStart, EventTransition, EventCorrect, EventIncorrect}
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("event(%d)", int(e))
	}
	return eventNames[e]
}

// ParseEvent maps a lowercase name back to its Event.
func ParseEvent(s string) (Event, error) {
	for i, name := range eventNames {
		if name == s {
			return Event(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sound %q (want start, transition, correct or incorrect)", s)
}
