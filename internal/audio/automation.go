package audio

import (
	"fmt"
	"math"
)

// MinRampValue is the floor for exponential ramps, which cannot reach zero.
const MinRampValue = 0.001

type rampKind int

const (
	setValue rampKind = iota
	linearRamp
	exponentialRamp
)

type automationPoint struct {
	kind  rampKind
	value float64
	at    float64 // seconds from voice start
}

// Automation is a time-parameterized value curve made of set points and
// linear or exponential ramps. A ramp runs from the previous point to its own
// time and value; after the last point the value holds.
type Automation struct {
	initial float64
	points  []automationPoint
}

// NewAutomation starts a curve holding initial until the first point.
func NewAutomation(initial float64) *Automation {
	return &Automation{initial: initial}
}

// SetAt jumps to v at time t.
func (a *Automation) SetAt(v, t float64) *Automation {
	a.points = append(a.points, automationPoint{kind: setValue, value: v, at: t})
	return a
}

// LinearTo ramps linearly to v, arriving at time t.
func (a *Automation) LinearTo(v, t float64) *Automation {
	a.points = append(a.points, automationPoint{kind: linearRamp, value: v, at: t})
	return a
}

// ExponentialTo ramps exponentially to v, arriving at time t.
func (a *Automation) ExponentialTo(v, t float64) *Automation {
	a.points = append(a.points, automationPoint{kind: exponentialRamp, value: v, at: t})
	return a
}

// Validate rejects out-of-order points and exponential ramps touching zero or
// crossing sign.
func (a *Automation) Validate() error {
	prevT, prevV := 0.0, a.initial
	for i, p := range a.points {
		if p.at < prevT {
			return fmt.Errorf("point %d at %.3fs precedes %.3fs", i, p.at, prevT)
		}
		if p.kind == exponentialRamp && (prevV*p.value <= 0) {
			return fmt.Errorf("point %d: exponential ramp from %g to %g", i, prevV, p.value)
		}
		prevT, prevV = p.at, p.value
	}
	return nil
}

// ValueAt evaluates the curve at t seconds.
func (a *Automation) ValueAt(t float64) float64 {
	prevT, prevV := 0.0, a.initial
	for _, p := range a.points {
		if p.at <= t {
			prevT, prevV = p.at, p.value
			continue
		}
		span := p.at - prevT
		if span <= 0 {
			return prevV
		}
		frac := (t - prevT) / span
		switch p.kind {
		case linearRamp:
			return prevV + (p.value-prevV)*frac
		case exponentialRamp:
			return prevV * math.Pow(p.value/prevV, frac)
		default:
			return prevV
		}
	}
	return prevV
}
