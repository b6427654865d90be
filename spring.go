package space

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SpringCurve eases with a unit-mass damped harmonic oscillator released at rest
// from displacement 1 toward equilibrium 0. Progress at t is 1 minus the
// oscillator's displacement after t*duration seconds, so the curve starts at 0
// and settles on 1 without a hand-picked overshoot shape.
//
// Damping is the damping ratio: below 1 the motion overshoots and rings, 1 is
// critically damped, above 1 creeps in without overshoot.
type SpringCurve struct {
	SpringConstant float64
	Damping        float64
}

// Spring returns an oscillator curve for the given stiffness and damping ratio.
func Spring(springConstant, damping float64) (SpringCurve, error) {
	if !finite(springConstant) || !finite(damping) || springConstant <= 0 || damping <= 0 {
		return SpringCurve{}, fmt.Errorf("space: spring(%g, %g): %w", springConstant, damping, ErrInvalidSpring)
	}
	return SpringCurve{SpringConstant: springConstant, Damping: damping}, nil
}

// AngularFrequency is the undamped natural frequency in radians per second.
func (s SpringCurve) AngularFrequency() float64 {
	return math.Sqrt(s.SpringConstant)
}

// Displacement returns the oscillator position after the given number of
// seconds. harmonica's coefficients are the exact closed form for any step, so
// one step of the full elapsed time is the analytic solution.
func (s SpringCurve) Displacement(seconds float64) float64 {
	if seconds <= 0 {
		return 1
	}
	pos, _ := harmonica.NewSpring(seconds, s.AngularFrequency(), s.Damping).Update(1, 0, 0)
	return pos
}

// Ease implements Easing. The end points map exactly to 0 and 1, so a short
// duration snaps onto the target even if the oscillator is still moving.
func (s SpringCurve) Ease(t float64, d time.Duration) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return 1 - s.Displacement(t*d.Seconds())
}
