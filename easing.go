package space

import (
	"fmt"
	"sort"
	"time"

	"github.com/tanema/gween/ease"
)

// Easing maps normalized progress t in [0, 1] to eased progress. The result is
// not restricted to [0, 1]: back, elastic and spring curves overshoot.
//
// d is the duration of the tween being eased. Only time-based curves such as
// Spring read it; shape curves ignore it.
type Easing interface {
	Ease(t float64, d time.Duration) float64
}

// EaseFunc adapts a plain function of progress to the Easing interface.
type EaseFunc func(t float64) float64

// Ease implements Easing.
func (f EaseFunc) Ease(t float64, _ time.Duration) float64 {
	return f(t)
}

// Gween adapts a gween easing function (t, begin, change, duration) to Easing.
func Gween(fn ease.TweenFunc) Easing {
	return EaseFunc(func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		// gween works in float32; interior values carry about 1e-7 error.
		return float64(fn(float32(t), 0, 1, 1))
	})
}

// Linear is the identity curve.
var Linear Easing = EaseFunc(func(t float64) float64 { return t })

// DefaultEaseName is the curve used when a tween is scheduled with a nil Easing.
const DefaultEaseName = "easeOutCubic"

var easeRegistry = map[string]Easing{
	"linear": Linear,

	"easeInSine":    Gween(ease.InSine),
	"easeOutSine":   Gween(ease.OutSine),
	"easeInOutSine": Gween(ease.InOutSine),

	"easeInQuad":    Gween(ease.InQuad),
	"easeOutQuad":   Gween(ease.OutQuad),
	"easeInOutQuad": Gween(ease.InOutQuad),

	"easeInCubic":    Gween(ease.InCubic),
	"easeOutCubic":   Gween(ease.OutCubic),
	"easeInOutCubic": Gween(ease.InOutCubic),

	"easeInQuart":    Gween(ease.InQuart),
	"easeOutQuart":   Gween(ease.OutQuart),
	"easeInOutQuart": Gween(ease.InOutQuart),

	"easeInQuint":    Gween(ease.InQuint),
	"easeOutQuint":   Gween(ease.OutQuint),
	"easeInOutQuint": Gween(ease.InOutQuint),

	"easeInExpo":    Gween(ease.InExpo),
	"easeOutExpo":   Gween(ease.OutExpo),
	"easeInOutExpo": Gween(ease.InOutExpo),

	"easeInCirc":    Gween(ease.InCirc),
	"easeOutCirc":   Gween(ease.OutCirc),
	"easeInOutCirc": Gween(ease.InOutCirc),

	"easeInBack":    Gween(ease.InBack),
	"easeOutBack":   Gween(ease.OutBack),
	"easeInOutBack": Gween(ease.InOutBack),

	"easeInElastic":    Gween(ease.InElastic),
	"easeOutElastic":   Gween(ease.OutElastic),
	"easeInOutElastic": Gween(ease.InOutElastic),

	"easeInBounce":    Gween(ease.InBounce),
	"easeOutBounce":   Gween(ease.OutBounce),
	"easeInOutBounce": Gween(ease.InOutBounce),

	// CSS timing keywords.
	"ease":        mustBezier(0.25, 0.1, 0.25, 1),
	"ease-in":     mustBezier(0.42, 0, 1, 1),
	"ease-out":    mustBezier(0, 0, 0.58, 1),
	"ease-in-out": mustBezier(0.42, 0, 0.58, 1),
}

// LookupEase returns the named curve.
func LookupEase(name string) (Easing, error) {
	e, ok := easeRegistry[name]
	if !ok {
		return nil, fmt.Errorf("space: easing %q: %w", name, ErrUnknownEasing)
	}
	return e, nil
}

// Ease returns the named curve and panics if the name is not registered.
// Use it for literal names at the call site; use LookupEase for names that come
// from data.
func Ease(name string) Easing {
	e, err := LookupEase(name)
	if err != nil {
		panic(err)
	}
	return e
}

// RegisterEase adds or replaces a named curve. Registration is not safe for
// concurrent use and is meant for program initialization.
func RegisterEase(name string, e Easing) {
	if e == nil {
		panic("space: cannot register nil easing")
	}
	easeRegistry[name] = e
}

// EaseNames returns the registered curve names in sorted order.
func EaseNames() []string {
	names := make([]string, 0, len(easeRegistry))
	for name := range easeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate maps t through the named curve.
func Evaluate(name string, t float64) (float64, error) {
	e, err := LookupEase(name)
	if err != nil {
		return 0, err
	}
	return e.Ease(t, 0), nil
}
