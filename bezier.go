package space

import (
	"fmt"
	"math"
	"time"

	"honnef.co/go/curve"
)

const (
	bezierTolerance     = curve.DefaultAccuracy
	bezierNewtonIters   = 8
	bezierBisectIters   = 64
	bezierMinDerivative = 1e-6
)

// CubicBezier is a timing curve from (0,0) to (1,1) with control points
// (X1,Y1) and (X2,Y2), as in CSS cubic-bezier(). Ease solves the curve for y at
// x = t.
type CubicBezier struct {
	X1, Y1, X2, Y2 float64

	bez   curve.CubicBez
	deriv curve.QuadBez
}

// Bezier returns a cubic-bezier curve. The x coordinates must lie in [0, 1] so
// the curve is a function of x.
func Bezier(x1, y1, x2, y2 float64) (*CubicBezier, error) {
	for _, v := range [...]float64{x1, y1, x2, y2} {
		if !finite(v) {
			return nil, fmt.Errorf("space: bezier(%g, %g, %g, %g): %w", x1, y1, x2, y2, ErrInvalidValue)
		}
	}
	if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return nil, fmt.Errorf("space: bezier(%g, %g, %g, %g): %w", x1, y1, x2, y2, ErrInvalidBezier)
	}
	bez := curve.CubicBez{
		P0: curve.Pt(0, 0),
		P1: curve.Pt(x1, y1),
		P2: curve.Pt(x2, y2),
		P3: curve.Pt(1, 1),
	}
	return &CubicBezier{X1: x1, Y1: y1, X2: x2, Y2: y2, bez: bez, deriv: bez.Differentiate()}, nil
}

func mustBezier(x1, y1, x2, y2 float64) *CubicBezier {
	c, err := Bezier(x1, y1, x2, y2)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *CubicBezier) sampleX(s float64) float64 { return c.bez.Eval(s).X }

func (c *CubicBezier) sampleY(s float64) float64 { return c.bez.Eval(s).Y }

func (c *CubicBezier) sampleDX(s float64) float64 { return c.deriv.Eval(s).X }

// solve finds the curve parameter s whose x equals x. Newton-Raphson converges
// in a few steps on well-behaved curves; flat spots fall back to bisection,
// which always terminates because x(s) is monotonic on [0, 1].
func (c *CubicBezier) solve(x float64) float64 {
	s := x
	for i := 0; i < bezierNewtonIters; i++ {
		err := c.sampleX(s) - x
		if math.Abs(err) < bezierTolerance {
			return s
		}
		d := c.sampleDX(s)
		if math.Abs(d) < bezierMinDerivative {
			break
		}
		s -= err / d
	}

	lo, hi := 0.0, 1.0
	s = x
	for i := 0; i < bezierBisectIters && lo < hi; i++ {
		v := c.sampleX(s)
		if math.Abs(v-x) < bezierTolerance {
			return s
		}
		if x > v {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}

// Ease implements Easing. The end points map exactly to 0 and 1.
func (c *CubicBezier) Ease(t float64, _ time.Duration) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return c.sampleY(c.solve(t))
}

type bezierKey [4]float64

// BezierCache memoizes curves by their control tuple. The zero value is ready to
// use. It is not safe for concurrent use.
type BezierCache struct {
	curves map[bezierKey]*CubicBezier
}

// Get returns the cached curve for the tuple, building it on first use.
func (bc *BezierCache) Get(x1, y1, x2, y2 float64) (*CubicBezier, error) {
	key := bezierKey{x1, y1, x2, y2}
	if c, ok := bc.curves[key]; ok {
		return c, nil
	}
	c, err := Bezier(x1, y1, x2, y2)
	if err != nil {
		return nil, err
	}
	if bc.curves == nil {
		bc.curves = make(map[bezierKey]*CubicBezier)
	}
	bc.curves[key] = c
	return c, nil
}

// Len reports the number of cached curves.
func (bc *BezierCache) Len() int {
	return len(bc.curves)
}
