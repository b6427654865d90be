package space

import (
	"errors"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node tint.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets and scales.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector used for camera and object positions.
type Vec3 struct {
	X, Y, Z float64
}

// Lerp returns v + (to-v)*t.
func (v Vec2) Lerp(to Vec2, t float64) Vec2 {
	return Vec2{lerp(v.X, to.X, t), lerp(v.Y, to.Y, t)}
}

// Lerp returns v + (to-v)*t.
func (v Vec3) Lerp(to Vec3, t float64) Vec3 {
	return Vec3{lerp(v.X, to.X, t), lerp(v.Y, to.Y, t), lerp(v.Z, to.Z, t)}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Errors returned by schedule requests. They are wrapped with call-site detail;
// test for them with errors.Is.
var (
	ErrUnknownEasing   = errors.New("unknown easing")
	ErrUnknownProperty = errors.New("unknown property")
	ErrInvalidValue    = errors.New("destination is not a finite number")
	ErrInvalidTarget   = errors.New("target must be a non-nil comparable value")
	ErrInvalidBezier   = errors.New("bezier x control points must lie in [0, 1]")
	ErrInvalidSpring   = errors.New("spring constant and damping must be positive")
)

// State is the lifecycle stage of a Record.
type State uint8

const (
	StatePending State = iota // waiting for the delay to elapse
	StateActive               // interpolating
	StateDone                 // completed or cancelled; removed from the live set
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
