package space

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

const frame = 16 * time.Millisecond

// newTestEngine returns an engine on a manual host with default config.
func newTestEngine(t *testing.T) (*Engine, *ManualHost) {
	t.Helper()
	host := NewManualHost()
	e, err := NewEngine(host, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, host
}

// box is a Fielder target with two fields.
type box struct {
	X, Y float64
}

func (b *box) Field(name string) *float64 {
	switch name {
	case "x":
		return &b.X
	case "y":
		return &b.Y
	}
	return nil
}

func nan() float64 { return math.NaN() }
