package space

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestValuesTween(t *testing.T) {
	e, host := newTestEngine(t)
	v := &Values{"opacity": 0, "blur": 10}
	e.MustTween(v, Props{"opacity": 1, "blur": 0}, 100*time.Millisecond, Linear)
	host.Step(50 * time.Millisecond)

	want := Values{"opacity": 0.5, "blur": 5}
	if diff := cmp.Diff(want, *v, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	host.Step(50 * time.Millisecond)
	if diff := cmp.Diff(Values{"opacity": 1, "blur": 0}, *v); diff != "" {
		t.Errorf("final values mismatch (-want +got):\n%s", diff)
	}
}

func TestValuesUnknownKey(t *testing.T) {
	e, _ := newTestEngine(t)
	v := &Values{"opacity": 0}
	if _, err := e.Tween(v, Props{"opcity": 1}, time.Second, nil); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("err = %v, want ErrUnknownProperty", err)
	}
	var empty Values
	if _, err := e.Tween(&empty, Props{"x": 1}, time.Second, nil); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("nil Values: err = %v, want ErrUnknownProperty", err)
	}
}

func TestVectorBindings(t *testing.T) {
	e, host := newTestEngine(t)
	type body struct {
		Pos  Vec2
		Pos3 Vec3
	}
	b := &body{Pos: Vec2{0, 10}}
	e.MustTween(b, nil, 100*time.Millisecond, Linear, WithProps(
		Vector2("pos", &b.Pos, Vec2{10, 0}),
		Vector3("pos3", &b.Pos3, Vec3{2, 4, 6}),
	))
	host.Step(50 * time.Millisecond)
	if diff := cmp.Diff(Vec2{5, 5}, b.Pos, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Pos mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Vec3{1, 2, 3}, b.Pos3, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Pos3 mismatch (-want +got):\n%s", diff)
	}
	host.Step(50 * time.Millisecond)
	if b.Pos != (Vec2{10, 0}) || b.Pos3 != (Vec3{2, 4, 6}) {
		t.Errorf("final = %v %v", b.Pos, b.Pos3)
	}
}

func TestVectorInvalid(t *testing.T) {
	e, _ := newTestEngine(t)
	var v Vec3
	_, err := e.Tween(&v, nil, time.Second, nil, WithProps(Vector3("v", &v, Vec3{0, nan(), 0})))
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("err = %v, want ErrInvalidValue", err)
	}
}

func TestTintRGB(t *testing.T) {
	e, host := newTestEngine(t)
	c := &Color{R: 1, G: 0, B: 0, A: 1}
	e.MustTween(c, nil, 100*time.Millisecond, Linear, WithProps(Tint("tint", c, Color{R: 0, G: 1, B: 0.5, A: 0})))
	host.Step(50 * time.Millisecond)
	want := Color{R: 0.5, G: 0.5, B: 0.25, A: 0.5}
	if diff := cmp.Diff(want, *c, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("color mismatch (-want +got):\n%s", diff)
	}
	host.Step(50 * time.Millisecond)
	if *c != (Color{R: 0, G: 1, B: 0.5, A: 0}) {
		t.Errorf("final color = %+v", *c)
	}
}

func TestTintBlendSpacesConverge(t *testing.T) {
	for _, cs := range []ColorSpace{BlendRGB, BlendLab, BlendHcl} {
		e, host := newTestEngine(t)
		c := &Color{R: 0.2, G: 0.4, B: 0.9, A: 1}
		to := Color{R: 0.9, G: 0.5, B: 0.1, A: 1}
		e.MustTween(c, nil, 100*time.Millisecond, nil, WithProps(TintIn("tint", c, to, cs)))
		host.Step(40 * time.Millisecond)
		for _, ch := range []float64{c.R, c.G, c.B} {
			if ch < 0 || ch > 1 {
				t.Errorf("space %d: channel %v out of range", cs, ch)
			}
		}
		host.Step(60 * time.Millisecond)
		if *c != to {
			t.Errorf("space %d: final %+v, want %+v", cs, *c, to)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	want := Color{R: 1, G: 128.0 / 255, B: 0, A: 1}
	if diff := cmp.Diff(want, c, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("ParseHex mismatch (-want +got):\n%s", diff)
	}
	if c.Hex() != "#ff8000" {
		t.Errorf("Hex = %q", c.Hex())
	}
	if _, err := ParseHex("orange"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestNamedPropsBindInSortedOrder(t *testing.T) {
	bound, err := bindProps(&box{}, Props{"y": 1, "x": 2})
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(bound))
	for i, p := range bound {
		names[i] = p.Name()
	}
	if diff := cmp.Diff([]string{"x", "y"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
