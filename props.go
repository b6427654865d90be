package space

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Prop binds one field of a target to a destination value. The set of
// implementations is closed: Float, Vector2, Vector3 and Tint cover numeric
// scalars, vectors and colors.
type Prop interface {
	// Name identifies the property in errors and debug output.
	Name() string

	capture()
	apply(t float64)
	finish()
	validate() error
}

// Fielder is implemented by targets whose numeric fields can be addressed by
// name. Field returns nil for names the target does not have.
type Fielder interface {
	Field(name string) *float64
}

// Props maps property names to destination values. Names are resolved through
// the target's Fielder implementation.
type Props map[string]float64

// Values is a plain record of named numbers, for targets that have no struct
// type. Tween a *Values: the pointer is the target identity. Only keys already
// present can be tweened, so a typo cannot invent a field.
type Values map[string]float64

type valuesProp struct {
	values   Values
	name     string
	from, to float64
}

func (p *valuesProp) Name() string    { return p.name }
func (p *valuesProp) capture()        { p.from = p.values[p.name] }
func (p *valuesProp) apply(t float64) { p.values[p.name] = lerp(p.from, p.to, t) }
func (p *valuesProp) finish()         { p.values[p.name] = p.to }
func (p *valuesProp) validate() error {
	_, ok := p.values[p.name]
	return validateFloat(p.name, ok, p.to)
}

func bindValues(v *Values, names []string, props Props) ([]Prop, error) {
	if *v == nil {
		return nil, fmt.Errorf("space: nil Values target: %w", ErrUnknownProperty)
	}
	bound := make([]Prop, 0, len(names))
	for _, name := range names {
		p := &valuesProp{values: *v, name: name, to: props[name]}
		if err := p.validate(); err != nil {
			return nil, err
		}
		bound = append(bound, p)
	}
	return bound, nil
}

// Float binds a float64 field.
func Float(name string, field *float64, to float64) Prop {
	return &floatProp{name: name, field: field, to: to}
}

type floatProp struct {
	name     string
	field    *float64
	from, to float64
}

func (p *floatProp) Name() string    { return p.name }
func (p *floatProp) capture()        { p.from = *p.field }
func (p *floatProp) apply(t float64) { *p.field = lerp(p.from, p.to, t) }
func (p *floatProp) finish()         { *p.field = p.to }
func (p *floatProp) validate() error { return validateFloat(p.name, p.field != nil, p.to) }

// Vector2 binds a Vec2 field.
func Vector2(name string, field *Vec2, to Vec2) Prop {
	return &vec2Prop{name: name, field: field, to: to}
}

type vec2Prop struct {
	name     string
	field    *Vec2
	from, to Vec2
}

func (p *vec2Prop) Name() string    { return p.name }
func (p *vec2Prop) capture()        { p.from = *p.field }
func (p *vec2Prop) apply(t float64) { *p.field = p.from.Lerp(p.to, t) }
func (p *vec2Prop) finish()         { *p.field = p.to }
func (p *vec2Prop) validate() error {
	if err := validateFloat(p.name+".x", p.field != nil, p.to.X); err != nil {
		return err
	}
	return validateFloat(p.name+".y", true, p.to.Y)
}

// Vector3 binds a Vec3 field.
func Vector3(name string, field *Vec3, to Vec3) Prop {
	return &vec3Prop{name: name, field: field, to: to}
}

type vec3Prop struct {
	name     string
	field    *Vec3
	from, to Vec3
}

func (p *vec3Prop) Name() string    { return p.name }
func (p *vec3Prop) capture()        { p.from = *p.field }
func (p *vec3Prop) apply(t float64) { *p.field = p.from.Lerp(p.to, t) }
func (p *vec3Prop) finish()         { *p.field = p.to }
func (p *vec3Prop) validate() error {
	for i, v := range [...]float64{p.to.X, p.to.Y, p.to.Z} {
		if err := validateFloat(fmt.Sprintf("%s[%d]", p.name, i), p.field != nil, v); err != nil {
			return err
		}
	}
	return nil
}

// ColorSpace selects how Tint blends the color channels.
type ColorSpace uint8

const (
	BlendRGB ColorSpace = iota // straight per-channel interpolation
	BlendLab                   // perceptually uniform CIE L*a*b* interpolation
	BlendHcl                   // hue-chroma-luminance, keeps saturation through the blend
)

// Tint binds a Color field, blending RGB channels per channel. Alpha is always
// interpolated linearly.
func Tint(name string, field *Color, to Color) Prop {
	return TintIn(name, field, to, BlendRGB)
}

// TintIn is Tint with an explicit blend space.
func TintIn(name string, field *Color, to Color, cs ColorSpace) Prop {
	return &colorProp{name: name, field: field, to: to, space: cs}
}

type colorProp struct {
	name     string
	field    *Color
	from, to Color
	space    ColorSpace
	a, b     colorful.Color
}

func (p *colorProp) Name() string { return p.name }

func (p *colorProp) capture() {
	p.from = *p.field
	p.a = colorful.Color{R: p.from.R, G: p.from.G, B: p.from.B}
	p.b = colorful.Color{R: p.to.R, G: p.to.G, B: p.to.B}
}

func (p *colorProp) apply(t float64) {
	var c colorful.Color
	switch p.space {
	case BlendLab:
		c = p.a.BlendLab(p.b, t).Clamped()
	case BlendHcl:
		c = p.a.BlendHcl(p.b, t).Clamped()
	default:
		c = p.a.BlendRgb(p.b, t)
	}
	*p.field = Color{R: c.R, G: c.G, B: c.B, A: lerp(p.from.A, p.to.A, t)}
}

func (p *colorProp) finish() { *p.field = p.to }

func (p *colorProp) validate() error {
	for i, v := range [...]float64{p.to.R, p.to.G, p.to.B, p.to.A} {
		if err := validateFloat(fmt.Sprintf("%s[%d]", p.name, i), p.field != nil, v); err != nil {
			return err
		}
	}
	return nil
}

// ParseHex parses "#rrggbb" into an opaque Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("space: parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// Hex formats the RGB channels of c as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

func validateFloat(name string, bound bool, v float64) error {
	if !bound {
		return fmt.Errorf("space: property %q has no field: %w", name, ErrUnknownProperty)
	}
	if !finite(v) {
		return fmt.Errorf("space: property %q = %g: %w", name, v, ErrInvalidValue)
	}
	return nil
}

// bindProps resolves named destinations against target. Names are bound in
// sorted order so runs are reproducible.
func bindProps(target any, props Props) ([]Prop, error) {
	if len(props) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	if v, ok := target.(*Values); ok {
		return bindValues(v, names, props)
	}
	f, ok := target.(Fielder)
	if !ok {
		return nil, fmt.Errorf("space: target %T does not expose named fields: %w", target, ErrUnknownProperty)
	}
	bound := make([]Prop, 0, len(names))
	for _, name := range names {
		p := Float(name, f.Field(name), props[name])
		if err := p.validate(); err != nil {
			return nil, err
		}
		bound = append(bound, p)
	}
	return bound, nil
}
