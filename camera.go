package space

import (
	"math"
	"time"
)

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Camera controls the view into a world: position, zoom, rotation and
// viewport. Its transitions run on an engine's scheduler, so they pause,
// scale and cancel like any other tween.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// ShakeX and ShakeY are the current shake offset, added to the view
	// position by WorldToScreen.
	ShakeX, ShakeY float64

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	engine *Engine

	scroll *Record
	zoom   *Record
	shake  *Record

	follow        Observer
	followTarget  *Node
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	shakeAmp   float64
	shakeFreq  float64
	shakeStart time.Duration
}

// NewCamera creates a camera animated by engine.
func NewCamera(engine *Engine, viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
		engine:   engine,
	}
}

// Field implements Fielder.
func (c *Camera) Field(name string) *float64 {
	switch name {
	case "x":
		return &c.X
	case "y":
		return &c.Y
	case "zoom":
		return &c.Zoom
	case "rotation":
		return &c.Rotation
	}
	return nil
}

// ScrollTo animates the camera to the given world position. A scroll already
// in flight is cancelled and the new one starts from the current position.
func (c *Camera) ScrollTo(x, y float64, duration time.Duration, easing Easing) *Record {
	c.stopScroll()
	c.scroll = c.engine.sched.MustTween(c, nil, duration, easing,
		WithProps(Float("x", &c.X, x), Float("y", &c.Y, y)),
		OnUpdate(c.ClampToBounds))
	return c.scroll
}

// ScrollToTile scrolls to the center of the given tile in a tile-based layout.
func (c *Camera) ScrollToTile(tileX, tileY int, tileW, tileH float64, duration time.Duration, easing Easing) *Record {
	worldX := float64(tileX)*tileW + tileW/2
	worldY := float64(tileY)*tileH + tileH/2
	return c.ScrollTo(worldX, worldY, duration, easing)
}

// ZoomTo animates the zoom factor. Non-positive zoom panics.
func (c *Camera) ZoomTo(zoom float64, duration time.Duration, easing Easing) *Record {
	if zoom <= 0 {
		panic("space: camera zoom must be positive")
	}
	if c.zoom != nil {
		c.zoom.Cancel()
	}
	c.zoom = c.engine.sched.MustTween(c, nil, duration, easing,
		WithProps(Float("zoom", &c.Zoom, zoom)),
		OnUpdate(c.ClampToBounds))
	return c.zoom
}

// Shake jitters the view by up to amplitude world units, decaying linearly to
// rest over duration. frequency is the number of oscillations per second.
func (c *Camera) Shake(amplitude, frequency float64, duration time.Duration) *Record {
	if c.shake != nil {
		c.shake.Cancel()
	}
	c.shakeAmp = amplitude
	c.shakeFreq = frequency
	c.shakeStart = c.engine.ticker.Time()
	c.shake = c.engine.sched.MustTween(c, nil, duration, Linear,
		WithProps(Float("shake", &c.shakeAmp, 0)),
		OnUpdate(c.updateShake))
	return c.shake
}

func (c *Camera) updateShake() {
	if c.shakeAmp == 0 {
		c.ShakeX, c.ShakeY = 0, 0
		return
	}
	phase := 2 * math.Pi * c.shakeFreq * (c.engine.ticker.Time() - c.shakeStart).Seconds()
	// Incommensurate axes so the offset does not trace a line.
	c.ShakeX = c.shakeAmp * math.Sin(phase)
	c.ShakeY = c.shakeAmp * math.Cos(phase*1.3)
}

// StopShake cancels a running shake and recenters the view.
func (c *Camera) StopShake() {
	if c.shake != nil {
		c.shake.Cancel()
		c.shake = nil
	}
	c.shakeAmp = 0
	c.ShakeX, c.ShakeY = 0, 0
}

// Follow makes the camera track a target node with the given offset and lerp
// factor, applied once per tick. A lerp of 1.0 snaps immediately; lower values
// give smoother following. Following cancels any scroll in flight.
func (c *Camera) Follow(node *Node, offsetX, offsetY, lerp float64) {
	c.stopScroll()
	c.followTarget = node
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = clamp01(lerp)
	if c.follow == nil {
		c.follow = c.engine.ticker.AddFunc(c.tickFollow)
		c.engine.ticker.Start()
	}
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
	if c.follow != nil {
		c.engine.ticker.Remove(c.follow)
		c.follow = nil
	}
}

func (c *Camera) tickFollow(_, _ time.Duration, _ int) {
	n := c.followTarget
	if n == nil || n.IsDisposed() {
		c.Unfollow()
		return
	}
	c.X += (n.X + c.followOffsetX - c.X) * c.followLerp
	c.Y += (n.Y + c.followOffsetY - c.Y) * c.followLerp
	c.ClampToBounds()
}

// Stop cancels every camera transition and the follow observer.
func (c *Camera) Stop() {
	c.Unfollow()
	c.StopShake()
	c.engine.sched.ClearTween(c)
	c.scroll, c.zoom = nil, nil
}

func (c *Camera) stopScroll() {
	if c.scroll != nil {
		c.scroll.Cancel()
		c.scroll = nil
	}
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.clampToBounds()
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ClampToBounds immediately clamps the camera position so the visible area
// stays within Bounds. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center and X, Y include the shake offset.
func (c *Camera) viewMatrix() [6]float64 {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	x := c.X + c.ShakeX
	y := c.Y + c.ShakeY

	cos := math.Cos(-c.Rotation)
	sin := math.Sin(-c.Rotation)
	z := c.Zoom

	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*x+sin*y)
	ty := cy + z*(-sin*x-cos*y)
	return [6]float64{a, cc, b, d, tx, ty}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.viewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return transformPoint(invertAffine(c.viewMatrix()), sx, sy)
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return [6]float64{1, 0, 0, 1, 0, 0}
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
