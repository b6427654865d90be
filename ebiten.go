package space

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// EbitenHost is a Host driven by Ebitengine's fixed update loop. Each Update
// advances host time by one tick period (1/TPS) and runs the frame callbacks,
// so animation time follows game ticks rather than wall time.
type EbitenHost struct {
	now   time.Duration
	queue frameQueue
}

// NewEbitenHost returns a host at time zero.
func NewEbitenHost() *EbitenHost {
	return &EbitenHost{}
}

// Now implements Host.
func (h *EbitenHost) Now() time.Duration { return h.now }

// RequestFrame implements Host.
func (h *EbitenHost) RequestFrame(fn func(time.Duration)) {
	h.queue.push(fn)
}

// Update advances one tick period and runs one frame. Call it from the game's
// Update method.
func (h *EbitenHost) Update() {
	h.now += tickPeriod(ebiten.TPS())
	h.queue.flush(h.now)
}

func tickPeriod(tps int) time.Duration {
	if tps <= 0 {
		tps = DefaultFPS
	}
	return time.Second / time.Duration(tps)
}

// Scene is what a Game drives: per-tick logic after the engine has advanced,
// and drawing.
type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Game adapts an engine and a scene to ebiten.Game. Tweens advance before the
// scene's Update, so the scene sees this tick's values.
type Game struct {
	Engine *Engine
	Scene  Scene

	// ScreenWidth and ScreenHeight are the fixed logical screen size.
	ScreenWidth, ScreenHeight int
	// ClearColor fills the screen before Scene.Draw when set.
	ClearColor *Color
	// ShowStats draws FPS, TPS and the live record count in the top-left corner.
	ShowStats bool

	host *EbitenHost
}

// NewGame builds an engine on an EbitenHost and wraps scene. A nil cfg uses
// DefaultConfig.
func NewGame(scene Scene, width, height int, cfg *Config) (*Game, error) {
	host := NewEbitenHost()
	engine, err := NewEngine(host, cfg)
	if err != nil {
		return nil, err
	}
	return &Game{
		Engine:       engine,
		Scene:        scene,
		ScreenWidth:  width,
		ScreenHeight: height,
		host:         host,
	}, nil
}

// Host returns the game's frame source.
func (g *Game) Host() *EbitenHost { return g.host }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.host.Update()
	if g.Scene == nil {
		return nil
	}
	return g.Scene.Update()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.ClearColor != nil {
		screen.Fill(g.ClearColor.RGBA())
	}
	if g.Scene != nil {
		g.Scene.Draw(screen)
	}
	if g.ShowStats {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTweens: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.Engine.sched.Len()))
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// RunGame opens a window with the given title and runs g until the window
// closes or Scene.Update returns an error.
func RunGame(title string, g *Game) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.ScreenWidth, g.ScreenHeight)
	if g.Engine.config.FPS > 0 {
		ebiten.SetTPS(g.Engine.config.FPS)
	}
	return ebiten.RunGame(g)
}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}
