// Package audio fades playback volume with a space engine. A Gain wraps any
// Volumer; ebiten's *audio.Player satisfies it directly.
package audio

import (
	"time"

	"github.com/alienkitty/space"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Volumer is the volume surface of a player.
type Volumer interface {
	Volume() float64
	SetVolume(volume float64)
}

// Pauser is implemented by players that FadeOut can stop once silent.
type Pauser interface {
	Pause()
}

// Gain is a tweenable volume in [0, 1] written through to a Volumer on every
// tick of a fade.
type Gain struct {
	// Value is the current gain. It mirrors the player volume between fades.
	Value float64

	engine *space.Engine
	player Volumer
	fade   *space.Record

	muted    bool
	preMuted float64
}

// NewGain wraps player, starting from its current volume.
func NewGain(engine *space.Engine, player Volumer) *Gain {
	return &Gain{engine: engine, player: player, Value: player.Volume()}
}

// NewPlayerGain wraps an ebiten audio player.
func NewPlayerGain(engine *space.Engine, player *ebitenaudio.Player) *Gain {
	return NewGain(engine, player)
}

// Field implements space.Fielder.
func (g *Gain) Field(name string) *float64 {
	if name == "volume" {
		return &g.Value
	}
	return nil
}

// FadeTo moves the volume to vol over d, replacing a fade in flight. vol is
// clamped to [0, 1].
func (g *Gain) FadeTo(vol float64, d time.Duration, easing space.Easing) *space.Record {
	return g.fadeTo(vol, d, easing, nil)
}

// FadeIn fades from silence to vol.
func (g *Gain) FadeIn(vol float64, d time.Duration, easing space.Easing) *space.Record {
	g.set(0)
	return g.fadeTo(vol, d, easing, nil)
}

// FadeOut fades to silence. With stop set, a player implementing Pauser is
// paused when the fade completes.
func (g *Gain) FadeOut(d time.Duration, easing space.Easing, stop bool) *space.Record {
	var done func()
	if p, ok := g.player.(Pauser); ok && stop {
		done = p.Pause
	}
	return g.fadeTo(0, d, easing, done)
}

// Fading reports whether a fade is in flight.
func (g *Gain) Fading() bool {
	return g.fade != nil && g.fade.State() != space.StateDone
}

// Stop cancels the fade in flight, leaving the volume where it is.
func (g *Gain) Stop() {
	if g.fade != nil {
		g.fade.Cancel()
		g.fade = nil
	}
}

// Mute toggles silence. Muting remembers the volume and unmuting restores it,
// both immediately.
func (g *Gain) Mute() {
	g.Stop()
	if g.muted {
		g.muted = false
		g.set(g.preMuted)
		return
	}
	g.muted = true
	g.preMuted = g.Value
	g.set(0)
}

// Muted reports whether the gain is muted.
func (g *Gain) Muted() bool { return g.muted }

func (g *Gain) fadeTo(vol float64, d time.Duration, easing space.Easing, done func()) *space.Record {
	g.Stop()
	g.muted = false
	vol = min(max(vol, 0), 1)
	opts := []space.TweenOption{space.OnUpdate(g.sync)}
	if done != nil {
		opts = append(opts, space.OnComplete(done))
	}
	g.fade = g.engine.MustTween(g, space.Props{"volume": vol}, d, easing, opts...)
	return g.fade
}

func (g *Gain) set(v float64) {
	g.Value = v
	g.player.SetVolume(v)
}

func (g *Gain) sync() {
	// Overshooting curves can leave [0, 1].
	g.player.SetVolume(min(max(g.Value, 0), 1))
}
