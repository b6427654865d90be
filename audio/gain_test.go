package audio

import (
	"math"
	"testing"
	"time"

	"github.com/alienkitty/space"
)

type fakePlayer struct {
	volume float64
	sets   int
	paused bool
}

func (p *fakePlayer) Volume() float64 { return p.volume }

func (p *fakePlayer) SetVolume(v float64) {
	p.volume = v
	p.sets++
}

func (p *fakePlayer) Pause() { p.paused = true }

func newTestGain(t *testing.T, volume float64) (*Gain, *fakePlayer, *space.ManualHost) {
	t.Helper()
	host := space.NewManualHost()
	engine := space.MustEngine(host, nil)
	p := &fakePlayer{volume: volume}
	return NewGain(engine, p), p, host
}

func TestFadeToWritesPlayer(t *testing.T) {
	g, p, host := newTestGain(t, 1)
	g.FadeTo(0.5, 100*time.Millisecond, space.Linear)
	host.Step(50 * time.Millisecond)
	if math.Abs(p.volume-0.75) > 1e-9 {
		t.Errorf("volume = %v, want 0.75", p.volume)
	}
	host.Step(50 * time.Millisecond)
	if p.volume != 0.5 || g.Value != 0.5 {
		t.Errorf("volume = %v, gain = %v, want 0.5", p.volume, g.Value)
	}
	if g.Fading() {
		t.Error("still fading after completion")
	}
}

func TestFadeToClampsTarget(t *testing.T) {
	g, p, host := newTestGain(t, 0.2)
	g.FadeTo(3, 10*time.Millisecond, space.Linear)
	host.Step(20 * time.Millisecond)
	if p.volume != 1 {
		t.Errorf("volume = %v, want clamped 1", p.volume)
	}
}

func TestFadeOvershootIsClampedAtPlayer(t *testing.T) {
	g, p, host := newTestGain(t, 0)
	g.FadeTo(1, 100*time.Millisecond, space.Ease("easeOutBack"))
	for i := 0; i < 10; i++ {
		host.Step(10 * time.Millisecond)
		if p.volume < 0 || p.volume > 1 {
			t.Fatalf("player volume %v out of range", p.volume)
		}
	}
}

func TestFadeInStartsSilent(t *testing.T) {
	g, p, host := newTestGain(t, 0.8)
	g.FadeIn(0.6, 100*time.Millisecond, space.Linear)
	if p.volume != 0 {
		t.Errorf("volume = %v, want 0 at fade start", p.volume)
	}
	host.Step(50 * time.Millisecond)
	if math.Abs(p.volume-0.3) > 1e-9 {
		t.Errorf("volume = %v, want 0.3", p.volume)
	}
}

func TestFadeOutStop(t *testing.T) {
	g, p, host := newTestGain(t, 1)
	g.FadeOut(50*time.Millisecond, nil, true)
	host.Step(30 * time.Millisecond)
	if p.paused {
		t.Fatal("paused before the fade finished")
	}
	host.Step(30 * time.Millisecond)
	if !p.paused || p.volume != 0 {
		t.Errorf("paused = %v, volume = %v", p.paused, p.volume)
	}
}

func TestFadeOutWithoutStopKeepsPlaying(t *testing.T) {
	g, p, host := newTestGain(t, 1)
	g.FadeOut(10*time.Millisecond, nil, false)
	host.Step(20 * time.Millisecond)
	if p.paused {
		t.Error("paused without stop")
	}
}

func TestNewFadeReplacesOld(t *testing.T) {
	g, p, host := newTestGain(t, 1)
	first := g.FadeOut(100*time.Millisecond, space.Linear, true)
	host.Step(50 * time.Millisecond)
	g.FadeTo(1, 50*time.Millisecond, space.Linear)
	if !first.Cancelled() {
		t.Error("earlier fade not cancelled")
	}
	host.Advance(200*time.Millisecond, 10*time.Millisecond)
	if p.paused || p.volume != 1 {
		t.Errorf("paused = %v, volume = %v", p.paused, p.volume)
	}
}

func TestMuteToggle(t *testing.T) {
	g, p, host := newTestGain(t, 0.7)
	g.FadeTo(0.4, time.Second, space.Linear)
	host.Step(100 * time.Millisecond)
	level := g.Value

	g.Mute()
	if !g.Muted() || p.volume != 0 || g.Fading() {
		t.Errorf("muted = %v, volume = %v, fading = %v", g.Muted(), p.volume, g.Fading())
	}
	host.Step(100 * time.Millisecond)
	if p.volume != 0 {
		t.Error("cancelled fade kept writing while muted")
	}
	g.Mute()
	if g.Muted() || p.volume != level {
		t.Errorf("unmuted volume = %v, want %v", p.volume, level)
	}
}

func TestGainField(t *testing.T) {
	g, _, _ := newTestGain(t, 0.5)
	if g.Field("volume") != &g.Value {
		t.Error("volume field not addressed")
	}
	if g.Field("pan") != nil {
		t.Error("unknown field resolved")
	}
}
