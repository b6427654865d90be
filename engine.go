package space

import (
	"fmt"
	"time"
)

// Engine is the per-process animation context: one Ticker, one Scheduler and
// the resolved configuration. Components that animate receive the *Engine
// they should use instead of reaching for a package-level singleton.
type Engine struct {
	ticker  *Ticker
	sched   *Scheduler
	config  *Config
	presets map[string]Preset
	beziers BezierCache
}

// NewEngine builds an engine driven by host. A nil cfg uses DefaultConfig.
func NewEngine(host Host, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("space: engine config: %w", err)
	}
	e := &Engine{
		ticker:  NewTicker(host),
		config:  cfg,
		presets: make(map[string]Preset, len(cfg.Presets)),
	}
	e.ticker.MaxDelta = cfg.MaxDelta()
	e.sched = NewScheduler(e.ticker)
	e.sched.SetDebugMode(cfg.Debug)
	if cfg.TimeScale > 0 {
		e.sched.SetTimeScale(cfg.TimeScale)
	}
	if cfg.DefaultEasing != "" {
		e.sched.SetDefaultEasing(Ease(cfg.DefaultEasing))
	}
	for name, pc := range cfg.Presets {
		p, err := pc.resolve(&e.beziers, e.sched.defaultEase)
		if err != nil {
			return nil, fmt.Errorf("space: preset %q: %w", name, err)
		}
		e.presets[name] = p
	}
	return e, nil
}

// MustEngine is NewEngine for configurations known to be valid.
func MustEngine(host Host, cfg *Config) *Engine {
	e, err := NewEngine(host, cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Ticker returns the engine's ticker.
func (e *Engine) Ticker() *Ticker { return e.ticker }

// Scheduler returns the engine's scheduler.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() *Config { return e.config }

// Tween schedules an interpolation. See Scheduler.Tween.
func (e *Engine) Tween(target any, props Props, duration time.Duration, easing Easing, opts ...TweenOption) (*Record, error) {
	return e.sched.Tween(target, props, duration, easing, opts...)
}

// MustTween schedules an interpolation and panics on an invalid request.
func (e *Engine) MustTween(target any, props Props, duration time.Duration, easing Easing, opts ...TweenOption) *Record {
	return e.sched.MustTween(target, props, duration, easing, opts...)
}

// ClearTween cancels the records of a target, or a single record handle.
func (e *Engine) ClearTween(targetOrHandle any) {
	e.sched.ClearTween(targetOrHandle)
}

// DelayedCall runs fn after d. See Scheduler.DelayedCall.
func (e *Engine) DelayedCall(d time.Duration, fn func()) *Record {
	return e.sched.DelayedCall(d, fn)
}

// Defer resolves on the next tick.
func (e *Engine) Defer() *Deferred {
	return e.sched.Defer()
}

// Wait resolves after d.
func (e *Engine) Wait(d time.Duration) *Deferred {
	return e.sched.Wait(d)
}

// Preset returns a configured motion preset.
func (e *Engine) Preset(name string) (Preset, error) {
	p, ok := e.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("space: preset %q is not configured", name)
	}
	return p, nil
}

// TweenPreset schedules props with the duration, delay and curve of a preset.
// Options given here are applied after the preset, so an explicit Delay wins.
func (e *Engine) TweenPreset(target any, props Props, preset string, opts ...TweenOption) (*Record, error) {
	p, err := e.Preset(preset)
	if err != nil {
		return nil, err
	}
	all := make([]TweenOption, 0, len(opts)+1)
	all = append(all, Delay(p.Delay))
	all = append(all, opts...)
	return e.sched.Tween(target, props, p.Duration, p.Easing, all...)
}

// Bezier returns a cubic-bezier curve from the engine's curve cache.
func (e *Engine) Bezier(x1, y1, x2, y2 float64) (*CubicBezier, error) {
	return e.beziers.Get(x1, y1, x2, y2)
}
