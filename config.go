package space

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFPS is the frame rate LoopHost uses when none is configured.
const DefaultFPS = 60

// Config holds engine-wide defaults and named motion presets. Durations are in
// milliseconds, the unit animation call sites are written in.
//
//	defaultEasing: easeOutCubic
//	maxDeltaMs: 250
//	presets:
//	  panelOpen: {easing: easeOutExpo, duration: 400}
//	  settle:    {spring: 120, damping: 0.5, duration: 800, delay: 200}
//	  swipe:     {bezier: [0.4, 0, 0.2, 1], duration: 300}
//	colors:
//	  accent: "#5cf0d2"
type Config struct {
	DefaultEasing string                  `yaml:"defaultEasing"`
	MaxDeltaMs    float64                 `yaml:"maxDeltaMs"`
	TimeScale     float64                 `yaml:"timeScale"`
	FPS           int                     `yaml:"fps"`
	Debug         bool                    `yaml:"debug"`
	Presets       map[string]PresetConfig `yaml:"presets"`
	Colors        map[string]string       `yaml:"colors"`
}

// PresetConfig describes one named motion. Exactly one of Easing, Bezier or
// Spring selects the curve; none means the default easing.
type PresetConfig struct {
	Easing   string    `yaml:"easing,omitempty"`
	Bezier   []float64 `yaml:"bezier,omitempty"`
	Spring   float64   `yaml:"spring,omitempty"`
	Damping  float64   `yaml:"damping,omitempty"`
	Duration float64   `yaml:"duration"`
	Delay    float64   `yaml:"delay,omitempty"`
}

// Preset is a resolved PresetConfig.
type Preset struct {
	Easing   Easing
	Duration time.Duration
	Delay    time.Duration
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		DefaultEasing: DefaultEaseName,
		TimeScale:     1,
		FPS:           DefaultFPS,
	}
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates YAML config data. Missing fields keep their
// DefaultConfig values.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and preset.
func (c *Config) Validate() error {
	if c.DefaultEasing != "" {
		if _, err := LookupEase(c.DefaultEasing); err != nil {
			return fmt.Errorf("defaultEasing: %w", err)
		}
	}
	if c.MaxDeltaMs < 0 {
		return fmt.Errorf("maxDeltaMs cannot be negative, got %g", c.MaxDeltaMs)
	}
	if c.TimeScale < 0 {
		return fmt.Errorf("timeScale cannot be negative, got %g", c.TimeScale)
	}
	if c.FPS < 0 {
		return fmt.Errorf("fps cannot be negative, got %d", c.FPS)
	}
	var cache BezierCache
	for name, p := range c.Presets {
		if _, err := p.resolve(&cache, nil); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}
	for name, hex := range c.Colors {
		if _, err := ParseHex(hex); err != nil {
			return fmt.Errorf("color %q: %w", name, err)
		}
	}
	return nil
}

// MaxDelta returns MaxDeltaMs as a duration.
func (c *Config) MaxDelta() time.Duration {
	return millis(c.MaxDeltaMs)
}

// Color returns the named palette color.
func (c *Config) Color(name string) (Color, error) {
	hex, ok := c.Colors[name]
	if !ok {
		return Color{}, fmt.Errorf("space: color %q is not configured", name)
	}
	return ParseHex(hex)
}

func (p PresetConfig) resolve(cache *BezierCache, fallback Easing) (Preset, error) {
	if p.Duration < 0 {
		return Preset{}, fmt.Errorf("duration cannot be negative, got %g", p.Duration)
	}
	if p.Delay < 0 {
		return Preset{}, fmt.Errorf("delay cannot be negative, got %g", p.Delay)
	}
	selectors := 0
	if p.Easing != "" {
		selectors++
	}
	if len(p.Bezier) > 0 {
		selectors++
	}
	if p.Spring != 0 || p.Damping != 0 {
		selectors++
	}
	if selectors > 1 {
		return Preset{}, fmt.Errorf("easing, bezier and spring are mutually exclusive")
	}

	out := Preset{Easing: fallback, Duration: millis(p.Duration), Delay: millis(p.Delay)}
	switch {
	case p.Easing != "":
		e, err := LookupEase(p.Easing)
		if err != nil {
			return Preset{}, err
		}
		out.Easing = e
	case len(p.Bezier) > 0:
		if len(p.Bezier) != 4 {
			return Preset{}, fmt.Errorf("bezier needs 4 control values, got %d", len(p.Bezier))
		}
		b, err := cache.Get(p.Bezier[0], p.Bezier[1], p.Bezier[2], p.Bezier[3])
		if err != nil {
			return Preset{}, err
		}
		out.Easing = b
	case p.Spring != 0 || p.Damping != 0:
		s, err := Spring(p.Spring, p.Damping)
		if err != nil {
			return Preset{}, err
		}
		out.Easing = s
	}
	return out, nil
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
