package space

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// MotionSettings are the user's animation preferences. They persist across runs,
// unlike the live record set.
type MotionSettings struct {
	// ReducedMotion makes property tweens snap to their destinations.
	ReducedMotion bool `yaml:"reducedMotion"`
	// TimeScale slows down (< 1) or speeds up (> 1) every animation and timer.
	TimeScale float64 `yaml:"timeScale"`
}

// DefaultMotionSettings returns the settings used before anything is saved.
func DefaultMotionSettings() MotionSettings {
	return MotionSettings{TimeScale: 1}
}

const (
	settingsObject   = "motion"
	settingsProperty = "settings"
)

// SettingsStore loads and saves MotionSettings through a gdata manager. A nil
// manager keeps settings in memory only.
type SettingsStore struct {
	manager  *gdata.Manager
	settings MotionSettings
}

// OpenSettingsStore opens the platform data directory for appName.
func OpenSettingsStore(appName string) (*SettingsStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings storage: %w", err)
	}
	return NewSettingsStore(m), nil
}

// NewSettingsStore wraps manager and loads any saved settings. A load failure is
// logged and leaves the defaults in place.
func NewSettingsStore(manager *gdata.Manager) *SettingsStore {
	s := &SettingsStore{manager: manager, settings: DefaultMotionSettings()}
	if err := s.Load(); err != nil {
		log.Printf("space: failed to load motion settings: %v (using defaults)", err)
	}
	return s
}

// Settings returns the current settings.
func (s *SettingsStore) Settings() MotionSettings {
	return s.settings
}

// SetReducedMotion changes the in-memory setting. Call Save to persist it.
func (s *SettingsStore) SetReducedMotion(enabled bool) {
	s.settings.ReducedMotion = enabled
}

// SetTimeScale changes the in-memory setting. Non-positive values are ignored.
func (s *SettingsStore) SetTimeScale(scale float64) {
	if scale > 0 && finite(scale) {
		s.settings.TimeScale = scale
	}
}

// Load replaces the current settings with the saved ones. Missing data is not
// an error.
func (s *SettingsStore) Load() error {
	if s.manager == nil {
		return nil
	}
	if !s.manager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	loaded := DefaultMotionSettings()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.TimeScale <= 0 || !finite(loaded.TimeScale) {
		loaded.TimeScale = 1
	}
	s.settings = loaded
	return nil
}

// Save persists the current settings. With a nil manager it does nothing.
func (s *SettingsStore) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// ApplySettings pushes motion preferences into the engine's scheduler.
func (e *Engine) ApplySettings(m MotionSettings) {
	e.sched.SetReducedMotion(m.ReducedMotion)
	if m.TimeScale > 0 {
		e.sched.SetTimeScale(m.TimeScale)
	}
}
