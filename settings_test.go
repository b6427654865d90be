package space

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	m, err := gdata.Open(gdata.Config{AppName: "space_settings_test"})
	if err != nil {
		t.Fatalf("failed to open gdata manager: %v", err)
	}
	return m
}

func TestSettingsStoreDefaults(t *testing.T) {
	s := NewSettingsStore(openTestManager(t))
	if diff := cmp.Diff(DefaultMotionSettings(), s.Settings()); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	m := openTestManager(t)
	s1 := NewSettingsStore(m)
	s1.SetReducedMotion(true)
	s1.SetTimeScale(0.5)
	if err := s1.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s2 := NewSettingsStore(m)
	want := MotionSettings{ReducedMotion: true, TimeScale: 0.5}
	if diff := cmp.Diff(want, s2.Settings()); diff != "" {
		t.Errorf("reloaded settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsStoreNilManager(t *testing.T) {
	s := NewSettingsStore(nil)
	s.SetReducedMotion(true)
	if err := s.Save(); err != nil {
		t.Errorf("Save with nil manager: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Errorf("Load with nil manager: %v", err)
	}
	if !s.Settings().ReducedMotion {
		t.Error("in-memory setting lost")
	}
}

func TestSettingsStoreRejectsBadTimeScale(t *testing.T) {
	s := NewSettingsStore(nil)
	s.SetTimeScale(0)
	s.SetTimeScale(-3)
	if s.Settings().TimeScale != 1 {
		t.Errorf("TimeScale = %v, want 1", s.Settings().TimeScale)
	}
}

func TestSettingsStoreCorruptData(t *testing.T) {
	m := openTestManager(t)
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("timeScale: [")); err != nil {
		t.Fatal(err)
	}
	s := NewSettingsStore(m)
	if diff := cmp.Diff(DefaultMotionSettings(), s.Settings()); diff != "" {
		t.Errorf("corrupt data should leave defaults (-want +got):\n%s", diff)
	}
	if err := s.Load(); err == nil {
		t.Error("expected Load error for corrupt data")
	}
}

func TestApplySettings(t *testing.T) {
	e, host := newTestEngine(t)
	e.ApplySettings(MotionSettings{ReducedMotion: true, TimeScale: 3})
	if e.Scheduler().TimeScale() != 3 {
		t.Errorf("TimeScale = %v", e.Scheduler().TimeScale())
	}
	b := &box{}
	e.MustTween(b, Props{"x": 5}, 0, nil)
	host.Step(frame)
	if b.X != 5 {
		t.Errorf("X = %v", b.X)
	}
}
