package repo

import "testing"

func TestLoadSettingsAbsent(t *testing.T) {
	s := newTestStore(t)

	got := LoadSettings(s)
	if got != DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, want defaults", got)
	}
	if got.DailyGoal != 5 {
		t.Errorf("DailyGoal = %d, want 5", got.DailyGoal)
	}
}

func TestLoadSettingsStored(t *testing.T) {
	s := newTestStore(t)
	if err := s.Write(SettingsKey, []byte(`{"theme":"light","dailyGoal":8}`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got := LoadSettings(s)
	if got.Theme != "light" {
		t.Errorf("Theme = %q, want light", got.Theme)
	}
	if got.DailyGoal != 8 {
		t.Errorf("DailyGoal = %d, want 8", got.DailyGoal)
	}
	// Fields the stored object omits keep their defaults.
	if got.TimeFormat != "24h" {
		t.Errorf("TimeFormat = %q, want 24h default", got.TimeFormat)
	}
}

func TestLoadSettingsMalformed(t *testing.T) {
	s := newTestStore(t)
	// Valid JSON, wrong shape. Defaults win.
	if err := s.Write(SettingsKey, []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if got := LoadSettings(s); got != DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, want defaults", got)
	}
}
