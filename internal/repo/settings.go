package repo

import (
	"encoding/json"

	"mynotion/internal/store"
)

// SettingsKey is the storage key for display preferences. The core treats
// the settings object as read-only; the settings view owns writing it.
const SettingsKey = "appSettings"

// Settings is the subset of stored display preferences the dashboard
// consumes. Unknown fields in the stored object are ignored, never dropped
// on disk, since the core only ever reads this key.
type Settings struct {
	Theme       string `json:"theme"`
	TimeFormat  string `json:"timeFormat"` // "12h" or "24h"
	DateFormat  string `json:"dateFormat"`
	ShowSeconds bool   `json:"showSeconds"`
	CompactMode bool   `json:"compactMode"`
	WeekStart   string `json:"weekStart"`
	DailyGoal   int    `json:"dailyGoal"`
}

// DefaultSettings returns the preferences assumed when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Theme:       "dark",
		TimeFormat:  "24h",
		DateFormat:  "MM/DD/YYYY",
		ShowSeconds: true,
		WeekStart:   "monday",
		DailyGoal:   5,
	}
}

// LoadSettings reads display preferences, falling back to defaults when the
// key is absent or unreadable.
func LoadSettings(s *store.Store) Settings {
	settings := DefaultSettings()
	data, ok, err := s.Read(SettingsKey)
	if err != nil || !ok {
		return settings
	}
	// Malformed settings degrade to defaults the same way a malformed
	// collection degrades to empty.
	_ = json.Unmarshal(data, &settings)
	return settings
}
