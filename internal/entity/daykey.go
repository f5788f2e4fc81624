package entity

import "time"

// dayKeyLayout is the canonical day-key form: weekday, month, zero-padded
// day of month, year. A calendar day always normalizes to the same key no
// matter what time of day was captured.
const dayKeyLayout = "Mon Jan 02 2006"

// DayKey returns the canonical day key for t in t's location.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ParseDayKey parses a canonical day key back into a midnight time value.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, time.Local)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
