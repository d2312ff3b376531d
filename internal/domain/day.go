package domain

import "time"

// dayKeyLayout is the calendar-day key format used throughout the ledger.
const dayKeyLayout = "2006-01-02"

// DayKey returns the calendar-day key for t in t's location.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ParseDayKey parses a calendar-day key back into a UTC midnight time.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(dayKeyLayout, key)
}
