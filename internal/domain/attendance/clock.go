package attendance

import (
	"fmt"
	"math"
	"time"
)

const minutesPerDay = 24 * 60

// ParseTimeOfDay converts "HH:MM:SS" (or "HH:MM") to minutes since midnight,
// rounding seconds to the nearest minute.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
	}
	minutes := t.Hour()*60 + t.Minute()
	if t.Second() >= 30 {
		minutes++
	}
	return minutes, nil
}

// WorkedMinutes computes the span from entry to exit. An exit numerically
// earlier than the entry is a shift crossing midnight, so a full day is
// added before taking the difference.
func WorkedMinutes(entryTime, exitTime string) (int, error) {
	entry, err := ParseTimeOfDay(entryTime)
	if err != nil {
		return 0, err
	}
	exit, err := ParseTimeOfDay(exitTime)
	if err != nil {
		return 0, err
	}

	worked := exit - entry
	if worked < 0 {
		worked += minutesPerDay
	}
	return worked, nil
}

// Hours converts a minute count to fractional hours rounded to 2 decimals,
// the representation exposed on the wire and in exports.
func Hours(minutes int) float64 {
	return math.Round(float64(minutes)/60.0*100) / 100
}

// FormatTimeOfDay renders minutes since midnight back to "HH:MM:SS".
func FormatTimeOfDay(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}
