// File: services/availability/intervals.go
package availability

import (
	"fmt"
	"time"

	"lengolf/models"
)

// Business day boundaries and scan granularity, minutes from midnight.
const (
	OpenMinute  = 9 * 60  // 09:00
	CloseMinute = 24 * 60 // midnight, exclusive
	StepMinutes = 30
)

// FallbackDurationMin is the duration retried when a requested duration has
// zero availability in a whole-day summary.
const FallbackDurationMin = 60

// Overlaps reports whether the candidate slot [start, start+duration)
// overlaps the busy interval. Half-open on both sides, so touching
// endpoints do not conflict.
func Overlaps(start, duration int, b models.BusyInterval) bool {
	return start < b.End && start+duration > b.Start
}

// SlotFree reports whether no interval in the set overlaps the candidate.
func SlotFree(start, duration int, intervals []models.BusyInterval) bool {
	for _, b := range intervals {
		if Overlaps(start, duration, b) {
			return false
		}
	}
	return true
}

// MinuteOfDay parses "HH:MM" into minutes from midnight. "24:00" names the
// exclusive closing boundary; anything past the colon pair is rejected.
func MinuteOfDay(s string) (int, error) {
	if s == "24:00" {
		return CloseMinute, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinute renders minutes from midnight as "HH:MM".
func FormatMinute(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
