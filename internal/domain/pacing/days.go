// Package pacing holds the adaptive pacing algorithms: the
// maghrib-bounded day clock, the daily target calculator, the prayer
// split, and the pace projection. Everything here is a pure function
// of its inputs; settings like the maghrib time are threaded in as
// parameters, never read from ambient state.
package pacing

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultMaghribTime is the fallback day-boundary cutoff.
const DefaultMaghribTime = "18:00"

// ErrBadCutoff indicates a cutoff string that is not HH:MM.
var ErrBadCutoff = errors.New("maghrib time must be HH:MM")

// ParseCutoff validates and splits an HH:MM cutoff string.
// PRE: none
// POST: returns hour in 0..23 and minute in 0..59, or ErrBadCutoff
func ParseCutoff(cutoff string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(cutoff, "%2d:%2d", &hour, &minute); err != nil {
		return 0, 0, ErrBadCutoff
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrBadCutoff
	}
	return hour, minute, nil
}

// EffectiveDate returns the instant whose calendar date is the current
// logical day. The tracked day begins at maghrib, not midnight: at or
// after the cutoff the logical date advances one calendar day.
// Malformed cutoffs fall back to DefaultMaghribTime; validation
// belongs to the settings boundary.
func EffectiveDate(now time.Time, maghribTime string) time.Time {
	hour, minute, err := ParseCutoff(maghribTime)
	if err != nil {
		hour, minute, _ = ParseCutoff(DefaultMaghribTime)
	}
	boundary := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !now.Before(boundary) {
		return now.AddDate(0, 0, 1)
	}
	return now
}

// DaysRemaining counts calendar days from the current logical day to
// the target date, clamped at 0 so past deadlines never go negative.
// PRE: target is a valid instant
// POST: returns an integer >= 0
func DaysRemaining(now, target time.Time, maghribTime string) int {
	effective := EffectiveDate(now, maghribTime)
	days := calendarDaysBetween(effective, target)
	if days < 0 {
		return 0
	}
	return days
}

// SameLogicalDay reports whether ts falls on the current logical day.
func SameLogicalDay(ts, now time.Time, maghribTime string) bool {
	return calendarDaysBetween(ts, EffectiveDate(now, maghribTime)) == 0
}

// calendarDaysBetween is the difference in calendar dates, ignoring
// time of day. Rounding absorbs DST-shortened or -lengthened days.
func calendarDaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(math.Round(t.Sub(f).Hours() / 24))
}

// fullDaysBetween is the number of complete 24-hour periods between
// two instants, used by the projection's elapsed-time pace.
func fullDaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
