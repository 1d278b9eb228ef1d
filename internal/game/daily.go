package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfiguration is returned when the daily selector is asked for
// more characters than the catalog holds. This is a startup-time
// misconfiguration and should be treated as fatal by the caller.
var ErrInvalidConfiguration = errors.New("invalid game configuration")

// launchDate is day #1 of the daily challenge.
var launchDate = time.Date(2025, time.April, 26, 0, 0, 0, 0, time.UTC)

// DailySeed derives the shared daily seed from a calendar date:
// year*10000 + month*100 + day. Distinct per day, and identical for every
// player as long as callers agree on what "today" is.
func DailySeed(t time.Time) int64 {
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// SelectDaily deterministically picks count characters from catalog for the
// given date. Every caller gets the same subset in the same order.
func SelectDaily(catalog []Character, t time.Time, count int) ([]Character, error) {
	if count > len(catalog) {
		return nil, fmt.Errorf("%w: want %d daily characters but catalog has %d", ErrInvalidConfiguration, count, len(catalog))
	}
	shuffled := SeededShuffle(catalog, DailySeed(t))
	return shuffled[:count], nil
}

// DateKey returns the canonical day key used to detect date rollover.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DateString returns the human-readable date shown in the share message,
// e.g. "April 26, 2025".
func DateString(t time.Time) string {
	return t.Format("January 2, 2006")
}

// GameNumber returns the 1-based puzzle number for the given date,
// counting days since launch. Dates before launch yield numbers <= 0.
func GameNumber(t time.Time) int {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(launchDate).Hours()/24) + 1
}
