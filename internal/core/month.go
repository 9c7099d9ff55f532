package core

import (
	"sort"
	"time"
)

// MonthKeyLayout is the display format used as the month-year bucket key,
// e.g. "January 2026".
const MonthKeyLayout = "January 2006"

// MonthKeyFor returns the month-year bucket key for a point in time.
func MonthKeyFor(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// CurrentMonthKey returns the effective month key, shifted by the persisted
// debug offset in whole months. Callers thread now explicitly so every
// derivation stays deterministic.
func CurrentMonthKey(now time.Time, debugOffset int) string {
	return MonthKeyFor(now.AddDate(0, debugOffset, 0))
}

// ParseMonthKey parses a month-year bucket key. Unparsable keys fall back to
// the given time, which keeps malformed historical data renderable at the
// cost of possibly misordering it.
func ParseMonthKey(key string, fallback time.Time) time.Time {
	t, err := time.Parse(MonthKeyLayout, key)
	if err != nil {
		return fallback
	}
	return t
}

// SortMonthKeysDesc returns the keys ordered newest month first. The input
// slice is not modified.
func SortMonthKeysDesc(keys []string, now time.Time) []string {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ParseMonthKey(sorted[i], now).After(ParseMonthKey(sorted[j], now))
	})
	return sorted
}

// CalendarDaysLeft returns the number of calendar days between now and the
// end of the current month.
func CalendarDaysLeft(now time.Time) int {
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	lastDay := firstOfNext.AddDate(0, 0, -1)
	return lastDay.Day() - now.Day()
}
