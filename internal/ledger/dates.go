// Package ledger provides pure aggregation functions over an in-memory
// snapshot of the transaction ledger. Nothing here touches storage or
// the wall clock; the reference date is always a parameter.
package ledger

import "time"

const dayLayout = "2006-01-02"

// DayKey formats a time as its calendar-day key ("2006-01-02").
// Day keys compare lexicographically in date order.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// MonthKey formats a time as its calendar-month key ("2006-01").
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParseDay parses a calendar-day key back into a local midnight time.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, s, time.Local)
}

// Day truncates a time to local midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysInclusive lists every calendar day from start through end.
// Returns nil when end precedes start.
func DaysInclusive(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// LastDayOfMonth reports whether t falls on the final calendar day of
// its month.
func LastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}
