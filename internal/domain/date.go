package domain

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ParseDate parses a "2006-01-02" string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return d, nil
}

// DateKey formats a date as its "2006-01-02" grouping key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// TruncateDate drops the clock part of t, keeping its calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n days after d. Negative n moves back.
func AddDays(d time.Time, n int) time.Time {
	return TruncateDate(d).AddDate(0, 0, n)
}

// DaysBetween returns the whole number of calendar days from a to b.
// Calendar arithmetic is used so the result is immune to DST shifts.
func DaysBetween(a, b time.Time) int {
	a, b = TruncateDate(a), TruncateDate(b)
	return int(b.Sub(a).Hours() / 24)
}

// DateRange enumerates every calendar date from start to end inclusive.
// At least one date is returned, even when end is before start.
func DateRange(start, end time.Time) []time.Time {
	start, end = TruncateDate(start), TruncateDate(end)
	dates := []time.Time{start}
	for d := AddDays(start, 1); !d.After(end); d = AddDays(d, 1) {
		dates = append(dates, d)
	}
	return dates
}

// ValidClock reports whether s is a 24-hour "HH:MM" time of day.
// The empty string is valid and means "no time".
func ValidClock(s string) bool {
	return s == "" || clockPattern.MatchString(s)
}
