package dateutil

import (
	"time"
)

// Age calculates the number of complete years between from and atDate.
// The anniversary day itself counts as a completed year.
func Age(from, atDate time.Time) int {
	age := atDate.Year() - from.Year()
	if atDate.Month() < from.Month() ||
		(atDate.Month() == from.Month() && atDate.Day() < from.Day()) {
		age--
	}
	return age
}

// YearsSince returns atDate's year minus year (same-year approximation)
func YearsSince(year int, atDate time.Time) int {
	return atDate.Year() - year
}

// Date builds a UTC midnight date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 timestamps
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
