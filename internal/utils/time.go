package utils

import "time"

// DateLayout is the calendar date format used in URLs and storage
const DateLayout = "2006-01-02"

// DateOnly drops the time of day, keeping the calendar date as seen in t's own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate converts a time to its "YYYY-MM-DD" calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate accepts "YYYY-MM-DD" or a full RFC 3339 timestamp
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// DaysBetween returns the number of calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
