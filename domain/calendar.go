package domain

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ParseDay accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the start of
// that calendar day in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if day, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return day, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return StartOfDay(ts, loc), nil
}

// DayRange is the half-open UTC interval [start, end) covering day.
func DayRange(day time.Time) (time.Time, time.Time) {
	return day.UTC(), day.AddDate(0, 0, 1).UTC()
}
