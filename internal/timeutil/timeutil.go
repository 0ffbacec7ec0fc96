// Package timeutil provides helpers for working with reporting periods.
package timeutil

import (
	"time"

	"github.com/markusmobius/go-dateparser"
)

// FromStr parses a human date string ("2024-01-15", "yesterday", "2 days
// ago") into a time value.
func FromStr(s string) (time.Time, error) {
	dt, err := dateparser.Parse(nil, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RoundToEnd sets the given time to the last nanosecond of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		23, 59, 59, int(time.Second-time.Nanosecond),
		t.Location(),
	)
}

// DayRange returns the inclusive bounds of the day containing t.
func DayRange(t time.Time) (start, end time.Time) {
	return RoundToStart(t), RoundToEnd(t)
}

// WeekRange returns the inclusive bounds of the week containing t. The week
// begins on weekStart.
func WeekRange(t time.Time, weekStart time.Weekday) (start, end time.Time) {
	daysBack := int(t.Weekday()) - int(weekStart)
	if daysBack < 0 {
		daysBack += 7
	}

	start = RoundToStart(t.AddDate(0, 0, -daysBack))
	end = RoundToEnd(start.AddDate(0, 0, 6))

	return start, end
}
