package timeutil

import (
	"fmt"
	"time"
)

// DateOf truncates t to midnight of its calendar day in t's location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// PreviousDay returns the calendar day before date. Flat -1 day: weekly
// offs are not skipped here even though the penalty rules exempt Sunday.
func PreviousDay(date time.Time) time.Time {
	return DateOf(date.AddDate(0, 0, -1))
}

// MinuteOfDay returns minutes elapsed since midnight for t.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// MinutesBetween returns whole minutes from a to b, clamped to zero when
// b is not after a.
func MinutesBetween(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	return int(b.Sub(a).Minutes())
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// IsSunday reports whether date is the weekly off day.
func IsSunday(date time.Time) bool {
	return date.Weekday() == time.Sunday
}

// MonthBounds returns the first day of date's month and the first day of
// the following month.
func MonthBounds(date time.Time) (from, to time.Time) {
	from = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	return from, from.AddDate(0, 1, 0)
}

// ParseClock parses a wall-clock string in "15:04" form.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// At composes a wall-clock string in "15:04" form onto date's calendar day.
func At(date time.Time, clock string) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

// ClockMinutes converts a wall-clock string in "15:04" form to minutes
// since midnight.
func ClockMinutes(s string) (int, error) {
	hour, minute, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}
