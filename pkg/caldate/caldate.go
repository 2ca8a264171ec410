// Package caldate holds calendar-date helpers. A calendar date is a time.Time at
// midnight UTC; any time-of-day or location component is discarded.
package caldate

import (
	"strings"
	"time"
)

// Layout is the ISO-8601 calendar date layout used on the wire.
const Layout = "2006-01-02"

// New builds a calendar date. Out-of-range days normalize like time.Date.
func New(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize drops the time-of-day and location of t, keeping its wall-clock date.
func Normalize(t time.Time) time.Time {
	return New(t.Year(), t.Month(), t.Day())
}

// Parse reads an ISO-8601 calendar date.
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

// Format renders a calendar date as ISO-8601.
func Format(t time.Time) string {
	return Normalize(t).Format(Layout)
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	return New(year, month+1, 0).Day()
}

// ClampDay returns the date for day in (year, month), clamped to the last valid day.
func ClampDay(year int, month time.Month, day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := LastDayOfMonth(year, month); day > last {
		day = last
	}
	return New(year, month, day)
}

// AddDays shifts a calendar date by n days.
func AddDays(t time.Time, n int) time.Time {
	return Normalize(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}

// SameMonthDay reports whether two dates share month and day, ignoring the year.
func SameMonthDay(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}

// IsWeekend reports whether t falls on one of the given weekdays.
func IsWeekend(t time.Time, weekend []time.Weekday) bool {
	wd := t.Weekday()
	for _, day := range weekend {
		if day == wd {
			return true
		}
	}
	return false
}

// Within reports whether t lies in the half-open window [from, to). A zero to is unbounded.
func Within(t, from, to time.Time) bool {
	d := Normalize(t)
	if d.Before(Normalize(from)) {
		return false
	}
	if !to.IsZero() && !d.Before(Normalize(to)) {
		return false
	}
	return true
}
