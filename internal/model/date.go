package model

import (
	"fmt"
	"time"
)

// dateLayout is the textual form accepted by ParseDate and produced by String.
const dateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Date is a calendar date with no time-of-day or time zone.
//
// Date is what callers ask the archive for: "the image of 2024-03-14".
// Arithmetic on Date always works in whole calendar days, so daylight
// saving transitions and the hour of the run never shift an offset.
//
// Example:
//
//	d, _ := ParseDate("2024-03-14")
//	d.AddDays(-1).String() // "2024-03-13"
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the Date for the given year, month and day.
// Out-of-range values are normalized the way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
//
// Pass time.Now() to get today's local date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// AddDays returns the date n calendar days after d (before d for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight().AddDate(0, 0, n))
}

// DaysSince returns d - other in whole calendar days.
//
// Works on Unix seconds rather than time.Duration, which saturates after
// about 292 years.
func (d Date) DaysSince(other Date) int {
	return int((d.midnight().Unix() - other.midnight().Unix()) / secondsPerDay)
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return d.midnight().Format(dateLayout)
}

// UTC midnights are exactly 86400s apart, which keeps DaysSince exact.
func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DayOffsets converts dates into archive day offsets relative to today.
//
// result[i] is today - dates[i] in calendar days: yesterday is 1, today is 0,
// and a future date gives a negative offset. The caller reads the clock once
// and passes the result as today so every offset in a batch agrees.
//
// Example:
//
//	today := NewDate(2024, 3, 14)
//	DayOffsets([]Date{today, today.AddDays(-8)}, today) // [0 8]
func DayOffsets(dates []Date, today Date) []int {
	offsets := make([]int, len(dates))
	for i, d := range dates {
		offsets[i] = today.DaysSince(d)
	}
	return offsets
}
