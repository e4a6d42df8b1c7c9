package planner

import "time"

// Day exposes the calendar fields plan assignment depends on.
type Day struct {
	// Weekday counts from 0 (Sunday) to 6 (Saturday).
	Weekday int
	// DayOfMonth is 1-based.
	DayOfMonth int
	// MonthIndex is 0-based (January = 0).
	MonthIndex int
}

// Calendar resolves "today" and breaks dates into Day fields. Tests pin the
// clock with WithNow.
type Calendar struct {
	now func() time.Time
	loc *time.Location
}

// CalendarOption customizes Calendar construction.
type CalendarOption func(*Calendar)

// WithNow overrides the wall clock.
func WithNow(now func() time.Time) CalendarOption {
	return func(c *Calendar) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the time zone used to decide which calendar day it is.
func WithLocation(loc *time.Location) CalendarOption {
	return func(c *Calendar) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// NewCalendar returns a calendar on the system clock in the local zone.
func NewCalendar(opts ...CalendarOption) *Calendar {
	c := &Calendar{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// FixedDate is a convenience for pinning the calendar to a specific day.
func FixedDate(year int, month time.Month, day int, loc *time.Location) func() time.Time {
	if loc == nil {
		loc = time.Local
	}
	pinned := time.Date(year, month, day, 12, 0, 0, 0, loc)
	return func() time.Time { return pinned }
}

// Location returns the calendar's time zone.
func (c *Calendar) Location() *time.Location {
	if c == nil || c.loc == nil {
		return time.Local
	}
	return c.loc
}

// Today returns the current day in the calendar's zone, anchored at noon.
func (c *Calendar) Today() time.Time {
	now := time.Now
	if c != nil && c.now != nil {
		now = c.now
	}
	return DayAnchor(now().In(c.Location()))
}

// DayOf splits t into Day fields using t's own location.
func DayOf(t time.Time) Day {
	return Day{
		Weekday:    int(t.Weekday()),
		DayOfMonth: t.Day(),
		MonthIndex: int(t.Month()) - 1,
	}
}

// DayAnchor maps t to noon of its calendar day in its own location. Some zones
// start DST at midnight, so local midnight may not exist; noon always does.
func DayAnchor(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// AddDays moves t by whole calendar days and returns the noon anchor of the
// resulting day.
func AddDays(t time.Time, days int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+days, 12, 0, 0, 0, t.Location())
}
