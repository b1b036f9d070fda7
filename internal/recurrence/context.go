// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package recurrence

import "time"

// Calendar fixes the conventions a date is interpreted under: which weekday
// starts a week and which location defines day boundaries. It is an immutable
// value, safe to share across goroutines.
type Calendar struct {
	FirstDay Weekday
	Location *time.Location
}

// DefaultCalendar returns the Sunday-first calendar in local time.
func DefaultCalendar() Calendar {
	return Calendar{FirstDay: WeekdaySunday, Location: time.Local}
}

// NewCalendar builds a calendar with the given first day of week. Invalid
// first days and nil locations fall back to the defaults.
func NewCalendar(firstDay Weekday, loc *time.Location) Calendar {
	if !firstDay.Valid() {
		firstDay = WeekdaySunday
	}
	if loc == nil {
		loc = time.Local
	}
	return Calendar{FirstDay: firstDay, Location: loc}
}

// Context holds the per-date facts a rule is evaluated against. It is derived
// fresh for each evaluation and never stored.
type Context struct {
	Date              time.Time
	Weekday           Weekday // WeekdayUndefined if the weekday code was out of range
	DayOfMonth        int
	WeekOfMonth       int
	WeekOfYear        int
	IsLastWeekOfMonth bool
}

// ResolveContext computes the recurrence context for a date. Pure function of
// the date and calendar; callers must hold the calendar fixed for
// reproducible results.
func ResolveContext(date time.Time, cal Calendar) Context {
	if cal.Location == nil {
		cal = NewCalendar(cal.FirstDay, cal.Location)
	}
	local := date.In(cal.Location)
	year, month, day := local.Date()

	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, cal.Location)
	firstOfYear := time.Date(year, time.January, 1, 0, 0, 0, 0, cal.Location)

	// A date is in the last week of its month when stepping one calendar week
	// forward crosses into the next month. This is week-aligned, not a plain
	// day-of-month threshold.
	next := local.AddDate(0, 0, 7)
	lastWeek := next.Month() != month || next.Year() != year

	return Context{
		Date:              local,
		Weekday:           WeekdayFromTime(local.Weekday()),
		DayOfMonth:        day,
		WeekOfMonth:       ordinalWeek(day, firstOfMonth.Weekday(), cal.FirstDay),
		WeekOfYear:        ordinalWeek(local.YearDay(), firstOfYear.Weekday(), cal.FirstDay),
		IsLastWeekOfMonth: lastWeek,
	}
}

// ordinalWeek returns the 1-based week number of the given day ordinal, where
// week 1 is the (possibly partial) week containing the first day of the
// period and weeks begin on firstDay.
func ordinalWeek(dayOrdinal int, firstWeekday time.Weekday, firstDay Weekday) int {
	lead := (int(WeekdayFromTime(firstWeekday)) - int(firstDay) + 7) % 7
	return (lead+dayOrdinal-1)/7 + 1
}
