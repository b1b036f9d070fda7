// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package recurrence

import "time"

// Rule decides whether an item recurs on the date described by a Context.
// The variant set is closed: Weekdays, DaysOfMonth, WeekOfMonth,
// EveryOtherWeek, DateRange, and the combinators And, Or, Not. Rules are
// immutable value trees; Matches is pure and safe for concurrent use.
type Rule interface {
	Matches(ctx Context) bool

	// sealed prevents variants outside this package.
	sealed()
}

// Weekdays matches dates whose weekday is in the set. An undefined context
// weekday never matches.
type Weekdays struct {
	Days WeekdaySet
}

func (r Weekdays) Matches(ctx Context) bool {
	if !ctx.Weekday.Valid() {
		return false
	}
	return r.Days.Contains(ctx.Weekday)
}

// DaysOfMonth matches dates whose day of month is in the list. The editor
// writes -1 as a "last day of month" sentinel; the engine gives it no special
// meaning, so a -1 entry can never match a real day.
type DaysOfMonth struct {
	Days []int
}

func (r DaysOfMonth) Matches(ctx Context) bool {
	for _, d := range r.Days {
		if d == ctx.DayOfMonth {
			return true
		}
	}
	return false
}

// WeekOfMonth matches dates in one of the listed calendar weeks of the month,
// or any date in the last week of the month when IncludesLast is set. The two
// conditions are a logical OR, not mutually exclusive.
type WeekOfMonth struct {
	Weeks        []int
	IncludesLast bool
}

func (r WeekOfMonth) Matches(ctx Context) bool {
	if r.IncludesLast && ctx.IsLastWeekOfMonth {
		return true
	}
	for _, w := range r.Weeks {
		if w == ctx.WeekOfMonth {
			return true
		}
	}
	return false
}

// EveryOtherWeek matches dates whose week of year has the same parity as
// StartingWeek.
type EveryOtherWeek struct {
	StartingWeek int
}

func (r EveryOtherWeek) Matches(ctx Context) bool {
	// Normalize so that a negative difference keeps the parity of its
	// absolute value; Go's % keeps the sign of the dividend.
	diff := ctx.WeekOfYear - r.StartingWeek
	return ((diff%2)+2)%2 == 0
}

// DateRange matches dates within [Start, End], all three truncated to
// start of day, both endpoints inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Matches(ctx Context) bool {
	day := truncateToDay(ctx.Date)
	start := truncateToDay(r.Start.In(ctx.Date.Location()))
	end := truncateToDay(r.End.In(ctx.Date.Location()))
	return !day.Before(start) && !day.After(end)
}

// And matches when both children match.
type And struct {
	Left  Rule
	Right Rule
}

func (r And) Matches(ctx Context) bool {
	return r.Left.Matches(ctx) && r.Right.Matches(ctx)
}

// Or matches when either child matches.
type Or struct {
	Left  Rule
	Right Rule
}

func (r Or) Matches(ctx Context) bool {
	return r.Left.Matches(ctx) || r.Right.Matches(ctx)
}

// Not inverts its child.
type Not struct {
	Inner Rule
}

func (r Not) Matches(ctx Context) bool {
	return !r.Inner.Matches(ctx)
}

func (Weekdays) sealed()       {}
func (DaysOfMonth) sealed()    {}
func (WeekOfMonth) sealed()    {}
func (EveryOtherWeek) sealed() {}
func (DateRange) sealed()      {}
func (And) sealed()            {}
func (Or) sealed()             {}
func (Not) sealed()            {}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// RulesEqual reports structural equality of two rule trees: set equality for
// weekday sets, order-sensitive equality for day and week lists, and
// instant equality for range endpoints.
func RulesEqual(a, b Rule) bool {
	switch av := a.(type) {
	case Weekdays:
		bv, ok := b.(Weekdays)
		return ok && av.Days.Equal(bv.Days)
	case DaysOfMonth:
		bv, ok := b.(DaysOfMonth)
		return ok && intsEqual(av.Days, bv.Days)
	case WeekOfMonth:
		bv, ok := b.(WeekOfMonth)
		return ok && av.IncludesLast == bv.IncludesLast && intsEqual(av.Weeks, bv.Weeks)
	case EveryOtherWeek:
		bv, ok := b.(EveryOtherWeek)
		return ok && av.StartingWeek == bv.StartingWeek
	case DateRange:
		bv, ok := b.(DateRange)
		return ok && av.Start.Equal(bv.Start) && av.End.Equal(bv.End)
	case And:
		bv, ok := b.(And)
		return ok && RulesEqual(av.Left, bv.Left) && RulesEqual(av.Right, bv.Right)
	case Or:
		bv, ok := b.(Or)
		return ok && RulesEqual(av.Left, bv.Left) && RulesEqual(av.Right, bv.Right)
	case Not:
		bv, ok := b.(Not)
		return ok && RulesEqual(av.Inner, bv.Inner)
	}
	return false
}

// intsEqual treats nil and empty as equal; list order is significant.
func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
