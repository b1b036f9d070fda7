// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package recurrence

import (
	"time"

	"github.com/samber/mo"
)

// RepeatType selects the top-level repeat mode of the picker.
type RepeatType string

const (
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
)

// MonthlyMode selects how a monthly repeat anchors within the month.
type MonthlyMode string

const (
	MonthlyByDay  MonthlyMode = "day_of_month"
	MonthlyByWeek MonthlyMode = "week_of_month"
)

// PickerState is the flat, editor-facing representation of a recurrence
// configuration. BuildRule and DecomposeRule form a round-trip pair over
// every state the editor can reach; Or and Not trees are outside that space
// and decompose as no-ops.
type PickerState struct {
	Recurring bool

	RepeatType       RepeatType
	SelectedWeekdays WeekdaySet
	Biweekly         bool
	StartingWeek     int

	MonthlyMode MonthlyMode
	SelectedDay int
	// SelectedWeekday anchors week-of-month mode. It has its own field so the
	// week-of-month weekday no longer aliases the weekly set; decomposing a
	// single-member Weekdays leaf still fills it for stored-data
	// compatibility.
	SelectedWeek    int
	SelectedWeekday Weekday
	IncludeLastWeek bool

	HasDateRange bool
	RangeStart   time.Time
	RangeEnd     time.Time
}

// NewPickerState returns the editor's initial state: not recurring, weekly,
// no weekdays selected, first week anchors.
func NewPickerState() PickerState {
	return PickerState{
		RepeatType:       RepeatWeekly,
		SelectedWeekdays: NewWeekdaySet(),
		StartingWeek:     1,
		MonthlyMode:      MonthlyByDay,
		SelectedDay:      1,
		SelectedWeek:     1,
		SelectedWeekday:  WeekdayMonday,
	}
}

// BuildRule constructs the rule tree a picker state describes. It returns
// None when the state is not recurring or when weekly mode has no weekdays
// selected; the editor is expected to treat None as "nothing to save".
func BuildRule(s PickerState) mo.Option[Rule] {
	if !s.Recurring {
		return mo.None[Rule]()
	}

	var rule Rule
	switch s.RepeatType {
	case RepeatWeekly:
		if s.SelectedWeekdays.Len() == 0 {
			return mo.None[Rule]()
		}
		rule = Weekdays{Days: s.SelectedWeekdays.Clone()}
		if s.Biweekly {
			rule = And{Left: rule, Right: EveryOtherWeek{StartingWeek: s.StartingWeek}}
		}
	case RepeatMonthly:
		switch s.MonthlyMode {
		case MonthlyByDay:
			rule = DaysOfMonth{Days: []int{s.SelectedDay}}
		case MonthlyByWeek:
			rule = And{
				Left:  Weekdays{Days: NewWeekdaySet(s.SelectedWeekday)},
				Right: WeekOfMonth{Weeks: []int{s.SelectedWeek}, IncludesLast: s.IncludeLastWeek},
			}
		default:
			return mo.None[Rule]()
		}
	default:
		return mo.None[Rule]()
	}

	if s.HasDateRange {
		rule = And{Left: rule, Right: DateRange{Start: s.RangeStart, End: s.RangeEnd}}
	}
	return mo.Some(rule)
}

// DecomposeRule walks a rule tree and applies each leaf's effect on the flat
// state so an editor can re-populate its controls. And nodes recurse into
// both children; Or and Not cannot be produced by the picker and are skipped.
func DecomposeRule(r Rule, s *PickerState) {
	if r == nil || s == nil {
		return
	}
	switch v := r.(type) {
	case And:
		DecomposeRule(v.Left, s)
		DecomposeRule(v.Right, s)
	case Weekdays:
		s.Recurring = true
		s.SelectedWeekdays = v.Days.Clone()
		if v.Days.Len() == 1 {
			// Compatibility with rules stored by builders that reused a
			// single-member weekday set as the week-of-month anchor.
			s.SelectedWeekday = v.Days.Sorted()[0]
		}
	case DaysOfMonth:
		s.Recurring = true
		s.RepeatType = RepeatMonthly
		s.MonthlyMode = MonthlyByDay
		if len(v.Days) > 0 {
			s.SelectedDay = v.Days[0]
		}
	case WeekOfMonth:
		s.Recurring = true
		s.RepeatType = RepeatMonthly
		s.MonthlyMode = MonthlyByWeek
		if len(v.Weeks) > 0 {
			s.SelectedWeek = v.Weeks[0]
		}
		s.IncludeLastWeek = v.IncludesLast
	case EveryOtherWeek:
		s.Recurring = true
		s.Biweekly = true
		s.StartingWeek = v.StartingWeek
	case DateRange:
		s.HasDateRange = true
		s.RangeStart = v.Start
		s.RangeEnd = v.End
	case Or, Not:
		// Not constructible through the picker; skip rather than guess.
	}
}
