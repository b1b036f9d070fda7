// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package recurrence

import (
	"github.com/teambition/rrule-go"
)

// rruleWeekdays maps Weekday (Sunday=1..Saturday=7) to the iCalendar weekday
// constants.
var rruleWeekdays = []rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// ExportRRule renders a builder-constructed rule as an iCalendar RRULE string
// for interop with external calendar subscriptions. Only the shapes BuildRule
// produces are expressible; for anything else (Or, Not, multi-day
// DaysOfMonth, hand-built trees) it reports ok=false and the item is exported
// without a recurrence.
func ExportRRule(r Rule) (string, bool) {
	opt, ok := exportOption(r)
	if !ok {
		return "", false
	}
	if _, err := rrule.NewRRule(opt); err != nil {
		return "", false
	}
	return opt.RRuleString(), true
}

func exportOption(r Rule) (rrule.ROption, bool) {
	switch v := r.(type) {
	case Weekdays:
		days, ok := exportWeekdays(v.Days)
		if !ok {
			return rrule.ROption{}, false
		}
		return rrule.ROption{Freq: rrule.WEEKLY, Byweekday: days}, true
	case DaysOfMonth:
		if len(v.Days) != 1 || v.Days[0] < 1 || v.Days[0] > 31 {
			return rrule.ROption{}, false
		}
		return rrule.ROption{Freq: rrule.MONTHLY, Bymonthday: []int{v.Days[0]}}, true
	case And:
		return exportAnd(v)
	}
	return rrule.ROption{}, false
}

func exportAnd(v And) (rrule.ROption, bool) {
	// Date range wrapping: And(inner, DateRange) becomes UNTIL on the inner
	// rule. The range start is carried by the item's own start time.
	if dr, ok := v.Right.(DateRange); ok {
		opt, ok := exportOption(v.Left)
		if !ok {
			return rrule.ROption{}, false
		}
		opt.Until = dr.End
		return opt, true
	}

	wd, ok := v.Left.(Weekdays)
	if !ok {
		return rrule.ROption{}, false
	}

	switch right := v.Right.(type) {
	case EveryOtherWeek:
		days, ok := exportWeekdays(wd.Days)
		if !ok {
			return rrule.ROption{}, false
		}
		return rrule.ROption{Freq: rrule.WEEKLY, Interval: 2, Byweekday: days}, true
	case WeekOfMonth:
		if wd.Days.Len() != 1 {
			return rrule.ROption{}, false
		}
		days, _ := exportWeekdays(wd.Days)
		positions := append([]int{}, right.Weeks...)
		if right.IncludesLast {
			positions = append(positions, -1)
		}
		if len(positions) == 0 {
			return rrule.ROption{}, false
		}
		return rrule.ROption{Freq: rrule.MONTHLY, Byweekday: days, Bysetpos: positions}, true
	}
	return rrule.ROption{}, false
}

func exportWeekdays(set WeekdaySet) ([]rrule.Weekday, bool) {
	if set.Len() == 0 {
		return nil, false
	}
	days := make([]rrule.Weekday, 0, set.Len())
	for _, d := range set.Sorted() {
		days = append(days, rruleWeekdays[d-1])
	}
	return days, true
}
