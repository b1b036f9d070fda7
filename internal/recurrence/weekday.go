// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

// Package recurrence implements the recurrence rule engine: the rule value
// type and its evaluation, the serialized wire form stored on calendar items,
// and the flat picker state the editor UI round-trips through.
package recurrence

import (
	"encoding/json"
	"sort"
	"time"
)

// Weekday is a day of the week, numbered Sunday=1 through Saturday=7 to match
// the host calendar convention. The zero value means "undefined" and never
// matches a weekday rule.
type Weekday int

const (
	WeekdayUndefined Weekday = 0
	WeekdaySunday    Weekday = 1
	WeekdayMonday    Weekday = 2
	WeekdayTuesday   Weekday = 3
	WeekdayWednesday Weekday = 4
	WeekdayThursday  Weekday = 5
	WeekdayFriday    Weekday = 6
	WeekdaySaturday  Weekday = 7
)

// WeekdayFromTime converts a time.Weekday (0=Sunday..6=Saturday) to a
// Weekday. Codes outside that range resolve to WeekdayUndefined rather than
// panicking; a standards-compliant calendar never produces them.
func WeekdayFromTime(wd time.Weekday) Weekday {
	if wd < time.Sunday || wd > time.Saturday {
		return WeekdayUndefined
	}
	return Weekday(wd) + 1
}

// Valid reports whether w is one of the seven defined weekdays.
func (w Weekday) Valid() bool {
	return w >= WeekdaySunday && w <= WeekdaySaturday
}

func (w Weekday) String() string {
	switch w {
	case WeekdaySunday:
		return "Sunday"
	case WeekdayMonday:
		return "Monday"
	case WeekdayTuesday:
		return "Tuesday"
	case WeekdayWednesday:
		return "Wednesday"
	case WeekdayThursday:
		return "Thursday"
	case WeekdayFriday:
		return "Friday"
	case WeekdaySaturday:
		return "Saturday"
	}
	return "Undefined"
}

// WeekdaySet is an unordered set of weekdays.
type WeekdaySet map[Weekday]struct{}

// NewWeekdaySet builds a set from the given days, ignoring invalid values.
func NewWeekdaySet(days ...Weekday) WeekdaySet {
	set := make(WeekdaySet, len(days))
	for _, d := range days {
		if d.Valid() {
			set[d] = struct{}{}
		}
	}
	return set
}

// WorkWeek returns the Monday through Friday preset.
func WorkWeek() WeekdaySet {
	return NewWeekdaySet(WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday, WeekdayFriday)
}

// Contains reports whether d is in the set.
func (s WeekdaySet) Contains(d Weekday) bool {
	_, ok := s[d]
	return ok
}

// Len returns the number of days in the set.
func (s WeekdaySet) Len() int {
	return len(s)
}

// Sorted returns the members in ascending order.
func (s WeekdaySet) Sorted() []Weekday {
	days := make([]Weekday, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Clone returns an independent copy of the set.
func (s WeekdaySet) Clone() WeekdaySet {
	out := make(WeekdaySet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

// Equal reports set equality regardless of construction order.
func (s WeekdaySet) Equal(other WeekdaySet) bool {
	if len(s) != len(other) {
		return false
	}
	for d := range s {
		if !other.Contains(d) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted array of integers so that the wire
// form is deterministic.
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	days := s.Sorted()
	ints := make([]int, len(days))
	for i, d := range days {
		ints[i] = int(d)
	}
	return json.Marshal(ints)
}

// UnmarshalJSON decodes an array of integers, dropping out-of-range values.
func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	set := make(WeekdaySet, len(ints))
	for _, v := range ints {
		d := Weekday(v)
		if d.Valid() {
			set[d] = struct{}{}
		}
	}
	*s = set
	return nil
}
