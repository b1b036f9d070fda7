// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package recurrence

import (
	"encoding/json"
	"time"

	"github.com/samber/mo"
)

// Wire type tags. These are part of the persisted format of every stored
// item; changing them requires a migration of all stored rule strings.
const (
	wireWeekdays       = "weekdays"
	wireDaysOfMonth    = "days_of_month"
	wireWeekOfMonth    = "week_of_month"
	wireEveryOtherWeek = "every_other_week"
	wireDateRange      = "date_range"
	wireAnd            = "and"
	wireOr             = "or"
	wireNot            = "not"
)

// ruleEnvelope is the JSON shape a rule node serializes to. One envelope per
// node, discriminated by Type; only the fields for that type are populated.
type ruleEnvelope struct {
	Type         string        `json:"type"`
	Days         WeekdaySet    `json:"days,omitempty"`
	MonthDays    []int         `json:"month_days,omitempty"`
	Weeks        []int         `json:"weeks,omitempty"`
	IncludesLast bool          `json:"includes_last,omitempty"`
	StartingWeek int           `json:"starting_week,omitempty"`
	Start        *time.Time    `json:"start,omitempty"`
	End          *time.Time    `json:"end,omitempty"`
	Left         *ruleEnvelope `json:"left,omitempty"`
	Right        *ruleEnvelope `json:"right,omitempty"`
	Inner        *ruleEnvelope `json:"inner,omitempty"`
}

// EncodeRule serializes a rule tree to its persistable string form.
func EncodeRule(r Rule) (string, error) {
	env := toEnvelope(r)
	data, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeRule parses a stored rule string. Malformed or unrecognized input
// yields None, never an error: callers treat a missing rule as "does not
// recur" so that a corrupted stored rule silently stops recurring instead of
// crashing.
func DecodeRule(s string) mo.Option[Rule] {
	if s == "" {
		return mo.None[Rule]()
	}
	var env ruleEnvelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return mo.None[Rule]()
	}
	return fromEnvelope(&env)
}

func toEnvelope(r Rule) *ruleEnvelope {
	switch v := r.(type) {
	case Weekdays:
		return &ruleEnvelope{Type: wireWeekdays, Days: v.Days}
	case DaysOfMonth:
		return &ruleEnvelope{Type: wireDaysOfMonth, MonthDays: v.Days}
	case WeekOfMonth:
		return &ruleEnvelope{Type: wireWeekOfMonth, Weeks: v.Weeks, IncludesLast: v.IncludesLast}
	case EveryOtherWeek:
		return &ruleEnvelope{Type: wireEveryOtherWeek, StartingWeek: v.StartingWeek}
	case DateRange:
		start, end := v.Start, v.End
		return &ruleEnvelope{Type: wireDateRange, Start: &start, End: &end}
	case And:
		return &ruleEnvelope{Type: wireAnd, Left: toEnvelope(v.Left), Right: toEnvelope(v.Right)}
	case Or:
		return &ruleEnvelope{Type: wireOr, Left: toEnvelope(v.Left), Right: toEnvelope(v.Right)}
	case Not:
		return &ruleEnvelope{Type: wireNot, Inner: toEnvelope(v.Inner)}
	}
	return nil
}

func fromEnvelope(env *ruleEnvelope) mo.Option[Rule] {
	if env == nil {
		return mo.None[Rule]()
	}
	switch env.Type {
	case wireWeekdays:
		days := env.Days
		if days == nil {
			days = NewWeekdaySet()
		}
		return mo.Some[Rule](Weekdays{Days: days})
	case wireDaysOfMonth:
		return mo.Some[Rule](DaysOfMonth{Days: env.MonthDays})
	case wireWeekOfMonth:
		return mo.Some[Rule](WeekOfMonth{Weeks: env.Weeks, IncludesLast: env.IncludesLast})
	case wireEveryOtherWeek:
		return mo.Some[Rule](EveryOtherWeek{StartingWeek: env.StartingWeek})
	case wireDateRange:
		if env.Start == nil || env.End == nil {
			return mo.None[Rule]()
		}
		return mo.Some[Rule](DateRange{Start: *env.Start, End: *env.End})
	case wireAnd:
		return combine(env.Left, env.Right, func(l, r Rule) Rule { return And{Left: l, Right: r} })
	case wireOr:
		return combine(env.Left, env.Right, func(l, r Rule) Rule { return Or{Left: l, Right: r} })
	case wireNot:
		inner, ok := fromEnvelope(env.Inner).Get()
		if !ok {
			return mo.None[Rule]()
		}
		return mo.Some[Rule](Not{Inner: inner})
	}
	return mo.None[Rule]()
}

func combine(left, right *ruleEnvelope, join func(l, r Rule) Rule) mo.Option[Rule] {
	l, ok := fromEnvelope(left).Get()
	if !ok {
		return mo.None[Rule]()
	}
	r, ok := fromEnvelope(right).Get()
	if !ok {
		return mo.None[Rule]()
	}
	return mo.Some(join(l, r))
}
