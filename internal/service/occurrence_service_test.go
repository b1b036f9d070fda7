// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskcal/internal/domain/mocks"
	"taskcal/internal/domain/models"
	"taskcal/internal/recurrence"
	"taskcal/pkg/utils"
)

func utcCalendar() recurrence.Calendar {
	return recurrence.NewCalendar(recurrence.WeekdaySunday, time.UTC)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustEncode(t *testing.T, r recurrence.Rule) string {
	t.Helper()
	encoded, err := recurrence.EncodeRule(r)
	require.NoError(t, err)
	return encoded
}

func TestOccursOn_RecurringFailsClosed(t *testing.T) {
	svc := NewOccurrenceService(new(mocks.MockItemRepository), utcCalendar())

	tests := []struct {
		name string
		rule string
	}{
		{name: "empty rule", rule: ""},
		{name: "malformed JSON", rule: "{not json"},
		{name: "unknown type tag", rule: `{"type":"lunar_phase"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &models.CalendarItem{
				UID:            "item-1",
				Kind:           models.KindEvent,
				IsRecurring:    true,
				RecurrenceRule: tt.rule,
			}
			assert.False(t, svc.OccursOn(item, day(2026, time.January, 5)))
		})
	}
}

func TestOccursOn_RecurringMatchesRule(t *testing.T) {
	svc := NewOccurrenceService(new(mocks.MockItemRepository), utcCalendar())

	// every Monday
	rule := recurrence.Weekdays{Days: recurrence.NewWeekdaySet(recurrence.WeekdayMonday)}
	item := &models.CalendarItem{
		UID:            "item-1",
		Kind:           models.KindEvent,
		IsRecurring:    true,
		RecurrenceRule: mustEncode(t, rule),
	}

	assert.True(t, svc.OccursOn(item, day(2026, time.January, 5)))  // Monday
	assert.False(t, svc.OccursOn(item, day(2026, time.January, 6))) // Tuesday
}

func TestOccursOn_NonRecurringAnchors(t *testing.T) {
	svc := NewOccurrenceService(new(mocks.MockItemRepository), utcCalendar())

	start := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)
	deadline := time.Date(2026, time.March, 12, 23, 59, 0, 0, time.UTC)

	t.Run("start time wins over deadline", func(t *testing.T) {
		item := &models.CalendarItem{
			UID:       "item-1",
			Kind:      models.KindEvent,
			StartTime: utils.TimePtr(start),
			Deadline:  utils.TimePtr(deadline),
		}
		assert.True(t, svc.OccursOn(item, day(2026, time.March, 10)))
		assert.False(t, svc.OccursOn(item, day(2026, time.March, 12)))
	})

	t.Run("deadline fallback", func(t *testing.T) {
		item := &models.CalendarItem{
			UID:      "item-2",
			Kind:     models.KindTask,
			Deadline: utils.TimePtr(deadline),
		}
		assert.True(t, svc.OccursOn(item, day(2026, time.March, 12)))
		assert.False(t, svc.OccursOn(item, day(2026, time.March, 11)))
	})

	t.Run("no anchor never occurs", func(t *testing.T) {
		item := &models.CalendarItem{UID: "item-3", Kind: models.KindTask}
		assert.False(t, svc.OccursOn(item, day(2026, time.March, 12)))
	})
}

func TestFilterItemsOn_FilterCombinations(t *testing.T) {
	svc := NewOccurrenceService(new(mocks.MockItemRepository), utcCalendar())
	date := day(2026, time.January, 5) // Monday

	recurring := &models.CalendarItem{
		UID:            "recurring",
		Kind:           models.KindEvent,
		IsRecurring:    true,
		RecurrenceRule: mustEncode(t, recurrence.Weekdays{Days: recurrence.NewWeekdaySet(recurrence.WeekdayMonday)}),
		LabelUIDs:      []string{"work"},
	}
	oneTime := &models.CalendarItem{
		UID:       "one-time",
		Kind:      models.KindTask,
		Deadline:  utils.TimePtr(date),
		LabelUIDs: []string{"home"},
	}
	items := []*models.CalendarItem{recurring, oneTime}

	uids := func(matched []*models.CalendarItem) []string {
		var out []string
		for _, item := range matched {
			out = append(out, item.UID)
		}
		return out
	}

	tests := []struct {
		name     string
		filter   models.VisibilityFilter
		expected []string
	}{
		{
			name:     "default shows everything",
			filter:   models.DefaultVisibilityFilter(),
			expected: []string{"recurring", "one-time"},
		},
		{
			name:     "recurring hidden",
			filter:   models.VisibilityFilter{ShowRecurring: false, ShowOneTime: true},
			expected: []string{"one-time"},
		},
		{
			name:     "one-time hidden",
			filter:   models.VisibilityFilter{ShowRecurring: true, ShowOneTime: false},
			expected: []string{"recurring"},
		},
		{
			name:     "label allow-list restricts",
			filter:   models.VisibilityFilter{ShowRecurring: true, ShowOneTime: true, LabelUIDs: []string{"work"}},
			expected: []string{"recurring"},
		},
		{
			name:     "empty label set admits all",
			filter:   models.VisibilityFilter{ShowRecurring: true, ShowOneTime: true, LabelUIDs: nil},
			expected: []string{"recurring", "one-time"},
		},
		{
			name:     "everything hidden",
			filter:   models.VisibilityFilter{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := svc.FilterItemsOn(items, date, tt.filter)
			assert.Equal(t, tt.expected, uids(matched))
		})
	}
}

func TestFilterItemsOn_NoMatchesIsEmptyNotNil(t *testing.T) {
	svc := NewOccurrenceService(nil, utcCalendar())

	items := []*models.CalendarItem{
		{UID: "task-1", Kind: models.KindTask, Deadline: utils.TimePtr(day(2026, time.January, 9))},
	}

	matched := svc.FilterItemsOn(items, day(2026, time.January, 5), models.DefaultVisibilityFilter())
	assert.NotNil(t, matched)
	assert.Empty(t, matched)

	matched = svc.FilterItemsOn(nil, day(2026, time.January, 5), models.DefaultVisibilityFilter())
	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}

func TestFilterItemsOn_StableSortNilStartFirst(t *testing.T) {
	svc := NewOccurrenceService(new(mocks.MockItemRepository), utcCalendar())
	date := day(2026, time.January, 5)

	at := func(hour int) *time.Time {
		return utils.TimePtr(time.Date(2026, time.January, 5, hour, 0, 0, 0, time.UTC))
	}

	// deliberately unsorted; two nil-start tasks to check stability
	items := []*models.CalendarItem{
		{UID: "late", Kind: models.KindEvent, StartTime: at(17), Deadline: nil},
		{UID: "task-a", Kind: models.KindTask, Deadline: utils.TimePtr(date)},
		{UID: "early", Kind: models.KindEvent, StartTime: at(8)},
		{UID: "task-b", Kind: models.KindTask, Deadline: utils.TimePtr(date)},
		{UID: "noon", Kind: models.KindEvent, StartTime: at(12)},
	}

	matched := svc.FilterItemsOn(items, date, models.DefaultVisibilityFilter())

	var uids []string
	for _, item := range matched {
		uids = append(uids, item.UID)
	}
	assert.Equal(t, []string{"task-a", "task-b", "early", "noon", "late"}, uids)
}

func TestItemsOn_UsesRepository(t *testing.T) {
	mockRepo := new(mocks.MockItemRepository)
	svc := NewOccurrenceService(mockRepo, utcCalendar())
	date := day(2026, time.January, 5)

	items := []*models.CalendarItem{
		{UID: "item-1", Kind: models.KindTask, Deadline: utils.TimePtr(date)},
	}
	mockRepo.On("ListAll", mock.Anything).Return(items, nil)

	matched, err := svc.ItemsOn(context.Background(), date, models.DefaultVisibilityFilter())
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "item-1", matched[0].UID)
	mockRepo.AssertExpectations(t)
}

func TestItemsInRange(t *testing.T) {
	mockRepo := new(mocks.MockItemRepository)
	svc := NewOccurrenceService(mockRepo, utcCalendar())

	// every Monday
	weekly := &models.CalendarItem{
		UID:            "weekly",
		Kind:           models.KindEvent,
		IsRecurring:    true,
		RecurrenceRule: mustEncode(t, recurrence.Weekdays{Days: recurrence.NewWeekdaySet(recurrence.WeekdayMonday)}),
	}
	mockRepo.On("ListAll", mock.Anything).Return([]*models.CalendarItem{weekly}, nil)

	byDay, err := svc.ItemsInRange(context.Background(),
		day(2026, time.January, 4), day(2026, time.January, 10),
		models.DefaultVisibilityFilter())
	require.NoError(t, err)
	require.Len(t, byDay, 7)

	assert.Len(t, byDay["2026-01-05"], 1) // Monday
	assert.Empty(t, byDay["2026-01-06"])
	assert.Empty(t, byDay["2026-01-04"])
}

func TestItemsInRange_EndBeforeStart(t *testing.T) {
	svc := NewOccurrenceService(new(mocks.MockItemRepository), utcCalendar())

	_, err := svc.ItemsInRange(context.Background(),
		day(2026, time.January, 10), day(2026, time.January, 4),
		models.DefaultVisibilityFilter())
	assert.Error(t, err)
}

// TestOccursOn_BuiltRuleEndToEnd drives a picker state through build, encode,
// decode and evaluation: Monday/Wednesday, every other week anchored on week
// 5, limited to the first half of 2026.
func TestOccursOn_BuiltRuleEndToEnd(t *testing.T) {
	state := recurrence.NewPickerState()
	state.Recurring = true
	state.RepeatType = recurrence.RepeatWeekly
	state.SelectedWeekdays = recurrence.NewWeekdaySet(recurrence.WeekdayMonday, recurrence.WeekdayWednesday)
	state.Biweekly = true
	state.StartingWeek = 5
	state.HasDateRange = true
	state.RangeStart = day(2026, time.January, 1)
	state.RangeEnd = day(2026, time.June, 30)

	rule, ok := recurrence.BuildRule(state).Get()
	require.True(t, ok)

	svc := NewOccurrenceService(new(mocks.MockItemRepository), utcCalendar())
	item := &models.CalendarItem{
		UID:            "item-1",
		Kind:           models.KindEvent,
		IsRecurring:    true,
		RecurrenceRule: mustEncode(t, rule),
	}

	tests := []struct {
		name     string
		date     time.Time
		expected bool
	}{
		{name: "Monday of week 5", date: day(2026, time.January, 26), expected: true},
		{name: "Wednesday of week 5", date: day(2026, time.January, 28), expected: true},
		{name: "Tuesday of week 5", date: day(2026, time.January, 27), expected: false},
		{name: "Monday of week 6 wrong parity", date: day(2026, time.February, 2), expected: false},
		{name: "Wednesday of week 7", date: day(2026, time.February, 11), expected: true},
		{name: "matching Monday outside range", date: day(2026, time.July, 13), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.OccursOn(item, tt.date))
		})
	}
}
