// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"taskcal/internal/domain"
	"taskcal/internal/domain/models"
	"taskcal/internal/recurrence"
	"taskcal/pkg/concurrent"
)

// OccurrenceService answers whether items occur on given days and runs the
// day and range queries over the item store.
type OccurrenceService struct {
	ItemRepository domain.ItemRepository
	Calendar       recurrence.Calendar
	pool           *concurrent.WorkerPool
}

// NewOccurrenceService creates a new OccurrenceService.
func NewOccurrenceService(itemRepository domain.ItemRepository, calendar recurrence.Calendar) *OccurrenceService {
	return &OccurrenceService{
		ItemRepository: itemRepository,
		Calendar:       calendar,
		pool:           concurrent.NewWorkerPool(8),
	}
}

// ServiceReady checks if the service is ready for use.
func (s *OccurrenceService) ServiceReady() bool {
	return s.ItemRepository != nil
}

// OccursOn reports whether the item occurs on the given date. Recurring
// items with a missing or undecodable rule never occur.
func (s *OccurrenceService) OccursOn(item *models.CalendarItem, date time.Time) bool {
	if item == nil {
		return false
	}

	if item.IsRecurring {
		rule, ok := recurrence.DecodeRule(item.RecurrenceRule).Get()
		if !ok {
			return false
		}
		return rule.Matches(recurrence.ResolveContext(date, s.Calendar))
	}

	anchor := item.AnchorTime()
	if anchor == nil {
		return false
	}
	return sameDay(*anchor, date, s.Calendar.Location)
}

// sameDay reports whether two instants fall on the same calendar day in the
// given location.
func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// FilterItemsOn applies the visibility filter and the occurrence check to a
// slice of items and returns the matches sorted for display: ascending by
// start time, items without a start time first, original order preserved
// among equals.
func (s *OccurrenceService) FilterItemsOn(items []*models.CalendarItem, date time.Time, filter models.VisibilityFilter) []*models.CalendarItem {
	// Never nil: the result is marshaled for reply payloads, and consumers
	// expect a JSON array even on an empty day.
	matched := make([]*models.CalendarItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.IsRecurring && !filter.ShowRecurring {
			continue
		}
		if !item.IsRecurring && !filter.ShowOneTime {
			continue
		}
		if !filter.AllowsLabels(item.LabelUIDs) {
			continue
		}
		if !s.OccursOn(item, date) {
			continue
		}
		matched = append(matched, item)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i].StartTime, matched[j].StartTime
		if a == nil {
			return b != nil
		}
		if b == nil {
			return false
		}
		return a.Before(*b)
	})

	return matched
}

// ItemsOn returns the items visible on a single day.
func (s *OccurrenceService) ItemsOn(ctx context.Context, date time.Time, filter models.VisibilityFilter) ([]*models.CalendarItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "occurrence service not initialized")
		return nil, domain.NewUnavailableError("occurrence service is not available")
	}

	items, err := s.ItemRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.FilterItemsOn(items, date, filter), nil
}

// ItemsInRange returns, for each day from start through end inclusive, the
// items visible on that day. Keys are in "2006-01-02" form in the service
// calendar's location. Days are evaluated concurrently.
func (s *OccurrenceService) ItemsInRange(ctx context.Context, start, end time.Time, filter models.VisibilityFilter) (map[string][]*models.CalendarItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "occurrence service not initialized")
		return nil, domain.NewUnavailableError("occurrence service is not available")
	}

	loc := s.Calendar.Location
	first := time.Date(start.In(loc).Year(), start.In(loc).Month(), start.In(loc).Day(), 0, 0, 0, 0, loc)
	last := time.Date(end.In(loc).Year(), end.In(loc).Month(), end.In(loc).Day(), 0, 0, 0, 0, loc)
	if last.Before(first) {
		return nil, domain.NewValidationError("range end is before range start")
	}

	items, err := s.ItemRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]*models.CalendarItem)
	var mu sync.Mutex

	var tasks []func() error
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		day := day
		tasks = append(tasks, func() error {
			matched := s.FilterItemsOn(items, day, filter)
			mu.Lock()
			result[day.Format(time.DateOnly)] = matched
			mu.Unlock()
			return nil
		})
	}

	if err := s.pool.Run(ctx, tasks...); err != nil {
		return nil, err
	}

	return result, nil
}
