// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

// Package models holds the key-value store representations of the taskcal
// domain entities and the NATS message schemas built from them.
package models

import (
	"time"
)

// ItemKind discriminates the two calendar item categories.
type ItemKind string

const (
	// KindTask is a to-do with a deadline, an effort estimate and subtasks.
	KindTask ItemKind = "task"
	// KindEvent is a calendar entry with a start/end time and optionally a
	// recurrence rule.
	KindEvent ItemKind = "event"
)

// CalendarItem is the key-value store representation of a task or event.
type CalendarItem struct {
	UID         string   `json:"uid"`
	Kind        ItemKind `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`

	// RecurrenceRule holds the serialized rule produced by the recurrence
	// codec. Present iff IsRecurring; an undecodable value means the item
	// never occurs (fail closed).
	IsRecurring    bool   `json:"is_recurring"`
	RecurrenceRule string `json:"recurrence_rule,omitempty"`

	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	// Deadline is the anchor for non-recurring items without a start time,
	// and the due instant handed to the reminder scheduler.
	Deadline *time.Time `json:"deadline,omitempty"`

	EstimateMinutes int       `json:"estimate_minutes,omitempty"`
	Subtasks        []Subtask `json:"subtasks,omitempty"`
	LabelUIDs       []string  `json:"label_uids,omitempty"`
	Completed       bool      `json:"completed"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Subtask is a checklist entry nested inside a task.
type Subtask struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// AnchorTime returns the timestamp that places a non-recurring item on the
// calendar: the start time when present, otherwise the deadline.
func (i *CalendarItem) AnchorTime() *time.Time {
	if i.StartTime != nil {
		return i.StartTime
	}
	return i.Deadline
}

// HasLabel reports whether the item carries the given label.
func (i *CalendarItem) HasLabel(labelUID string) bool {
	for _, uid := range i.LabelUIDs {
		if uid == labelUID {
			return true
		}
	}
	return false
}

// Tags returns the search tags for the indexer message of this item.
func (i *CalendarItem) Tags() []string {
	tags := []string{i.UID, string(i.Kind), i.Title}
	tags = append(tags, i.LabelUIDs...)
	return tags
}

// VisibilityFilter controls which items a day or range query returns.
// The zero LabelUIDs set means no label restriction.
type VisibilityFilter struct {
	ShowRecurring bool     `json:"show_recurring"`
	ShowOneTime   bool     `json:"show_one_time"`
	LabelUIDs     []string `json:"label_uids,omitempty"`
}

// DefaultVisibilityFilter returns the filter that shows everything.
func DefaultVisibilityFilter() VisibilityFilter {
	return VisibilityFilter{ShowRecurring: true, ShowOneTime: true}
}

// AllowsLabels reports whether an item with the given labels passes the
// label gate. An empty allow-list admits every item.
func (f VisibilityFilter) AllowsLabels(labelUIDs []string) bool {
	if len(f.LabelUIDs) == 0 {
		return true
	}
	for _, allowed := range f.LabelUIDs {
		for _, uid := range labelUIDs {
			if uid == allowed {
				return true
			}
		}
	}
	return false
}
