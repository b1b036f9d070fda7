// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package models

import "time"

// NATS subjects that the taskcal service sends messages about.
const (
	// IndexItemSubject is the subject for calendar item indexing.
	IndexItemSubject = "taskcal.index.item"

	// IndexLabelSubject is the subject for label indexing.
	IndexLabelSubject = "taskcal.index.label"

	// ReminderScheduleSubject carries reminder scheduling requests for the
	// external notification scheduler.
	ReminderScheduleSubject = "taskcal.reminder.schedule"

	// ReminderCancelSubject cancels a previously scheduled reminder.
	ReminderCancelSubject = "taskcal.reminder.cancel"
)

// NATS queue subjects that the taskcal service handles messages on.
const (
	// TaskcalAPIQueue is the queue group name for the taskcal API.
	TaskcalAPIQueue = "taskcal-api.queue"

	// ItemGetTitleSubject asks for the title of an item by UID.
	ItemGetTitleSubject = "taskcal-api.item_get_title"

	// ItemsOnDaySubject queries the items active on a single day.
	ItemsOnDaySubject = "taskcal-api.items_on_day"

	// ItemGetRRuleSubject asks for an item's recurrence as an iCalendar
	// RRULE string, for external calendar subscriptions.
	ItemGetRRuleSubject = "taskcal-api.item_get_rrule"

	// LabelGetNameSubject asks for the name of a label by UID.
	LabelGetNameSubject = "taskcal-api.label_get_name"

	// AssistantCreateTaskSubject is the tool-call subject the assistant uses
	// to create a task.
	AssistantCreateTaskSubject = "taskcal-api.assistant.create_task"

	// AssistantCreateEventSubject is the tool-call subject the assistant
	// uses to create an event.
	AssistantCreateEventSubject = "taskcal-api.assistant.create_event"
)

// MessageAction is the action of an indexer message.
type MessageAction string

const (
	ActionCreated MessageAction = "created"
	ActionUpdated MessageAction = "updated"
	ActionDeleted MessageAction = "deleted"
)

// ItemIndexerMessage is the NATS message schema for item and label CRUD
// indexing messages.
type ItemIndexerMessage struct {
	Action MessageAction `json:"action"`
	Data   any           `json:"data"`
	// Tags is a list of tags to be set on the indexed resource for search.
	Tags []string `json:"tags"`
}

// ReminderMessage is the schema for reminder scheduling messages. The
// notification scheduler is keyed by the item UID and fires at Due.
type ReminderMessage struct {
	ItemUID string    `json:"item_uid"`
	Title   string    `json:"title,omitempty"`
	Due     time.Time `json:"due"`
}

// ItemsOnDayRequest is the query payload of ItemsOnDaySubject. Date is in
// "2006-01-02" form, interpreted in the service calendar's location.
type ItemsOnDayRequest struct {
	Date   string           `json:"date"`
	Filter VisibilityFilter `json:"filter"`
}

// CreateTaskToolCall is the payload of AssistantCreateTaskSubject.
type CreateTaskToolCall struct {
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	EstimateMinutes int        `json:"estimate_minutes,omitempty"`
	Subtasks        []string   `json:"subtasks,omitempty"`
	LabelUIDs       []string   `json:"label_uids,omitempty"`
}

// CreateEventToolCall is the payload of AssistantCreateEventSubject. The
// assistant does not expose recurrence; events it creates are one-time.
type CreateEventToolCall struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	LabelUIDs   []string   `json:"label_uids,omitempty"`
}
