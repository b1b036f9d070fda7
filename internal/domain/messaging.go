// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"taskcal/internal/domain/models"
)

// Message abstracts an inbound broker message so handlers stay decoupled from
// the transport client.
type Message interface {
	Subject() string
	Data() []byte
	Respond(data []byte) error
	HasReply() bool
}

// MessageHandler processes a single inbound message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message)
}

// ItemIndexSender publishes item lifecycle events for the search indexer.
type ItemIndexSender interface {
	SendIndexItem(ctx context.Context, action models.MessageAction, item *models.CalendarItem) error
	SendDeleteIndexItem(ctx context.Context, itemUID string) error
}

// LabelIndexSender publishes label lifecycle events for the search indexer.
type LabelIndexSender interface {
	SendIndexLabel(ctx context.Context, action models.MessageAction, label *models.Label) error
	SendDeleteIndexLabel(ctx context.Context, labelUID string) error
}

// ReminderSender publishes reminder scheduling requests for items that carry
// a due time.
type ReminderSender interface {
	SendScheduleReminder(ctx context.Context, reminder models.ReminderMessage) error
	SendCancelReminder(ctx context.Context, itemUID string) error
}

// MessageBuilder aggregates all outbound publishing concerns.
type MessageBuilder interface {
	ItemIndexSender
	LabelIndexSender
	ReminderSender
}
