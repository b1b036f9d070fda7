// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

// Package messaging publishes taskcal events to the NATS server.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"taskcal/internal/domain/models"
	"taskcal/internal/logging"
)

// INatsConn is the NATS connection interface the message builder needs.
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder constructs outbound messages and sends them to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// sendIndexerMessage sends an entity lifecycle message to the indexer subject.
func (m *MessageBuilder) sendIndexerMessage(ctx context.Context, subject string, action models.MessageAction, data []byte, tags []string) error {
	var payload any
	switch action {
	case models.ActionCreated, models.ActionUpdated:
		// The data should be a JSON object.
		var jsonData any
		if err := json.Unmarshal(data, &jsonData); err != nil {
			slog.ErrorContext(ctx, "error unmarshalling data into JSON", logging.ErrKey, err, "subject", subject)
			return err
		}

		// Decode the JSON data into a map[string]any since that is what the indexer expects.
		config := mapstructure.DecoderConfig{
			TagName: "json",
			Result:  &payload,
		}
		decoder, err := mapstructure.NewDecoder(&config)
		if err != nil {
			slog.ErrorContext(ctx, "error creating decoder", logging.ErrKey, err, "subject", subject)
			return err
		}
		err = decoder.Decode(jsonData)
		if err != nil {
			slog.ErrorContext(ctx, "error decoding data", logging.ErrKey, err, "subject", subject)
			return err
		}
	case models.ActionDeleted:
		// The data should just be a string of the UID being deleted.
		payload = string(data)
	}

	message := models.ItemIndexerMessage{
		Action: action,
		Data:   payload,
		Tags:   tags,
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message into JSON", logging.ErrKey, err, "subject", subject)
		return err
	}

	slog.DebugContext(ctx, "constructed indexer message",
		"subject", subject,
		"action", action,
		"tags_count", len(tags),
	)

	return m.sendMessage(ctx, subject, messageBytes)
}

// SendIndexItem sends an item lifecycle message for indexing.
func (m *MessageBuilder) SendIndexItem(ctx context.Context, action models.MessageAction, item *models.CalendarItem) error {
	dataBytes, err := json.Marshal(item)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendIndexerMessage(ctx, models.IndexItemSubject, action, dataBytes, item.Tags())
}

// SendDeleteIndexItem sends an item deletion message for indexing.
func (m *MessageBuilder) SendDeleteIndexItem(ctx context.Context, itemUID string) error {
	return m.sendIndexerMessage(ctx, models.IndexItemSubject, models.ActionDeleted, []byte(itemUID), nil)
}

// SendIndexLabel sends a label lifecycle message for indexing.
func (m *MessageBuilder) SendIndexLabel(ctx context.Context, action models.MessageAction, label *models.Label) error {
	dataBytes, err := json.Marshal(label)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendIndexerMessage(ctx, models.IndexLabelSubject, action, dataBytes, label.Tags())
}

// SendDeleteIndexLabel sends a label deletion message for indexing.
func (m *MessageBuilder) SendDeleteIndexLabel(ctx context.Context, labelUID string) error {
	return m.sendIndexerMessage(ctx, models.IndexLabelSubject, models.ActionDeleted, []byte(labelUID), nil)
}

// SendScheduleReminder asks the notification scheduler to fire a reminder
// for the item at its due time.
func (m *MessageBuilder) SendScheduleReminder(ctx context.Context, reminder models.ReminderMessage) error {
	dataBytes, err := json.Marshal(reminder)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling reminder into JSON", logging.ErrKey, err)
		return err
	}

	slog.DebugContext(ctx, "scheduling reminder",
		"item_uid", reminder.ItemUID,
		"due", reminder.Due.Format(time.RFC3339),
	)

	return m.sendMessage(ctx, models.ReminderScheduleSubject, dataBytes)
}

// SendCancelReminder cancels any reminder scheduled for the item.
func (m *MessageBuilder) SendCancelReminder(ctx context.Context, itemUID string) error {
	return m.sendMessage(ctx, models.ReminderCancelSubject, []byte(itemUID))
}
