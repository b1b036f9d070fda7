// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

// Package handlers dispatches inbound NATS messages to the services.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taskcal/internal/domain"
	"taskcal/internal/domain/models"
	"taskcal/internal/logging"
	"taskcal/internal/recurrence"
	"taskcal/internal/service"
)

// ItemHandler handles item query messages and assistant tool-call messages.
// The services arrive by constructor injection; handlers hold no process
// globals.
type ItemHandler struct {
	itemService       *service.ItemService
	occurrenceService *service.OccurrenceService
}

func NewItemHandler(
	itemService *service.ItemService,
	occurrenceService *service.OccurrenceService,
) *ItemHandler {
	return &ItemHandler{
		itemService:       itemService,
		occurrenceService: occurrenceService,
	}
}

func (h *ItemHandler) HandlerReady() bool {
	return h.itemService.ServiceReady() && h.occurrenceService.ServiceReady()
}

// HandleMessage implements domain.MessageHandler
func (h *ItemHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling NATS message")

	handlers := map[string]func(ctx context.Context, msg domain.Message) ([]byte, error){
		models.ItemGetTitleSubject:         h.HandleItemGetTitle,
		models.ItemGetRRuleSubject:         h.HandleItemGetRRule,
		models.ItemsOnDaySubject:           h.HandleItemsOnDay,
		models.AssistantCreateTaskSubject:  h.HandleAssistantCreateTask,
		models.AssistantCreateEventSubject: h.HandleAssistantCreateEvent,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown subject")
		respond(ctx, msg, nil)
		return
	}

	response, err := handler(ctx, msg)
	if err != nil {
		slog.ErrorContext(ctx, "error handling message", logging.ErrKey, err)
		respond(ctx, msg, nil)
		return
	}

	respond(ctx, msg, response)
}

func respond(ctx context.Context, msg domain.Message, response []byte) {
	if !msg.HasReply() {
		slog.DebugContext(ctx, "handled NATS message (no reply expected)")
		return
	}
	if err := msg.Respond(response); err != nil {
		slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
	}
}

// HandleItemGetTitle is the message handler for the item-get-title subject.
// The message data is the item UID; the reply is its title.
func (h *ItemHandler) HandleItemGetTitle(ctx context.Context, msg domain.Message) ([]byte, error) {
	itemUID := string(msg.Data())
	ctx = logging.AppendCtx(ctx, slog.String("item_uid", itemUID))

	if _, err := uuid.Parse(itemUID); err != nil {
		slog.ErrorContext(ctx, "error parsing item UID", logging.ErrKey, err)
		return nil, err
	}

	item, _, err := h.itemService.GetItem(ctx, itemUID)
	if err != nil {
		slog.ErrorContext(ctx, "error getting item", logging.ErrKey, err)
		return nil, err
	}

	return []byte(item.Title), nil
}

// HandleItemGetRRule is the message handler for the item-get-rrule subject.
// The message data is the item UID; the reply is the item's recurrence as an
// iCalendar RRULE string, or empty when the rule has no RRULE form.
func (h *ItemHandler) HandleItemGetRRule(ctx context.Context, msg domain.Message) ([]byte, error) {
	itemUID := string(msg.Data())
	ctx = logging.AppendCtx(ctx, slog.String("item_uid", itemUID))

	if _, err := uuid.Parse(itemUID); err != nil {
		slog.ErrorContext(ctx, "error parsing item UID", logging.ErrKey, err)
		return nil, err
	}

	item, _, err := h.itemService.GetItem(ctx, itemUID)
	if err != nil {
		slog.ErrorContext(ctx, "error getting item", logging.ErrKey, err)
		return nil, err
	}
	if !item.IsRecurring {
		return nil, domain.NewValidationError("item is not recurring")
	}

	rule, ok := recurrence.DecodeRule(item.RecurrenceRule).Get()
	if !ok {
		return nil, domain.NewValidationError("item recurrence rule is not decodable")
	}

	exported, ok := recurrence.ExportRRule(rule)
	if !ok {
		slog.DebugContext(ctx, "recurrence rule has no RRULE form")
		return []byte{}, nil
	}

	return []byte(exported), nil
}

// HandleItemsOnDay is the message handler for the items-on-day query. The
// message data is a JSON ItemsOnDayRequest; the reply is the JSON array of
// matching items, sorted for display.
func (h *ItemHandler) HandleItemsOnDay(ctx context.Context, msg domain.Message) ([]byte, error) {
	var req models.ItemsOnDayRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling items-on-day request", logging.ErrKey, err)
		return nil, err
	}

	date, err := time.ParseInLocation(time.DateOnly, req.Date, h.occurrenceService.Calendar.Location)
	if err != nil {
		slog.ErrorContext(ctx, "error parsing query date", logging.ErrKey, err, "date", req.Date)
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("date", req.Date))

	items, err := h.occurrenceService.ItemsOn(ctx, date, req.Filter)
	if err != nil {
		slog.ErrorContext(ctx, "error querying items on day", logging.ErrKey, err)
		return nil, err
	}

	response, err := json.Marshal(items)
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling items-on-day response", logging.ErrKey, err)
		return nil, err
	}

	slog.DebugContext(ctx, "resolved items on day", "count", len(items))
	return response, nil
}

// HandleAssistantCreateTask is the message handler for the assistant's
// create-task tool call. The reply is the created item as JSON.
func (h *ItemHandler) HandleAssistantCreateTask(ctx context.Context, msg domain.Message) ([]byte, error) {
	var call models.CreateTaskToolCall
	if err := json.Unmarshal(msg.Data(), &call); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling create-task tool call", logging.ErrKey, err)
		return nil, err
	}
	if call.Title == "" {
		return nil, fmt.Errorf("task title is required")
	}

	subtasks := make([]models.Subtask, 0, len(call.Subtasks))
	for _, title := range call.Subtasks {
		subtasks = append(subtasks, models.Subtask{Title: title})
	}

	item := &models.CalendarItem{
		Kind:            models.KindTask,
		Title:           call.Title,
		Description:     call.Description,
		Deadline:        call.Deadline,
		EstimateMinutes: call.EstimateMinutes,
		Subtasks:        subtasks,
		LabelUIDs:       call.LabelUIDs,
	}

	created, err := h.itemService.CreateItem(ctx, item)
	if err != nil {
		slog.ErrorContext(ctx, "error creating task from tool call", logging.ErrKey, err)
		return nil, err
	}

	slog.InfoContext(ctx, "assistant created task", "item_uid", created.UID)
	return json.Marshal(created)
}

// HandleAssistantCreateEvent is the message handler for the assistant's
// create-event tool call. Assistant-created events are one-time; recurrence
// stays in the editor. The reply is the created item as JSON.
func (h *ItemHandler) HandleAssistantCreateEvent(ctx context.Context, msg domain.Message) ([]byte, error) {
	var call models.CreateEventToolCall
	if err := json.Unmarshal(msg.Data(), &call); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling create-event tool call", logging.ErrKey, err)
		return nil, err
	}
	if call.Title == "" {
		return nil, fmt.Errorf("event title is required")
	}

	item := &models.CalendarItem{
		Kind:        models.KindEvent,
		Title:       call.Title,
		Description: call.Description,
		StartTime:   call.StartTime,
		EndTime:     call.EndTime,
		LabelUIDs:   call.LabelUIDs,
	}

	created, err := h.itemService.CreateItem(ctx, item)
	if err != nil {
		slog.ErrorContext(ctx, "error creating event from tool call", logging.ErrKey, err)
		return nil, err
	}

	slog.InfoContext(ctx, "assistant created event", "item_uid", created.UID)
	return json.Marshal(created)
}
