// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taskcal/internal/domain"
	"taskcal/internal/domain/models"
	"taskcal/internal/logging"
	"taskcal/internal/recurrence"
	"taskcal/pkg/concurrent"
	"taskcal/pkg/utils"
)

// ItemService implements the calendar item CRUD operations and the
// domain.MessageHandler contract for item subjects.
type ItemService struct {
	ItemRepository domain.ItemRepository
	MessageBuilder domain.MessageBuilder
	Config         ServiceConfig
	pool           *concurrent.WorkerPool
}

// NewItemService creates a new ItemService.
func NewItemService(
	itemRepository domain.ItemRepository,
	messageBuilder domain.MessageBuilder,
	config ServiceConfig,
) *ItemService {
	return &ItemService{
		ItemRepository: itemRepository,
		MessageBuilder: messageBuilder,
		Config:         config,
		pool:           concurrent.NewWorkerPool(4),
	}
}

// ServiceReady checks if the service is ready for use.
func (s *ItemService) ServiceReady() bool {
	return s.ItemRepository != nil && s.MessageBuilder != nil
}

func (s *ItemService) validateItem(ctx context.Context, item *models.CalendarItem) error {
	if item == nil {
		return domain.NewValidationError("item cannot be nil")
	}
	if item.Title == "" {
		return domain.NewValidationError("item title is required")
	}
	if item.Kind != models.KindTask && item.Kind != models.KindEvent {
		return domain.NewValidationError("item kind must be task or event")
	}

	if item.IsRecurring {
		if item.RecurrenceRule == "" {
			return domain.NewValidationError("recurring item requires a recurrence rule")
		}
		if recurrence.DecodeRule(item.RecurrenceRule).IsAbsent() {
			slog.WarnContext(ctx, "rejecting undecodable recurrence rule", "rule", item.RecurrenceRule)
			return domain.NewValidationError("recurrence rule does not decode")
		}
	} else if item.RecurrenceRule != "" {
		return domain.NewValidationError("non-recurring item cannot carry a recurrence rule")
	}

	if item.StartTime != nil && item.EndTime != nil && item.EndTime.Before(*item.StartTime) {
		return domain.NewValidationError("item end time is before its start time")
	}

	return nil
}

// reminderDue returns the instant a reminder should fire for the item, or
// nil when no reminder applies. Recurring items are not reminded.
func reminderDue(item *models.CalendarItem) *time.Time {
	if item.IsRecurring || item.Completed {
		return nil
	}
	if item.Deadline != nil {
		return item.Deadline
	}
	return item.StartTime
}

// CreateItem validates and stores a new item, then publishes the index and
// reminder messages.
func (s *ItemService) CreateItem(ctx context.Context, item *models.CalendarItem) (*models.CalendarItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "item service not initialized")
		return nil, domain.NewUnavailableError("item service is not available")
	}

	if err := s.validateItem(ctx, item); err != nil {
		return nil, err
	}

	item.UID = uuid.New().String()
	now := time.Now().UTC()
	item.CreatedAt = utils.TimePtr(now)
	item.UpdatedAt = utils.TimePtr(now)

	ctx = logging.AppendCtx(ctx, slog.String("item_uid", item.UID))

	if err := s.ItemRepository.Create(ctx, item); err != nil {
		return nil, err
	}

	s.publishItemMessages(ctx, models.ActionCreated, item)

	slog.InfoContext(ctx, "created item", "kind", item.Kind, "recurring", item.IsRecurring)
	return item, nil
}

// GetItem returns an item with its store revision.
func (s *ItemService) GetItem(ctx context.Context, itemUID string) (*models.CalendarItem, uint64, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "item service not initialized")
		return nil, 0, domain.NewUnavailableError("item service is not available")
	}
	if itemUID == "" {
		return nil, 0, domain.NewValidationError("item UID is required")
	}

	return s.ItemRepository.GetWithRevision(ctx, itemUID)
}

// ListItems returns all stored items.
func (s *ItemService) ListItems(ctx context.Context) ([]*models.CalendarItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "item service not initialized")
		return nil, domain.NewUnavailableError("item service is not available")
	}

	return s.ItemRepository.ListAll(ctx)
}

// UpdateItem validates and stores an updated item under the given revision,
// then publishes the index and reminder messages.
func (s *ItemService) UpdateItem(ctx context.Context, item *models.CalendarItem, revision uint64) (*models.CalendarItem, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "item service not initialized")
		return nil, domain.NewUnavailableError("item service is not available")
	}

	if err := s.validateItem(ctx, item); err != nil {
		return nil, err
	}
	if item.UID == "" {
		return nil, domain.NewValidationError("item UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("item_uid", item.UID))

	existing, currentRevision, err := s.ItemRepository.GetWithRevision(ctx, item.UID)
	if err != nil {
		return nil, err
	}
	if s.Config.SkipRevisionValidation {
		revision = currentRevision
	}

	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = utils.TimePtr(time.Now().UTC())

	if err := s.ItemRepository.Update(ctx, item, revision); err != nil {
		return nil, err
	}

	s.publishItemMessages(ctx, models.ActionUpdated, item)

	slog.InfoContext(ctx, "updated item", "kind", item.Kind, "recurring", item.IsRecurring)
	return item, nil
}

// DeleteItem removes an item under the given revision, then publishes the
// index deletion and reminder cancellation.
func (s *ItemService) DeleteItem(ctx context.Context, itemUID string, revision uint64) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "item service not initialized")
		return domain.NewUnavailableError("item service is not available")
	}
	if itemUID == "" {
		return domain.NewValidationError("item UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("item_uid", itemUID))

	if s.Config.SkipRevisionValidation {
		_, currentRevision, err := s.ItemRepository.GetWithRevision(ctx, itemUID)
		if err != nil {
			return err
		}
		revision = currentRevision
	}

	if err := s.ItemRepository.Delete(ctx, itemUID, revision); err != nil {
		return err
	}

	// Messaging after a successful delete is best effort.
	errs := s.pool.RunAll(ctx,
		func() error { return s.MessageBuilder.SendDeleteIndexItem(ctx, itemUID) },
		func() error { return s.MessageBuilder.SendCancelReminder(ctx, itemUID) },
	)
	for _, err := range errs {
		slog.ErrorContext(ctx, "error publishing item deletion message", logging.ErrKey, err)
	}

	slog.InfoContext(ctx, "deleted item")
	return nil
}

// publishItemMessages sends the indexer message and keeps the reminder
// schedule in sync after a create or update. Failures are logged, not
// returned: the store write already succeeded.
func (s *ItemService) publishItemMessages(ctx context.Context, action models.MessageAction, item *models.CalendarItem) {
	if err := s.MessageBuilder.SendIndexItem(ctx, action, item); err != nil {
		slog.ErrorContext(ctx, "error publishing item index message", logging.ErrKey, err)
	}

	if due := reminderDue(item); due != nil {
		err := s.MessageBuilder.SendScheduleReminder(ctx, models.ReminderMessage{
			ItemUID: item.UID,
			Title:   item.Title,
			Due:     *due,
		})
		if err != nil {
			slog.ErrorContext(ctx, "error scheduling reminder", logging.ErrKey, err)
		}
	} else if action == models.ActionUpdated {
		if err := s.MessageBuilder.SendCancelReminder(ctx, item.UID); err != nil {
			slog.ErrorContext(ctx, "error cancelling reminder", logging.ErrKey, err)
		}
	}
}
