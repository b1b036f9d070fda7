// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"taskcal/internal/domain"
	"taskcal/internal/domain/models"
)

// NatsItemRepository is the NATS KV store repository for calendar items.
type NatsItemRepository struct {
	*NatsBaseRepository[models.CalendarItem]
}

// NewNatsItemRepository creates a new NATS KV store repository for calendar items.
func NewNatsItemRepository(kvStore INatsKeyValue) *NatsItemRepository {
	return &NatsItemRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.CalendarItem](kvStore, "item"),
	}
}

func (r *NatsItemRepository) Create(ctx context.Context, item *models.CalendarItem) error {
	if item == nil {
		return domain.NewValidationError("item cannot be nil")
	}
	return r.NatsBaseRepository.Create(ctx, item.UID, item)
}

func (r *NatsItemRepository) Update(ctx context.Context, item *models.CalendarItem, revision uint64) error {
	if item == nil {
		return domain.NewValidationError("item cannot be nil")
	}
	return r.NatsBaseRepository.Update(ctx, item.UID, item, revision)
}

func (r *NatsItemRepository) ListAll(ctx context.Context) ([]*models.CalendarItem, error) {
	return r.ListEntities(ctx)
}
