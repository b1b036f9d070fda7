// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"taskcal/internal/domain/models"
)

// ItemRepository is the storage contract for calendar items. Revisions come
// from the underlying key-value store and back optimistic concurrency on
// update and delete.
type ItemRepository interface {
	Create(ctx context.Context, item *models.CalendarItem) error
	Exists(ctx context.Context, itemUID string) (bool, error)
	Get(ctx context.Context, itemUID string) (*models.CalendarItem, error)
	GetWithRevision(ctx context.Context, itemUID string) (*models.CalendarItem, uint64, error)
	Update(ctx context.Context, item *models.CalendarItem, revision uint64) error
	Delete(ctx context.Context, itemUID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.CalendarItem, error)
}

// LabelRepository is the storage contract for labels.
type LabelRepository interface {
	Create(ctx context.Context, label *models.Label) error
	Get(ctx context.Context, labelUID string) (*models.Label, error)
	GetWithRevision(ctx context.Context, labelUID string) (*models.Label, uint64, error)
	Update(ctx context.Context, label *models.Label, revision uint64) error
	Delete(ctx context.Context, labelUID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.Label, error)
}
