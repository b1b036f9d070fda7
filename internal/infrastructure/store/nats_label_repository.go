// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"taskcal/internal/domain"
	"taskcal/internal/domain/models"
)

// NatsLabelRepository is the NATS KV store repository for labels.
type NatsLabelRepository struct {
	*NatsBaseRepository[models.Label]
}

// NewNatsLabelRepository creates a new NATS KV store repository for labels.
func NewNatsLabelRepository(kvStore INatsKeyValue) *NatsLabelRepository {
	return &NatsLabelRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Label](kvStore, "label"),
	}
}

func (r *NatsLabelRepository) Create(ctx context.Context, label *models.Label) error {
	if label == nil {
		return domain.NewValidationError("label cannot be nil")
	}
	return r.NatsBaseRepository.Create(ctx, label.UID, label)
}

func (r *NatsLabelRepository) Update(ctx context.Context, label *models.Label, revision uint64) error {
	if label == nil {
		return domain.NewValidationError("label cannot be nil")
	}
	return r.NatsBaseRepository.Update(ctx, label.UID, label, revision)
}

func (r *NatsLabelRepository) ListAll(ctx context.Context) ([]*models.Label, error) {
	return r.ListEntities(ctx)
}
