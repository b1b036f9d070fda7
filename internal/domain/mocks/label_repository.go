// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskcal/internal/domain/models"
)

// MockLabelRepository implements LabelRepository for testing
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) Create(ctx context.Context, label *models.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockLabelRepository) Get(ctx context.Context, labelUID string) (*models.Label, error) {
	args := m.Called(ctx, labelUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Label), args.Error(1)
}

func (m *MockLabelRepository) GetWithRevision(ctx context.Context, labelUID string) (*models.Label, uint64, error) {
	args := m.Called(ctx, labelUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.Label), args.Get(1).(uint64), args.Error(2)
}

func (m *MockLabelRepository) Update(ctx context.Context, label *models.Label, revision uint64) error {
	args := m.Called(ctx, label, revision)
	return args.Error(0)
}

func (m *MockLabelRepository) Delete(ctx context.Context, labelUID string, revision uint64) error {
	args := m.Called(ctx, labelUID, revision)
	return args.Error(0)
}

func (m *MockLabelRepository) ListAll(ctx context.Context) ([]*models.Label, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Label), args.Error(1)
}
