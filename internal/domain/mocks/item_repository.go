// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskcal/internal/domain/models"
)

// MockItemRepository implements ItemRepository for testing
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.CalendarItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Exists(ctx context.Context, itemUID string) (bool, error) {
	args := m.Called(ctx, itemUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Get(ctx context.Context, itemUID string) (*models.CalendarItem, error) {
	args := m.Called(ctx, itemUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalendarItem), args.Error(1)
}

func (m *MockItemRepository) GetWithRevision(ctx context.Context, itemUID string) (*models.CalendarItem, uint64, error) {
	args := m.Called(ctx, itemUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.CalendarItem), args.Get(1).(uint64), args.Error(2)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.CalendarItem, revision uint64) error {
	args := m.Called(ctx, item, revision)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, itemUID string, revision uint64) error {
	args := m.Called(ctx, itemUID, revision)
	return args.Error(0)
}

func (m *MockItemRepository) ListAll(ctx context.Context) ([]*models.CalendarItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CalendarItem), args.Error(1)
}
