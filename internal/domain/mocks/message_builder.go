// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskcal/internal/domain/models"
)

// MockMessageBuilder implements MessageBuilder for testing
type MockMessageBuilder struct {
	mock.Mock
}

func (m *MockMessageBuilder) SendIndexItem(ctx context.Context, action models.MessageAction, item *models.CalendarItem) error {
	args := m.Called(ctx, action, item)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendDeleteIndexItem(ctx context.Context, itemUID string) error {
	args := m.Called(ctx, itemUID)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendIndexLabel(ctx context.Context, action models.MessageAction, label *models.Label) error {
	args := m.Called(ctx, action, label)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendDeleteIndexLabel(ctx context.Context, labelUID string) error {
	args := m.Called(ctx, labelUID)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendScheduleReminder(ctx context.Context, reminder models.ReminderMessage) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendCancelReminder(ctx context.Context, itemUID string) error {
	args := m.Called(ctx, itemUID)
	return args.Error(0)
}
