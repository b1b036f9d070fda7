// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskcal/internal/domain/mocks"
	"taskcal/internal/domain/models"
	"taskcal/internal/service"
)

func newLabelHandlerFixture() (*LabelHandler, *mocks.MockLabelRepository) {
	labelRepo := new(mocks.MockLabelRepository)
	itemRepo := new(mocks.MockItemRepository)
	msgBuilder := new(mocks.MockMessageBuilder)

	labelService := service.NewLabelService(labelRepo, itemRepo, msgBuilder, service.ServiceConfig{})
	return NewLabelHandler(labelService), labelRepo
}

func TestLabelHandler_HandleLabelGetName(t *testing.T) {
	handler, labelRepo := newLabelHandlerFixture()
	labelUID := uuid.New().String()

	labelRepo.On("GetWithRevision", mock.Anything, labelUID).
		Return(&models.Label{UID: labelUID, Name: "errands", Color: "#ff8800"}, uint64(1), nil)

	msg := mocks.NewMockMessage([]byte(labelUID), models.LabelGetNameSubject)
	response, err := handler.HandleLabelGetName(context.Background(), msg)

	require.NoError(t, err)
	assert.Equal(t, "errands", string(response))
}

func TestLabelHandler_HandleLabelGetName_InvalidUID(t *testing.T) {
	handler, _ := newLabelHandlerFixture()

	msg := mocks.NewMockMessage([]byte("not-a-uuid"), models.LabelGetNameSubject)
	response, err := handler.HandleLabelGetName(context.Background(), msg)

	assert.Error(t, err)
	assert.Nil(t, response)
}

func TestLabelHandler_HandleMessage_Dispatch(t *testing.T) {
	handler, labelRepo := newLabelHandlerFixture()
	labelUID := uuid.New().String()

	labelRepo.On("GetWithRevision", mock.Anything, labelUID).
		Return(&models.Label{UID: labelUID, Name: "home"}, uint64(2), nil)

	msg := mocks.NewMockMessage([]byte(labelUID), models.LabelGetNameSubject)
	msg.On("HasReply").Return(true)
	msg.On("Respond", []byte("home")).Return(nil)

	handler.HandleMessage(context.Background(), msg)

	msg.AssertExpectations(t)
}

func TestLabelHandler_HandleMessage_UnknownSubject(t *testing.T) {
	handler, _ := newLabelHandlerFixture()

	msg := mocks.NewMockMessage(nil, "taskcal-api.bogus")
	msg.On("HasReply").Return(false)

	handler.HandleMessage(context.Background(), msg)

	msg.AssertExpectations(t)
}
