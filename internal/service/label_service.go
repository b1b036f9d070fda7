// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"taskcal/internal/domain"
	"taskcal/internal/domain/models"
	"taskcal/internal/logging"
	"taskcal/pkg/utils"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LabelService implements the label CRUD operations.
type LabelService struct {
	LabelRepository domain.LabelRepository
	ItemRepository  domain.ItemRepository
	MessageBuilder  domain.MessageBuilder
	Config          ServiceConfig
}

// NewLabelService creates a new LabelService.
func NewLabelService(
	labelRepository domain.LabelRepository,
	itemRepository domain.ItemRepository,
	messageBuilder domain.MessageBuilder,
	config ServiceConfig,
) *LabelService {
	return &LabelService{
		LabelRepository: labelRepository,
		ItemRepository:  itemRepository,
		MessageBuilder:  messageBuilder,
		Config:          config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *LabelService) ServiceReady() bool {
	return s.LabelRepository != nil && s.ItemRepository != nil && s.MessageBuilder != nil
}

func (s *LabelService) validateLabel(label *models.Label) error {
	if label == nil {
		return domain.NewValidationError("label cannot be nil")
	}
	if label.Name == "" {
		return domain.NewValidationError("label name is required")
	}
	if label.Color != "" && !hexColorRe.MatchString(label.Color) {
		return domain.NewValidationError("label color must be a #rrggbb hex string")
	}
	return nil
}

// CreateLabel validates and stores a new label.
func (s *LabelService) CreateLabel(ctx context.Context, label *models.Label) (*models.Label, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "label service not initialized")
		return nil, domain.NewUnavailableError("label service is not available")
	}

	if err := s.validateLabel(label); err != nil {
		return nil, err
	}

	label.UID = uuid.New().String()
	now := time.Now().UTC()
	label.CreatedAt = utils.TimePtr(now)
	label.UpdatedAt = utils.TimePtr(now)

	ctx = logging.AppendCtx(ctx, slog.String("label_uid", label.UID))

	if err := s.LabelRepository.Create(ctx, label); err != nil {
		return nil, err
	}

	if err := s.MessageBuilder.SendIndexLabel(ctx, models.ActionCreated, label); err != nil {
		slog.ErrorContext(ctx, "error publishing label index message", logging.ErrKey, err)
	}

	slog.InfoContext(ctx, "created label", "name", label.Name)
	return label, nil
}

// GetLabel returns a label with its store revision.
func (s *LabelService) GetLabel(ctx context.Context, labelUID string) (*models.Label, uint64, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "label service not initialized")
		return nil, 0, domain.NewUnavailableError("label service is not available")
	}
	if labelUID == "" {
		return nil, 0, domain.NewValidationError("label UID is required")
	}

	return s.LabelRepository.GetWithRevision(ctx, labelUID)
}

// ListLabels returns all stored labels.
func (s *LabelService) ListLabels(ctx context.Context) ([]*models.Label, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "label service not initialized")
		return nil, domain.NewUnavailableError("label service is not available")
	}

	return s.LabelRepository.ListAll(ctx)
}

// UpdateLabel validates and stores an updated label under the given revision.
func (s *LabelService) UpdateLabel(ctx context.Context, label *models.Label, revision uint64) (*models.Label, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "label service not initialized")
		return nil, domain.NewUnavailableError("label service is not available")
	}

	if err := s.validateLabel(label); err != nil {
		return nil, err
	}
	if label.UID == "" {
		return nil, domain.NewValidationError("label UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("label_uid", label.UID))

	existing, currentRevision, err := s.LabelRepository.GetWithRevision(ctx, label.UID)
	if err != nil {
		return nil, err
	}
	if s.Config.SkipRevisionValidation {
		revision = currentRevision
	}

	label.CreatedAt = existing.CreatedAt
	label.UpdatedAt = utils.TimePtr(time.Now().UTC())

	if err := s.LabelRepository.Update(ctx, label, revision); err != nil {
		return nil, err
	}

	if err := s.MessageBuilder.SendIndexLabel(ctx, models.ActionUpdated, label); err != nil {
		slog.ErrorContext(ctx, "error publishing label index message", logging.ErrKey, err)
	}

	slog.InfoContext(ctx, "updated label", "name", label.Name)
	return label, nil
}

// DeleteLabel removes a label under the given revision and strips its UID
// from every item that carried it.
func (s *LabelService) DeleteLabel(ctx context.Context, labelUID string, revision uint64) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "label service not initialized")
		return domain.NewUnavailableError("label service is not available")
	}
	if labelUID == "" {
		return domain.NewValidationError("label UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("label_uid", labelUID))

	if s.Config.SkipRevisionValidation {
		_, currentRevision, err := s.LabelRepository.GetWithRevision(ctx, labelUID)
		if err != nil {
			return err
		}
		revision = currentRevision
	}

	if err := s.LabelRepository.Delete(ctx, labelUID, revision); err != nil {
		return err
	}

	if err := s.removeLabelFromItems(ctx, labelUID); err != nil {
		slog.ErrorContext(ctx, "error detaching deleted label from items", logging.ErrKey, err)
	}

	if err := s.MessageBuilder.SendDeleteIndexLabel(ctx, labelUID); err != nil {
		slog.ErrorContext(ctx, "error publishing label deletion message", logging.ErrKey, err)
	}

	slog.InfoContext(ctx, "deleted label")
	return nil
}

func (s *LabelService) removeLabelFromItems(ctx context.Context, labelUID string) error {
	items, err := s.ItemRepository.ListAll(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item == nil || !item.HasLabel(labelUID) {
			continue
		}

		kept := make([]string, 0, len(item.LabelUIDs)-1)
		for _, uid := range item.LabelUIDs {
			if uid != labelUID {
				kept = append(kept, uid)
			}
		}

		_, itemRevision, err := s.ItemRepository.GetWithRevision(ctx, item.UID)
		if err != nil {
			slog.WarnContext(ctx, "skipping item during label cleanup", "item_uid", item.UID, logging.ErrKey, err)
			continue
		}

		item.LabelUIDs = kept
		item.UpdatedAt = utils.TimePtr(time.Now().UTC())
		if err := s.ItemRepository.Update(ctx, item, itemRevision); err != nil {
			slog.WarnContext(ctx, "failed to detach label from item", "item_uid", item.UID, logging.ErrKey, err)
		}
	}

	return nil
}
