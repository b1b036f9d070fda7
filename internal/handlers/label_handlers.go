// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"taskcal/internal/domain"
	"taskcal/internal/domain/models"
	"taskcal/internal/logging"
	"taskcal/internal/service"
)

// LabelHandler handles label-related messages.
type LabelHandler struct {
	labelService *service.LabelService
}

// NewLabelHandler creates a new label handler instance.
func NewLabelHandler(labelService *service.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

func (h *LabelHandler) HandlerReady() bool {
	return h.labelService.ServiceReady()
}

// HandleMessage implements domain.MessageHandler
func (h *LabelHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling label NATS message")

	handlers := map[string]func(ctx context.Context, msg domain.Message) ([]byte, error){
		models.LabelGetNameSubject: h.HandleLabelGetName,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown label message subject")
		respond(ctx, msg, nil)
		return
	}

	response, err := handler(ctx, msg)
	if err != nil {
		slog.ErrorContext(ctx, "error handling label message", logging.ErrKey, err)
		respond(ctx, msg, nil)
		return
	}

	respond(ctx, msg, response)
}

// HandleLabelGetName is the message handler for the label-get-name subject.
// The message payload is a label UID and the response is its name.
func (h *LabelHandler) HandleLabelGetName(ctx context.Context, msg domain.Message) ([]byte, error) {
	labelUID := string(msg.Data())
	ctx = logging.AppendCtx(ctx, slog.String("label_uid", labelUID))

	if _, err := uuid.Parse(labelUID); err != nil {
		slog.ErrorContext(ctx, "error parsing label UID", logging.ErrKey, err)
		return nil, err
	}

	label, _, err := h.labelService.GetLabel(ctx, labelUID)
	if err != nil {
		slog.ErrorContext(ctx, "error getting label", logging.ErrKey, err)
		return nil, err
	}

	return []byte(label.Name), nil
}
