package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

type ViewEventHandler struct {
	service interfaces.IngestService
	logger  logger.Logger
}

func NewViewEventHandler(service interfaces.IngestService, logger logger.Logger) *ViewEventHandler {
	return &ViewEventHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ViewEventHandler) HandleViewEvent(ctx context.Context, body []byte) error {
	var msg interfaces.ViewEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse view event message", "", nil, err)
		return fmt.Errorf("invalid view event: %w", err)
	}

	return h.service.HandleViewEvent(ctx, msg)
}
