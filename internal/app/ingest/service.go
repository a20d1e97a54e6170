package ingest

import (
	"context"
	"fmt"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

// Service persists view events consumed from the queue. The append is
// the only write; aggregates stay query-time so this path never takes
// a shared lock.
type Service struct {
	viewRepo interfaces.ViewEventRepository
	logger   logger.Logger
}

func NewService(viewRepo interfaces.ViewEventRepository, logger logger.Logger) *Service {
	return &Service{
		viewRepo: viewRepo,
		logger:   logger,
	}
}

func (s *Service) HandleViewEvent(ctx context.Context, msg interfaces.ViewEventMessage) error {
	event := &domain.ViewEvent{
		Subdomain:  msg.Subdomain,
		MenuID:     msg.MenuID,
		ItemName:   msg.ItemName,
		Device:     msg.Device,
		DurationMs: msg.DurationMs,
		OccurredAt: msg.OccurredAt,
	}
	if err := event.Validate(); err != nil {
		s.logger.Error("event_invalid", "Dropping malformed view event", "", map[string]interface{}{
			"subdomain": msg.Subdomain,
			"menu_id":   msg.MenuID,
		}, err)
		return fmt.Errorf("invalid view event: %w", err)
	}

	if err := s.viewRepo.Append(ctx, event); err != nil {
		return fmt.Errorf("failed to store view event: %w", err)
	}

	s.logger.Debug("event_stored", fmt.Sprintf("View event stored for %s", msg.Subdomain), "", map[string]interface{}{
		"subdomain": msg.Subdomain,
		"menu_id":   msg.MenuID,
		"device":    string(msg.Device),
	})
	return nil
}
