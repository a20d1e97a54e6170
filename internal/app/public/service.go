package public

import (
	"context"
	"fmt"
	"time"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

// Service resolves the customer-facing menu viewer. Every failure is
// the same not-found: an unknown restaurant, an unknown slug and an
// unlisted menu must stay indistinguishable to the caller.
type Service struct {
	orgRepo   interfaces.OrganizationRepository
	menuRepo  interfaces.MenuRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
}

func NewService(orgRepo interfaces.OrganizationRepository, menuRepo interfaces.MenuRepository, publisher interfaces.MessagePublisher, logger logger.Logger) *Service {
	return &Service{
		orgRepo:   orgRepo,
		menuRepo:  menuRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) ResolveMenus(ctx context.Context, subdomain string) ([]interfaces.PublicMenuSummary, error) {
	if _, err := s.orgRepo.FindBySubdomain(ctx, subdomain); err != nil {
		return nil, domain.ErrNotFound
	}

	menus, err := s.menuRepo.ListBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	summaries := []interfaces.PublicMenuSummary{}
	for _, menu := range menus {
		if !menu.IsListed {
			continue
		}
		summaries = append(summaries, interfaces.PublicMenuSummary{
			Name:        menu.Name,
			Description: menu.Description,
			Slug:        menu.Slug,
			ImageURL:    menu.ImageURL,
		})
	}
	return summaries, nil
}

func (s *Service) ResolveMenu(ctx context.Context, subdomain, slug string) (*interfaces.PublicMenu, error) {
	org, err := s.orgRepo.FindBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	menu, err := s.menuRepo.FindBySlug(ctx, subdomain, slug)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if !menu.IsListed {
		// Same shape as a missing menu so unlisted menus do not leak.
		return nil, domain.ErrNotFound
	}

	return &interfaces.PublicMenu{
		RestaurantName: org.DisplayName(),
		MenuName:       menu.Name,
		Layout:         menu.Layout,
		Items:          menu.AvailableItems(),
	}, nil
}

// RecordView appends a view event for a resolved menu. The write path
// is fire-and-forget through the message queue; a publish failure is
// logged but never surfaces to the viewer.
func (s *Service) RecordView(ctx context.Context, subdomain, slug string, cmd interfaces.RecordViewCommand) error {
	menu, err := s.menuRepo.FindBySlug(ctx, subdomain, slug)
	if err != nil || !menu.IsListed {
		return domain.ErrNotFound
	}

	msg := interfaces.ViewEventMessage{
		Subdomain:  subdomain,
		MenuID:     menu.ID,
		ItemName:   cmd.ItemName,
		Device:     cmd.Device,
		DurationMs: cmd.DurationMs,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.publisher.PublishViewEvent(ctx, msg); err != nil {
		s.logger.Error("view_publish_failed", fmt.Sprintf("Failed to publish view event for %s/%s", subdomain, slug), "", map[string]interface{}{
			"subdomain": subdomain,
			"menu_id":   menu.ID,
		}, err)
	}
	return nil
}
