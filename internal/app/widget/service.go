package widget

import (
	"context"
	"fmt"
	"sort"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

// Service enforces widget entitlement. Non-enterprise widget sets are
// server-defined constants: toggles are rejected before any state is
// touched.
type Service struct {
	orgRepo interfaces.OrganizationRepository
	logger  logger.Logger
}

func NewService(orgRepo interfaces.OrganizationRepository, logger logger.Logger) *Service {
	return &Service{
		orgRepo: orgRepo,
		logger:  logger,
	}
}

func (s *Service) Catalog() []domain.Widget {
	return domain.WidgetCatalog()
}

func (s *Service) Enabled(ctx context.Context, subdomain string) ([]string, error) {
	org, err := s.orgRepo.FindBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	return sortedWidgetIDs(org.EnabledWidgets), nil
}

func (s *Service) IsEnabled(ctx context.Context, subdomain, widgetID string) (bool, error) {
	org, err := s.orgRepo.FindBySubdomain(ctx, subdomain)
	if err != nil {
		return false, err
	}
	return org.EnabledWidgets[widgetID], nil
}

func (s *Service) Toggle(ctx context.Context, subdomain, widgetID string) ([]string, error) {
	org, err := s.orgRepo.FindBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	if !domain.KnownWidget(widgetID) {
		return nil, fmt.Errorf("%w: unknown widget %s", domain.ErrNotFound, widgetID)
	}
	if !domain.CanEditWidgets(org.Tier) {
		s.logger.Debug("widget_toggle_denied", fmt.Sprintf("Tier %s may not edit widgets", org.Tier), "", map[string]interface{}{
			"subdomain": subdomain,
			"widget_id": widgetID,
			"tier":      string(org.Tier),
		})
		return nil, fmt.Errorf("%w: widget set is fixed for tier %s", domain.ErrPermissionDenied, org.Tier)
	}

	if org.EnabledWidgets[widgetID] {
		delete(org.EnabledWidgets, widgetID)
	} else {
		org.EnabledWidgets[widgetID] = true
	}

	if err := s.orgRepo.UpdateEnabledWidgets(ctx, subdomain, org.EnabledWidgets); err != nil {
		return nil, err
	}
	return sortedWidgetIDs(org.EnabledWidgets), nil
}

func sortedWidgetIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id, on := range set {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
