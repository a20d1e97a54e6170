package registry

import (
	"context"
	"fmt"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

// Service owns the organization and menu registries. Every menu id
// lookup is checked against the calling organization: ids alone never
// cross the tenant boundary.
type Service struct {
	orgRepo  interfaces.OrganizationRepository
	menuRepo interfaces.MenuRepository
	logger   logger.Logger
}

func NewService(orgRepo interfaces.OrganizationRepository, menuRepo interfaces.MenuRepository, logger logger.Logger) *Service {
	return &Service{
		orgRepo:  orgRepo,
		menuRepo: menuRepo,
		logger:   logger,
	}
}

func (s *Service) CreateOrganization(ctx context.Context, cmd interfaces.CreateOrganizationCommand) (*domain.Organization, error) {
	org, err := domain.NewOrganization(cmd.Subdomain, cmd.Name, domain.Tier(cmd.Tier))
	if err != nil {
		s.logger.Error("validation_failed", "Organization validation failed", "", nil, err)
		return nil, err
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	s.logger.Info("organization_created", fmt.Sprintf("Organization %s created", org.Subdomain), "", map[string]interface{}{
		"subdomain": org.Subdomain,
		"tier":      string(org.Tier),
	})
	return org, nil
}

func (s *Service) GetOrganization(ctx context.Context, subdomain string) (*domain.Organization, error) {
	return s.orgRepo.FindBySubdomain(ctx, subdomain)
}

func (s *Service) UpdateBusinessInfo(ctx context.Context, subdomain string, info domain.BusinessInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}
	return s.orgRepo.UpdateBusinessInfo(ctx, subdomain, info)
}

func (s *Service) ListMenus(ctx context.Context, subdomain string) ([]*domain.Menu, error) {
	if _, err := s.orgRepo.FindBySubdomain(ctx, subdomain); err != nil {
		return nil, err
	}
	return s.menuRepo.ListBySubdomain(ctx, subdomain)
}

// GetMenu resolves a menu id inside the calling organization. A menu
// owned by another tenant is a permission error, not a missing record.
func (s *Service) GetMenu(ctx context.Context, subdomain, menuID string) (*domain.Menu, error) {
	menu, err := s.menuRepo.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu.Subdomain != subdomain {
		s.logger.Error("cross_tenant_access", "Menu id addressed from another organization", "", map[string]interface{}{
			"menu_id":   menuID,
			"subdomain": subdomain,
		}, domain.ErrPermissionDenied)
		return nil, domain.ErrPermissionDenied
	}
	return menu, nil
}

func (s *Service) CreateMenu(ctx context.Context, subdomain string, cmd interfaces.CreateMenuCommand) (*domain.Menu, error) {
	if _, err := s.orgRepo.FindBySubdomain(ctx, subdomain); err != nil {
		return nil, err
	}

	menu, err := domain.NewMenu(subdomain, cmd.Name, cmd.Description, cmd.ImageURL, domain.Layout(cmd.Layout))
	if err != nil {
		s.logger.Error("validation_failed", "Menu validation failed", "", nil, err)
		return nil, err
	}
	menu.StartTime = cmd.StartTime
	menu.EndTime = cmd.EndTime
	menu.AvailableDays = cmd.AvailableDays
	if err := menu.Validate(); err != nil {
		return nil, err
	}

	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, err
	}

	s.logger.Debug("menu_created", fmt.Sprintf("Menu %s created", menu.Name), "", map[string]interface{}{
		"menu_id":   menu.ID,
		"subdomain": subdomain,
		"slug":      menu.Slug,
	})
	return menu, nil
}

func (s *Service) UpdateMenu(ctx context.Context, subdomain, menuID string, cmd interfaces.UpdateMenuCommand) (*domain.Menu, error) {
	menu, err := s.GetMenu(ctx, subdomain, menuID)
	if err != nil {
		return nil, err
	}

	expected := menu.UpdatedAt
	menu.Name = cmd.Name
	menu.Description = cmd.Description
	menu.ImageURL = cmd.ImageURL
	menu.StartTime = cmd.StartTime
	menu.EndTime = cmd.EndTime
	menu.AvailableDays = cmd.AvailableDays
	if cmd.Layout != "" {
		menu.Layout = domain.Layout(cmd.Layout)
	}
	if err := menu.Validate(); err != nil {
		return nil, err
	}
	menu.Touch()

	if err := s.menuRepo.Update(ctx, menu, expected); err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteMenu removes the menu together with its categories, items and
// QR code (repository-level cascade).
func (s *Service) DeleteMenu(ctx context.Context, subdomain, menuID string) error {
	if _, err := s.GetMenu(ctx, subdomain, menuID); err != nil {
		return err
	}
	if err := s.menuRepo.Delete(ctx, menuID); err != nil {
		return err
	}

	s.logger.Info("menu_deleted", fmt.Sprintf("Menu %s deleted", menuID), "", map[string]interface{}{
		"menu_id":   menuID,
		"subdomain": subdomain,
	})
	return nil
}

func (s *Service) SetListed(ctx context.Context, subdomain, menuID string, listed bool) (*domain.Menu, error) {
	menu, err := s.GetMenu(ctx, subdomain, menuID)
	if err != nil {
		return nil, err
	}

	expected := menu.UpdatedAt
	menu.IsListed = listed
	menu.Touch()

	if err := s.menuRepo.Update(ctx, menu, expected); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *Service) AddCategory(ctx context.Context, subdomain, menuID string, cmd interfaces.AddCategoryCommand) (*domain.Category, error) {
	menu, err := s.GetMenu(ctx, subdomain, menuID)
	if err != nil {
		return nil, err
	}

	category, err := domain.NewCategory(menuID, cmd.Name, cmd.Description, len(menu.Categories))
	if err != nil {
		return nil, err
	}
	if err := s.menuRepo.AddCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) AddItem(ctx context.Context, subdomain, menuID string, cmd interfaces.AddItemCommand) (*domain.MenuItem, error) {
	menu, err := s.GetMenu(ctx, subdomain, menuID)
	if err != nil {
		return nil, err
	}

	var target *domain.Category
	for i := range menu.Categories {
		if menu.Categories[i].ID == cmd.CategoryID {
			target = &menu.Categories[i]
			break
		}
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}

	item, err := domain.NewMenuItem(cmd.CategoryID, cmd.Name, cmd.Description, cmd.Price,
		cmd.ImageURL, cmd.Ingredients, cmd.Allergens, cmd.Calories, len(target.Items))
	if err != nil {
		return nil, err
	}
	if err := s.menuRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) SetItemAvailability(ctx context.Context, subdomain, itemID string, available bool) error {
	_, menu, err := s.menuRepo.FindItem(ctx, itemID)
	if err != nil {
		return err
	}
	if menu.Subdomain != subdomain {
		return domain.ErrPermissionDenied
	}
	return s.menuRepo.SetItemAvailability(ctx, itemID, available)
}
