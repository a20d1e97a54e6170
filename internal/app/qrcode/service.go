package qrcode

import (
	"context"
	"errors"
	"fmt"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

// Service is the QR registry: one record per menu, idempotent create,
// payload URL rebuilt from the menu's frozen slug on every call.
type Service struct {
	menuRepo   interfaces.MenuRepository
	qrRepo     interfaces.QRCodeRepository
	viewRepo   interfaces.ViewEventRepository
	renderer   interfaces.QRImageRenderer
	logger     logger.Logger
	baseDomain string
}

func NewService(
	menuRepo interfaces.MenuRepository,
	qrRepo interfaces.QRCodeRepository,
	viewRepo interfaces.ViewEventRepository,
	renderer interfaces.QRImageRenderer,
	logger logger.Logger,
	baseDomain string,
) *Service {
	return &Service{
		menuRepo:   menuRepo,
		qrRepo:     qrRepo,
		viewRepo:   viewRepo,
		renderer:   renderer,
		logger:     logger,
		baseDomain: baseDomain,
	}
}

// Create registers a QR code for the menu. Calling it again for a menu
// that already has one returns the existing record unchanged.
func (s *Service) Create(ctx context.Context, subdomain, menuID string) (*interfaces.QRCodeStatus, error) {
	menu, err := s.ownedMenu(ctx, subdomain, menuID)
	if err != nil {
		return nil, err
	}

	existing, err := s.qrRepo.FindByMenuID(ctx, menuID)
	if err == nil {
		return s.status(ctx, menu, existing)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	code := domain.NewQRCode(menuID)
	if err := s.qrRepo.Create(ctx, code); err != nil {
		return nil, err
	}
	// Re-read in case a concurrent create won.
	code, err = s.qrRepo.FindByMenuID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("qr_created", fmt.Sprintf("QR code created for menu %s", menuID), "", map[string]interface{}{
		"menu_id":   menuID,
		"subdomain": subdomain,
	})
	return s.status(ctx, menu, code)
}

func (s *Service) Get(ctx context.Context, subdomain, menuID string) (*interfaces.QRCodeStatus, error) {
	menu, err := s.ownedMenu(ctx, subdomain, menuID)
	if err != nil {
		return nil, err
	}
	code, err := s.qrRepo.FindByMenuID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	return s.status(ctx, menu, code)
}

// Regenerate records a regeneration timestamp. The payload URL is
// derived from the frozen slug, so the printed code keeps working.
func (s *Service) Regenerate(ctx context.Context, subdomain, menuID string) (*interfaces.QRCodeStatus, error) {
	menu, err := s.ownedMenu(ctx, subdomain, menuID)
	if err != nil {
		return nil, err
	}
	code, err := s.qrRepo.FindByMenuID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	code.Regenerate()
	if err := s.qrRepo.Update(ctx, code); err != nil {
		return nil, err
	}

	s.logger.Debug("qr_regenerated", fmt.Sprintf("QR code regenerated for menu %s", menuID), "", map[string]interface{}{
		"menu_id": menuID,
	})
	return s.status(ctx, menu, code)
}

func (s *Service) Image(ctx context.Context, subdomain, menuID string, size int) ([]byte, error) {
	menu, err := s.ownedMenu(ctx, subdomain, menuID)
	if err != nil {
		return nil, err
	}
	if _, err := s.qrRepo.FindByMenuID(ctx, menuID); err != nil {
		return nil, err
	}
	return s.renderer.Render(domain.QRPayloadURL(s.baseDomain, subdomain, menu.Slug), size)
}

func (s *Service) ownedMenu(ctx context.Context, subdomain, menuID string) (*domain.Menu, error) {
	menu, err := s.menuRepo.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu.Subdomain != subdomain {
		return nil, domain.ErrPermissionDenied
	}
	return menu, nil
}

func (s *Service) status(ctx context.Context, menu *domain.Menu, code *domain.QRCode) (*interfaces.QRCodeStatus, error) {
	views, err := s.viewRepo.CountByMenu(ctx, menu.ID)
	if err != nil {
		return nil, err
	}
	return &interfaces.QRCodeStatus{
		Code:       code,
		PayloadURL: domain.QRPayloadURL(s.baseDomain, menu.Subdomain, menu.Slug),
		Views:      views,
	}, nil
}
