package interfaces

import (
	"context"
	"time"

	"github.com/menuqrs/menuqr/internal/domain"
)

// Repository interfaces (Adapter/Postgres, Adapter/Memory)

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	FindBySubdomain(ctx context.Context, subdomain string) (*domain.Organization, error)
	UpdateBusinessInfo(ctx context.Context, subdomain string, info domain.BusinessInfo) error
	UpdateEnabledWidgets(ctx context.Context, subdomain string, widgets map[string]bool) error
}

type MenuRepository interface {
	Create(ctx context.Context, menu *domain.Menu) error
	// FindByID returns the menu regardless of owner; services check
	// ownership on every id lookup.
	FindByID(ctx context.Context, menuID string) (*domain.Menu, error)
	FindBySlug(ctx context.Context, subdomain, slug string) (*domain.Menu, error)
	ListBySubdomain(ctx context.Context, subdomain string) ([]*domain.Menu, error)
	// Update persists menu fields only (not categories/items) and
	// fails with domain.ErrConflict when the stored updated_at no
	// longer matches expectedUpdatedAt.
	Update(ctx context.Context, menu *domain.Menu, expectedUpdatedAt time.Time) error
	// Delete cascades categories and items.
	Delete(ctx context.Context, menuID string) error
	AddCategory(ctx context.Context, category *domain.Category) error
	AddItem(ctx context.Context, item *domain.MenuItem) error
	SetItemAvailability(ctx context.Context, itemID string, available bool) error
	// FindItem resolves an item id to the item and its owning menu.
	FindItem(ctx context.Context, itemID string) (*domain.MenuItem, *domain.Menu, error)
}

type QRCodeRepository interface {
	Create(ctx context.Context, code *domain.QRCode) error
	FindByMenuID(ctx context.Context, menuID string) (*domain.QRCode, error)
	Update(ctx context.Context, code *domain.QRCode) error
	DeleteByMenuID(ctx context.Context, menuID string) error
}

// ViewEventRepository is the append-only fact table plus the
// aggregation primitives the analytics read model is built from.
// Counts are always computed by query, never kept as mutable totals.
type ViewEventRepository interface {
	Append(ctx context.Context, event *domain.ViewEvent) error
	CountByMenu(ctx context.Context, menuID string) (int, error)
	TotalViews(ctx context.Context, subdomain string, since time.Time) (int, error)
	AvgDurationMs(ctx context.Context, subdomain string, since time.Time) (int64, error)
	DeviceCounts(ctx context.Context, subdomain string, since time.Time) (map[domain.DeviceClass]int, error)
	TopItems(ctx context.Context, subdomain string, since time.Time, limit int) ([]domain.ItemViewStats, error)
	// DailyCounts returns views keyed by YYYY-MM-DD bucket day.
	DailyCounts(ctx context.Context, subdomain string, since time.Time) (map[string]int, error)
}
