package interfaces

import (
	"context"
	"time"

	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/shopspring/decimal"
)

// Commands

type CreateOrganizationCommand struct {
	Subdomain string
	Name      string
	Tier      string
}

type CreateMenuCommand struct {
	Name          string
	Description   string
	ImageURL      string
	Layout        string
	StartTime     string
	EndTime       string
	AvailableDays []time.Weekday
}

type UpdateMenuCommand struct {
	Name          string
	Description   string
	ImageURL      string
	Layout        string
	StartTime     string
	EndTime       string
	AvailableDays []time.Weekday
}

type AddCategoryCommand struct {
	Name        string
	Description string
}

type AddItemCommand struct {
	CategoryID  string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Ingredients []string
	Allergens   []string
	Calories    int
}

type RecordViewCommand struct {
	Device     domain.DeviceClass
	ItemName   string
	DurationMs int64
}

// Service interfaces (Business Logic)

type RegistryService interface {
	CreateOrganization(ctx context.Context, cmd CreateOrganizationCommand) (*domain.Organization, error)
	GetOrganization(ctx context.Context, subdomain string) (*domain.Organization, error)
	UpdateBusinessInfo(ctx context.Context, subdomain string, info domain.BusinessInfo) error
	ListMenus(ctx context.Context, subdomain string) ([]*domain.Menu, error)
	GetMenu(ctx context.Context, subdomain, menuID string) (*domain.Menu, error)
	CreateMenu(ctx context.Context, subdomain string, cmd CreateMenuCommand) (*domain.Menu, error)
	UpdateMenu(ctx context.Context, subdomain, menuID string, cmd UpdateMenuCommand) (*domain.Menu, error)
	DeleteMenu(ctx context.Context, subdomain, menuID string) error
	SetListed(ctx context.Context, subdomain, menuID string, listed bool) (*domain.Menu, error)
	AddCategory(ctx context.Context, subdomain, menuID string, cmd AddCategoryCommand) (*domain.Category, error)
	AddItem(ctx context.Context, subdomain, menuID string, cmd AddItemCommand) (*domain.MenuItem, error)
	SetItemAvailability(ctx context.Context, subdomain, itemID string, available bool) error
}

// PublicMenuSummary is one card on the public menu index.
type PublicMenuSummary struct {
	Name        string
	Description string
	Slug        string
	ImageURL    string
}

// PublicMenu is one resolved menu with its visible items flattened in
// display order.
type PublicMenu struct {
	RestaurantName string
	MenuName       string
	Layout         domain.Layout
	Items          []domain.MenuItem
}

type PublicMenuService interface {
	ResolveMenus(ctx context.Context, subdomain string) ([]PublicMenuSummary, error)
	ResolveMenu(ctx context.Context, subdomain, slug string) (*PublicMenu, error)
	RecordView(ctx context.Context, subdomain, slug string, cmd RecordViewCommand) error
}

// QRCodeStatus is a QR registry record with its derived view count.
type QRCodeStatus struct {
	Code       *domain.QRCode
	PayloadURL string
	Views      int
}

type QRCodeService interface {
	Create(ctx context.Context, subdomain, menuID string) (*QRCodeStatus, error)
	Get(ctx context.Context, subdomain, menuID string) (*QRCodeStatus, error)
	Regenerate(ctx context.Context, subdomain, menuID string) (*QRCodeStatus, error)
	Image(ctx context.Context, subdomain, menuID string, size int) ([]byte, error)
}

type AnalyticsService interface {
	Summary(ctx context.Context, subdomain string, timeRange domain.TimeRange) (*domain.AnalyticsSummary, error)
}

type WidgetService interface {
	Catalog() []domain.Widget
	Enabled(ctx context.Context, subdomain string) ([]string, error)
	IsEnabled(ctx context.Context, subdomain, widgetID string) (bool, error)
	Toggle(ctx context.Context, subdomain, widgetID string) ([]string, error)
}

type IngestService interface {
	HandleViewEvent(ctx context.Context, msg ViewEventMessage) error
}
