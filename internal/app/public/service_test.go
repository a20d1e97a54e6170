package public

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuqrs/menuqr/internal/adapter/memory"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

type nopLogger struct{}

func (nopLogger) Info(string, string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, string, map[string]interface{})        {}
func (nopLogger) Error(string, string, string, map[string]interface{}, error) {}

type capturePublisher struct {
	published []interfaces.ViewEventMessage
}

func (p *capturePublisher) PublishViewEvent(ctx context.Context, msg interfaces.ViewEventMessage) error {
	p.published = append(p.published, msg)
	return nil
}

type fixture struct {
	svc       *Service
	store     *memory.Store
	publisher *capturePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	publisher := &capturePublisher{}
	return &fixture{
		svc:       NewService(store.Organizations(), store.Menus(), publisher, nopLogger{}),
		store:     store,
		publisher: publisher,
	}
}

func (f *fixture) seedOrg(t *testing.T, subdomain string) {
	t.Helper()
	org, err := domain.NewOrganization(subdomain, "Joe's Diner", domain.TierStarter)
	require.NoError(t, err)
	require.NoError(t, f.store.Organizations().Create(context.Background(), org))
}

func (f *fixture) seedMenu(t *testing.T, subdomain, name string, listed bool) *domain.Menu {
	t.Helper()
	menu, err := domain.NewMenu(subdomain, name, "", "", "")
	require.NoError(t, err)
	menu.IsListed = listed
	require.NoError(t, f.store.Menus().Create(context.Background(), menu))
	return menu
}

func TestResolveMenusFiltersUnlisted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedOrg(t, "joes-diner")
	f.seedMenu(t, "joes-diner", "Lunch Special", true)
	f.seedMenu(t, "joes-diner", "Staff Menu", false)

	menus, err := f.svc.ResolveMenus(ctx, "joes-diner")
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "lunch-special", menus[0].Slug)
}

func TestResolveMenusUnknownRestaurant(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ResolveMenus(context.Background(), "nobody-here")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveMenuNotFoundIsIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedOrg(t, "joes-diner")
	f.seedMenu(t, "joes-diner", "Lunch Special", true)
	f.seedMenu(t, "joes-diner", "Staff Menu", false)

	// Unknown restaurant, unknown slug and unlisted menu all resolve
	// to the same bare not-found.
	_, errUnknownOrg := f.svc.ResolveMenu(ctx, "nobody-here", "lunch-special")
	_, errUnknownSlug := f.svc.ResolveMenu(ctx, "joes-diner", "secret-menu")
	_, errUnlisted := f.svc.ResolveMenu(ctx, "joes-diner", "staff-menu")

	assert.ErrorIs(t, errUnknownOrg, domain.ErrNotFound)
	assert.ErrorIs(t, errUnknownSlug, domain.ErrNotFound)
	assert.ErrorIs(t, errUnlisted, domain.ErrNotFound)
	assert.Equal(t, errUnknownOrg.Error(), errUnknownSlug.Error())
	assert.Equal(t, errUnknownSlug.Error(), errUnlisted.Error())
}

func TestResolveMenuFlattensAvailableItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedOrg(t, "joes-diner")
	menu := f.seedMenu(t, "joes-diner", "Lunch Special", true)

	starters, err := domain.NewCategory(menu.ID, "Starters", "", 0)
	require.NoError(t, err)
	require.NoError(t, f.store.Menus().AddCategory(ctx, starters))
	mains, err := domain.NewCategory(menu.ID, "Mains", "", 1)
	require.NoError(t, err)
	require.NoError(t, f.store.Menus().AddCategory(ctx, mains))

	soup, err := domain.NewMenuItem(starters.ID, "Soup", "", decimal.NewFromInt(6), "", nil, nil, 0, 0)
	require.NoError(t, err)
	require.NoError(t, f.store.Menus().AddItem(ctx, soup))
	off, err := domain.NewMenuItem(starters.ID, "Seasonal Salad", "", decimal.NewFromInt(7), "", nil, nil, 0, 1)
	require.NoError(t, err)
	require.NoError(t, f.store.Menus().AddItem(ctx, off))
	require.NoError(t, f.store.Menus().SetItemAvailability(ctx, off.ID, false))
	pasta, err := domain.NewMenuItem(mains.ID, "Pasta", "", decimal.NewFromInt(12), "", nil, nil, 0, 0)
	require.NoError(t, err)
	require.NoError(t, f.store.Menus().AddItem(ctx, pasta))

	resolved, err := f.svc.ResolveMenu(ctx, "joes-diner", "lunch-special")
	require.NoError(t, err)
	assert.Equal(t, "Joe's Diner", resolved.RestaurantName)
	assert.Equal(t, "Lunch Special", resolved.MenuName)
	require.Len(t, resolved.Items, 2)
	assert.Equal(t, "Soup", resolved.Items[0].Name)
	assert.Equal(t, "Pasta", resolved.Items[1].Name)
}

func TestRecordViewPublishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedOrg(t, "joes-diner")
	menu := f.seedMenu(t, "joes-diner", "Lunch Special", true)

	err := f.svc.RecordView(ctx, "joes-diner", "lunch-special", interfaces.RecordViewCommand{
		Device:     domain.DeviceMobile,
		ItemName:   "Soup",
		DurationMs: 4200,
	})
	require.NoError(t, err)

	require.Len(t, f.publisher.published, 1)
	msg := f.publisher.published[0]
	assert.Equal(t, "joes-diner", msg.Subdomain)
	assert.Equal(t, menu.ID, msg.MenuID)
	assert.Equal(t, "Soup", msg.ItemName)
	assert.Equal(t, domain.DeviceMobile, msg.Device)
	assert.False(t, msg.OccurredAt.IsZero())
}

func TestRecordViewUnlistedMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedOrg(t, "joes-diner")
	f.seedMenu(t, "joes-diner", "Staff Menu", false)

	err := f.svc.RecordView(ctx, "joes-diner", "staff-menu", interfaces.RecordViewCommand{Device: domain.DeviceDesktop})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.publisher.published)
}
