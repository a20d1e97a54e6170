package registry

import (
	"context"
	"testing"
	"time"

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

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewService(store.Organizations(), store.Menus(), nopLogger{}), store
}

func mustCreateOrg(t *testing.T, svc *Service, subdomain string) *domain.Organization {
	t.Helper()
	org, err := svc.CreateOrganization(context.Background(), interfaces.CreateOrganizationCommand{
		Subdomain: subdomain,
		Name:      "Test Restaurant",
		Tier:      "starter",
	})
	require.NoError(t, err)
	return org
}

func TestCreateOrganizationDuplicateSubdomain(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")

	_, err := svc.CreateOrganization(ctx, interfaces.CreateOrganizationCommand{
		Subdomain: "tony-pizza",
		Name:      "Impostor",
		Tier:      "enterprise",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateMenu(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")

	menu, err := svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{
		Name:          "Lunch Special",
		StartTime:     "11:00",
		EndTime:       "15:00",
		AvailableDays: []time.Weekday{time.Monday, time.Friday},
	})
	require.NoError(t, err)
	assert.Equal(t, "lunch-special", menu.Slug)
	assert.True(t, menu.IsListed)
	assert.Equal(t, domain.LayoutGrid, menu.Layout)

	_, err = svc.CreateMenu(ctx, "nobody-here", interfaces.CreateMenuCommand{Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateMenuDuplicateSlug(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")
	mustCreateOrg(t, svc, "joes-diner")

	first, err := svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{Name: "Lunch Special"})
	require.NoError(t, err)

	// "Lunch Special!" slugifies to the same slug, which would leave
	// two live menus behind one public address.
	_, err = svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{Name: "Lunch Special!"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	resolved, err := store.Menus().FindBySlug(ctx, "tony-pizza", "lunch-special")
	require.NoError(t, err)
	assert.Equal(t, first.ID, resolved.ID)

	// The same name under another tenant is fine.
	_, err = svc.CreateMenu(ctx, "joes-diner", interfaces.CreateMenuCommand{Name: "Lunch Special"})
	assert.NoError(t, err)
}

func TestGetMenuCrossTenant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")
	mustCreateOrg(t, svc, "joes-diner")

	menu, err := svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{Name: "Dinner"})
	require.NoError(t, err)

	// The owning tenant sees it.
	got, err := svc.GetMenu(ctx, "tony-pizza", menu.ID)
	require.NoError(t, err)
	assert.Equal(t, menu.ID, got.ID)

	// Another tenant addressing the id gets a permission error, not
	// a missing record.
	_, err = svc.GetMenu(ctx, "joes-diner", menu.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestUpdateMenuKeepsSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")
	menu, err := svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{Name: "Lunch Special"})
	require.NoError(t, err)

	updated, err := svc.UpdateMenu(ctx, "tony-pizza", menu.ID, interfaces.UpdateMenuCommand{
		Name:   "Midday Menu",
		Layout: "list",
	})
	require.NoError(t, err)
	assert.Equal(t, "Midday Menu", updated.Name)
	assert.Equal(t, domain.LayoutList, updated.Layout)

	stored, err := svc.GetMenu(ctx, "tony-pizza", menu.ID)
	require.NoError(t, err)
	assert.Equal(t, "lunch-special", stored.Slug, "slug is frozen at creation")
}

func TestMenuUpdateConflict(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")
	menu, err := svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{Name: "Dinner"})
	require.NoError(t, err)

	stale := menu.UpdatedAt.Add(-time.Minute)
	menu.Name = "Supper"
	err = store.Menus().Update(ctx, menu, stale)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteMenuCascades(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")
	menu, err := svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{Name: "Dinner"})
	require.NoError(t, err)

	category, err := svc.AddCategory(ctx, "tony-pizza", menu.ID, interfaces.AddCategoryCommand{Name: "Mains"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "tony-pizza", menu.ID, interfaces.AddItemCommand{
		CategoryID: category.ID,
		Name:       "Pasta",
		Price:      decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	require.NoError(t, store.QRCodes().Create(ctx, domain.NewQRCode(menu.ID)))

	require.NoError(t, svc.DeleteMenu(ctx, "tony-pizza", menu.ID))

	_, err = svc.GetMenu(ctx, "tony-pizza", menu.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.QRCodes().FindByMenuID(ctx, menu.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "QR record goes with the menu")
}

func TestSetListed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")
	menu, err := svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{Name: "Dinner"})
	require.NoError(t, err)

	unlisted, err := svc.SetListed(ctx, "tony-pizza", menu.ID, false)
	require.NoError(t, err)
	assert.False(t, unlisted.IsListed)

	relisted, err := svc.SetListed(ctx, "tony-pizza", menu.ID, true)
	require.NoError(t, err)
	assert.True(t, relisted.IsListed)
}

func TestAddCategoryAndItemOrdering(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")
	menu, err := svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{Name: "Dinner"})
	require.NoError(t, err)

	starters, err := svc.AddCategory(ctx, "tony-pizza", menu.ID, interfaces.AddCategoryCommand{Name: "Starters"})
	require.NoError(t, err)
	mains, err := svc.AddCategory(ctx, "tony-pizza", menu.ID, interfaces.AddCategoryCommand{Name: "Mains"})
	require.NoError(t, err)
	assert.Equal(t, 0, starters.DisplayOrder)
	assert.Equal(t, 1, mains.DisplayOrder)

	first, err := svc.AddItem(ctx, "tony-pizza", menu.ID, interfaces.AddItemCommand{
		CategoryID: starters.ID,
		Name:       "Soup",
		Price:      decimal.NewFromInt(6),
	})
	require.NoError(t, err)
	second, err := svc.AddItem(ctx, "tony-pizza", menu.ID, interfaces.AddItemCommand{
		CategoryID: starters.ID,
		Name:       "Salad",
		Price:      decimal.NewFromInt(7),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, first.DisplayOrder)
	assert.Equal(t, 1, second.DisplayOrder)

	_, err = svc.AddItem(ctx, "tony-pizza", menu.ID, interfaces.AddItemCommand{
		CategoryID: "no-such-category",
		Name:       "Ghost",
		Price:      decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItemCopiesSlices(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")
	menu, err := svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{Name: "Dinner"})
	require.NoError(t, err)
	category, err := svc.AddCategory(ctx, "tony-pizza", menu.ID, interfaces.AddCategoryCommand{Name: "Mains"})
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, "tony-pizza", menu.ID, interfaces.AddItemCommand{
		CategoryID:  category.ID,
		Name:        "Pasta",
		Price:       decimal.NewFromInt(12),
		Ingredients: []string{"flour", "egg"},
		Allergens:   []string{"gluten"},
	})
	require.NoError(t, err)

	// Mutating the caller's copy must not reach into the store.
	item.Ingredients[0] = "sand"
	item.Allergens[0] = "none"

	stored, err := svc.GetMenu(ctx, "tony-pizza", menu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"flour", "egg"}, stored.Categories[0].Items[0].Ingredients)
	assert.Equal(t, []string{"gluten"}, stored.Categories[0].Items[0].Allergens)
}

func TestSetItemAvailabilityCrossTenant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateOrg(t, svc, "tony-pizza")
	mustCreateOrg(t, svc, "joes-diner")
	menu, err := svc.CreateMenu(ctx, "tony-pizza", interfaces.CreateMenuCommand{Name: "Dinner"})
	require.NoError(t, err)
	category, err := svc.AddCategory(ctx, "tony-pizza", menu.ID, interfaces.AddCategoryCommand{Name: "Mains"})
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, "tony-pizza", menu.ID, interfaces.AddItemCommand{
		CategoryID: category.ID,
		Name:       "Pasta",
		Price:      decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	err = svc.SetItemAvailability(ctx, "joes-diner", item.ID, false)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	require.NoError(t, svc.SetItemAvailability(ctx, "tony-pizza", item.ID, false))
	stored, err := svc.GetMenu(ctx, "tony-pizza", menu.ID)
	require.NoError(t, err)
	assert.False(t, stored.Categories[0].Items[0].IsAvailable)
}
