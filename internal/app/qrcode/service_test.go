package qrcode

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuqrs/menuqr/internal/adapter/memory"
	"github.com/menuqrs/menuqr/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, string, map[string]interface{})        {}
func (nopLogger) Error(string, string, string, map[string]interface{}, error) {}

type fakeRenderer struct{}

func (fakeRenderer) Render(payloadURL string, size int) ([]byte, error) {
	return []byte(fmt.Sprintf("png:%s:%d", payloadURL, size)), nil
}

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewService(store.Menus(), store.QRCodes(), store.ViewEvents(), fakeRenderer{}, nopLogger{}, "menuqr.com")
	return svc, store
}

func seedMenu(t *testing.T, store *memory.Store, subdomain, name string) *domain.Menu {
	t.Helper()
	menu, err := domain.NewMenu(subdomain, name, "", "", "")
	require.NoError(t, err)
	require.NoError(t, store.Menus().Create(context.Background(), menu))
	return menu
}

func TestCreateIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	menu := seedMenu(t, store, "tony-pizza", "Lunch Special")

	first, err := svc.Create(ctx, "tony-pizza", menu.ID)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "tony-pizza", menu.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Code.ID, second.Code.ID, "second create returns the existing record")
	assert.Equal(t, "https://tony-pizza.menuqr.com/lunch-special", first.PayloadURL)
}

func TestGetUnknownMenu(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	menu := seedMenu(t, store, "tony-pizza", "Lunch Special")

	_, err := svc.Get(ctx, "tony-pizza", "no-such-menu")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Menu exists but has no QR record yet.
	_, err = svc.Get(ctx, "tony-pizza", menu.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrossTenantAccess(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	menu := seedMenu(t, store, "tony-pizza", "Lunch Special")

	_, err := svc.Create(ctx, "joes-diner", menu.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestRegenerateKeepsPayloadURL(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	menu := seedMenu(t, store, "tony-pizza", "Lunch Special")

	created, err := svc.Create(ctx, "tony-pizza", menu.ID)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	regenerated, err := svc.Regenerate(ctx, "tony-pizza", menu.ID)
	require.NoError(t, err)

	assert.Equal(t, created.Code.ID, regenerated.Code.ID)
	assert.Equal(t, created.PayloadURL, regenerated.PayloadURL, "printed codes keep working")
	assert.True(t, regenerated.Code.LastRegeneratedAt.After(created.Code.LastRegeneratedAt))
}

func TestStatusCountsViews(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	menu := seedMenu(t, store, "tony-pizza", "Lunch Special")

	for i := 0; i < 3; i++ {
		require.NoError(t, store.ViewEvents().Append(ctx, &domain.ViewEvent{
			Subdomain:  "tony-pizza",
			MenuID:     menu.ID,
			Device:     domain.DeviceMobile,
			OccurredAt: time.Now(),
		}))
	}

	status, err := svc.Create(ctx, "tony-pizza", menu.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, status.Views)
}

func TestImage(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	menu := seedMenu(t, store, "tony-pizza", "Lunch Special")

	_, err := svc.Image(ctx, "tony-pizza", menu.ID, 200)
	assert.ErrorIs(t, err, domain.ErrNotFound, "image requires a registered code")

	_, err = svc.Create(ctx, "tony-pizza", menu.ID)
	require.NoError(t, err)

	png, err := svc.Image(ctx, "tony-pizza", menu.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, "png:https://tony-pizza.menuqr.com/lunch-special:200", string(png))
}
