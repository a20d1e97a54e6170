package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWidgetSet(t *testing.T) {
	starter := DefaultWidgetSet(TierStarter)
	assert.Equal(t, map[string]bool{
		WidgetTotalMenus:    true,
		WidgetActiveQRCodes: true,
		WidgetTotalScans:    true,
	}, starter)

	professional := DefaultWidgetSet(TierProfessional)
	assert.Len(t, professional, 5)
	assert.True(t, professional[WidgetViewsOverTime])
	assert.True(t, professional[WidgetDeviceBreakdown])
	assert.False(t, professional[WidgetMostViewedItems])

	enterprise := DefaultWidgetSet(TierEnterprise)
	assert.Len(t, enterprise, 5)
	assert.False(t, enterprise[WidgetMostViewedItems], "most-viewed-items is opt-in even for enterprise")
}

func TestCanEditWidgets(t *testing.T) {
	assert.False(t, CanEditWidgets(TierStarter))
	assert.False(t, CanEditWidgets(TierProfessional))
	assert.True(t, CanEditWidgets(TierEnterprise))
}

func TestKnownWidget(t *testing.T) {
	for _, w := range WidgetCatalog() {
		assert.True(t, KnownWidget(w.ID))
	}
	assert.False(t, KnownWidget("weather"))
}

func TestWidgetCatalogIsACopy(t *testing.T) {
	catalog := WidgetCatalog()
	catalog[0].Name = "mutated"
	assert.NotEqual(t, "mutated", WidgetCatalog()[0].Name)
}
