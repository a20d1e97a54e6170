package domain

// Widget is a static catalog entry for a dashboard panel. The catalog
// is tenant-independent; an organization's EnabledWidgets is a subset
// of these ids.
type Widget struct {
	ID             string
	Name           string
	Description    string
	DefaultEnabled bool
}

const (
	WidgetTotalMenus      = "total-menus"
	WidgetActiveQRCodes   = "active-qr-codes"
	WidgetTotalScans      = "total-scans"
	WidgetViewsOverTime   = "views-over-time"
	WidgetDeviceBreakdown = "device-breakdown"
	WidgetMostViewedItems = "most-viewed-items"
)

var widgetCatalog = []Widget{
	{ID: WidgetTotalMenus, Name: "Total Menus", Description: "Number of menus in your account", DefaultEnabled: true},
	{ID: WidgetActiveQRCodes, Name: "Active QR Codes", Description: "QR codes currently linked to a menu", DefaultEnabled: true},
	{ID: WidgetTotalScans, Name: "Total Scans", Description: "All-time menu views from QR scans", DefaultEnabled: true},
	{ID: WidgetViewsOverTime, Name: "Views Over Time", Description: "Daily menu views for the selected period", DefaultEnabled: true},
	{ID: WidgetDeviceBreakdown, Name: "Device Breakdown", Description: "Views split by mobile, tablet and desktop", DefaultEnabled: true},
	{ID: WidgetMostViewedItems, Name: "Most Viewed Items", Description: "Your most popular dishes", DefaultEnabled: false},
}

// WidgetCatalog returns a copy of the static catalog.
func WidgetCatalog() []Widget {
	out := make([]Widget, len(widgetCatalog))
	copy(out, widgetCatalog)
	return out
}

// KnownWidget reports whether id exists in the catalog.
func KnownWidget(id string) bool {
	for _, w := range widgetCatalog {
		if w.ID == id {
			return true
		}
	}
	return false
}

// DefaultWidgetSet returns the widget set a tier starts with. For
// starter and professional this set is also final: those tiers cannot
// edit it, only enterprise can.
func DefaultWidgetSet(tier Tier) map[string]bool {
	switch tier {
	case TierStarter:
		return map[string]bool{
			WidgetTotalMenus:    true,
			WidgetActiveQRCodes: true,
			WidgetTotalScans:    true,
		}
	case TierProfessional:
		return map[string]bool{
			WidgetTotalMenus:      true,
			WidgetActiveQRCodes:   true,
			WidgetTotalScans:      true,
			WidgetViewsOverTime:   true,
			WidgetDeviceBreakdown: true,
		}
	case TierEnterprise:
		set := map[string]bool{}
		for _, w := range widgetCatalog {
			if w.DefaultEnabled {
				set[w.ID] = true
			}
		}
		return set
	default:
		return map[string]bool{}
	}
}

// CanEditWidgets reports whether the tier may change its widget set.
// Non-enterprise sets are server-defined constants.
func CanEditWidgets(tier Tier) bool {
	switch tier {
	case TierEnterprise:
		return true
	case TierStarter, TierProfessional:
		return false
	default:
		return false
	}
}
