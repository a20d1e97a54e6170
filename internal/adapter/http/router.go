package http

import (
	"net/http"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

// NewRouter wires the management API and the host-dispatched public
// viewer into a single handler with logging and panic recovery.
func NewRouter(
	registry interfaces.RegistryService,
	public interfaces.PublicMenuService,
	qrcodes interfaces.QRCodeService,
	analytics interfaces.AnalyticsService,
	widgets interfaces.WidgetService,
	log logger.Logger,
) http.Handler {
	orgHandler := NewOrganizationHandler(registry, log)
	menuHandler := NewMenuHandler(registry, log)
	qrHandler := NewQRCodeHandler(qrcodes, log)
	analyticsHandler := NewAnalyticsHandler(analytics, log)
	widgetHandler := NewWidgetHandler(widgets, log)
	publicHandler := NewPublicHandler(public, log)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /organizations", orgHandler.Create)
	mux.HandleFunc("GET /organizations/{subdomain}", orgHandler.Get)
	mux.HandleFunc("PUT /organizations/{subdomain}/business-info", orgHandler.UpdateBusinessInfo)

	mux.HandleFunc("GET /organizations/{subdomain}/menus", menuHandler.List)
	mux.HandleFunc("POST /organizations/{subdomain}/menus", menuHandler.Create)
	mux.HandleFunc("GET /organizations/{subdomain}/menus/{menuID}", menuHandler.Get)
	mux.HandleFunc("PUT /organizations/{subdomain}/menus/{menuID}", menuHandler.Update)
	mux.HandleFunc("DELETE /organizations/{subdomain}/menus/{menuID}", menuHandler.Delete)
	mux.HandleFunc("PUT /organizations/{subdomain}/menus/{menuID}/listing", menuHandler.SetListed)
	mux.HandleFunc("POST /organizations/{subdomain}/menus/{menuID}/categories", menuHandler.AddCategory)
	mux.HandleFunc("POST /organizations/{subdomain}/menus/{menuID}/categories/{categoryID}/items", menuHandler.AddItem)
	mux.HandleFunc("PUT /organizations/{subdomain}/items/{itemID}/availability", menuHandler.SetItemAvailability)

	mux.HandleFunc("POST /organizations/{subdomain}/menus/{menuID}/qrcode", qrHandler.Create)
	mux.HandleFunc("GET /organizations/{subdomain}/menus/{menuID}/qrcode", qrHandler.Get)
	mux.HandleFunc("POST /organizations/{subdomain}/menus/{menuID}/qrcode/regenerate", qrHandler.Regenerate)
	mux.HandleFunc("GET /organizations/{subdomain}/menus/{menuID}/qrcode/image", qrHandler.Image)

	mux.HandleFunc("GET /organizations/{subdomain}/analytics", analyticsHandler.Summary)

	mux.HandleFunc("GET /widgets", widgetHandler.Catalog)
	mux.HandleFunc("GET /organizations/{subdomain}/widgets", widgetHandler.Enabled)
	mux.HandleFunc("POST /organizations/{subdomain}/widgets/{widgetID}/toggle", widgetHandler.Toggle)

	var handler http.Handler = NewHostRouter(mux, publicHandler)
	handler = RecoveryMiddleware(log)(handler)
	handler = LoggingMiddleware(log)(handler)
	return handler
}
