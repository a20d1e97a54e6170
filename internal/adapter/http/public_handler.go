package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

// PublicHandler serves the diner-facing menu viewer. It is dispatched
// by hostname, so the organization subdomain arrives as an argument
// rather than a path segment.
type PublicHandler struct {
	service interfaces.PublicMenuService
	logger  logger.Logger
}

func NewPublicHandler(service interfaces.PublicMenuService, logger logger.Logger) *PublicHandler {
	return &PublicHandler{
		service: service,
		logger:  logger,
	}
}

type PublicMenuSummaryResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
	ImageURL    string `json:"image_url,omitempty"`
}

type PublicMenuResponse struct {
	RestaurantName string               `json:"restaurant_name"`
	MenuName       string               `json:"menu_name"`
	Layout         string               `json:"layout"`
	Items          []PublicItemResponse `json:"items"`
}

type PublicItemResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price"`
	ImageURL    string   `json:"image_url,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
	Calories    int      `json:"calories,omitempty"`
}

type ViewBeaconRequest struct {
	ItemName   string `json:"item_name"`
	DurationMs int64  `json:"duration_ms"`
}

func (h *PublicHandler) Serve(w http.ResponseWriter, r *http.Request, subdomain string) {
	path := strings.Trim(r.URL.Path, "/")

	switch {
	case path == "" && r.Method == http.MethodGet:
		h.listMenus(w, r, subdomain)
	case !strings.Contains(path, "/") && r.Method == http.MethodGet:
		h.getMenu(w, r, subdomain, path)
	case strings.HasSuffix(path, "/events") && r.Method == http.MethodPost:
		h.recordBeacon(w, r, subdomain, strings.TrimSuffix(path, "/events"))
	default:
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
}

func (h *PublicHandler) listMenus(w http.ResponseWriter, r *http.Request, subdomain string) {
	menus, err := h.service.ResolveMenus(r.Context(), subdomain)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := make([]PublicMenuSummaryResponse, len(menus))
	for i, menu := range menus {
		resp[i] = PublicMenuSummaryResponse{
			Name:        menu.Name,
			Description: menu.Description,
			Slug:        menu.Slug,
			ImageURL:    menu.ImageURL,
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *PublicHandler) getMenu(w http.ResponseWriter, r *http.Request, subdomain, slug string) {
	menu, err := h.service.ResolveMenu(r.Context(), subdomain, slug)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	// A successful resolve is a page view. Recording is best effort
	// and must never break the diner's request.
	if err := h.service.RecordView(r.Context(), subdomain, slug, interfaces.RecordViewCommand{
		Device: ClassifyDevice(r.UserAgent()),
	}); err != nil {
		h.logger.Error("view_record_failed", "Failed to record menu view", "", map[string]interface{}{
			"subdomain": subdomain,
			"slug":      slug,
		}, err)
	}

	items := make([]PublicItemResponse, len(menu.Items))
	for i, item := range menu.Items {
		items[i] = PublicItemResponse{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price.String(),
			ImageURL:    item.ImageURL,
			Ingredients: item.Ingredients,
			Allergens:   item.Allergens,
			Calories:    item.Calories,
		}
	}

	respondJSON(w, http.StatusOK, PublicMenuResponse{
		RestaurantName: menu.RestaurantName,
		MenuName:       menu.MenuName,
		Layout:         string(menu.Layout),
		Items:          items,
	})
}

func (h *PublicHandler) recordBeacon(w http.ResponseWriter, r *http.Request, subdomain, slug string) {
	var req ViewBeaconRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	err := h.service.RecordView(r.Context(), subdomain, slug, interfaces.RecordViewCommand{
		Device:     ClassifyDevice(r.UserAgent()),
		ItemName:   strings.TrimSpace(req.ItemName),
		DurationMs: req.DurationMs,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ClassifyDevice maps a User-Agent string to a coarse device family.
// Android tablets advertise Android without the Mobile token, which is
// why the tablet checks run first.
func ClassifyDevice(userAgent string) domain.DeviceClass {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "ipad"), strings.Contains(ua, "tablet"):
		return domain.DeviceTablet
	case strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return domain.DeviceTablet
	case strings.Contains(ua, "mobi"), strings.Contains(ua, "android"), strings.Contains(ua, "iphone"):
		return domain.DeviceMobile
	default:
		return domain.DeviceDesktop
	}
}
