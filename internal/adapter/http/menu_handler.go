package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

type MenuHandler struct {
	service interfaces.RegistryService
	logger  logger.Logger
}

func NewMenuHandler(service interfaces.RegistryService, logger logger.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

type MenuRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	Layout        string   `json:"layout"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	AvailableDays []string `json:"available_days"`
}

type SetListedRequest struct {
	IsListed bool `json:"is_listed"`
}

type AddCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AddItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	ImageURL    string   `json:"image_url"`
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"allergens"`
	Calories    int      `json:"calories"`
}

type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

type MenuResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description,omitempty"`
	ImageURL      string             `json:"image_url,omitempty"`
	IsListed      bool               `json:"is_listed"`
	StartTime     string             `json:"start_time,omitempty"`
	EndTime       string             `json:"end_time,omitempty"`
	AvailableDays []string           `json:"available_days,omitempty"`
	Layout        string             `json:"layout"`
	Categories    []CategoryResponse `json:"categories"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type CategoryResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	DisplayOrder int                `json:"display_order"`
	Items        []MenuItemResponse `json:"items"`
}

type MenuItemResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        string   `json:"price"`
	ImageURL     string   `json:"image_url,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Allergens    []string `json:"allergens,omitempty"`
	Calories     int      `json:"calories,omitempty"`
	DisplayOrder int      `json:"display_order"`
	IsAvailable  bool     `json:"is_available"`
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	menus, err := h.service.ListMenus(r.Context(), r.PathValue("subdomain"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := make([]MenuResponse, len(menus))
	for i, menu := range menus {
		resp[i] = menuToResponse(menu)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	menu, err := h.service.GetMenu(r.Context(), r.PathValue("subdomain"), r.PathValue("menuID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, menuToResponse(menu))
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	subdomain := r.PathValue("subdomain")

	var req MenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	days, err := weekdaysFromNames(req.AvailableDays)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	menu, err := h.service.CreateMenu(r.Context(), subdomain, interfaces.CreateMenuCommand{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Layout:        req.Layout,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		AvailableDays: days,
	})
	if err != nil {
		h.logger.Error("menu_create_failed", "Failed to create menu", "", map[string]interface{}{
			"subdomain": subdomain,
		}, err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, menuToResponse(menu))
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req MenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	days, err := weekdaysFromNames(req.AvailableDays)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	menu, err := h.service.UpdateMenu(r.Context(), r.PathValue("subdomain"), r.PathValue("menuID"), interfaces.UpdateMenuCommand{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Layout:        req.Layout,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		AvailableDays: days,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, menuToResponse(menu))
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMenu(r.Context(), r.PathValue("subdomain"), r.PathValue("menuID")); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MenuHandler) SetListed(w http.ResponseWriter, r *http.Request) {
	var req SetListedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	menu, err := h.service.SetListed(r.Context(), r.PathValue("subdomain"), r.PathValue("menuID"), req.IsListed)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, menuToResponse(menu))
}

func (h *MenuHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req AddCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	category, err := h.service.AddCategory(r.Context(), r.PathValue("subdomain"), r.PathValue("menuID"), interfaces.AddCategoryCommand{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, categoryToResponse(category))
}

func (h *MenuHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid price"})
		return
	}

	item, err := h.service.AddItem(r.Context(), r.PathValue("subdomain"), r.PathValue("menuID"), interfaces.AddItemCommand{
		CategoryID:  r.PathValue("categoryID"),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       price,
		ImageURL:    req.ImageURL,
		Ingredients: req.Ingredients,
		Allergens:   req.Allergens,
		Calories:    req.Calories,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, itemToResponse(item))
}

func (h *MenuHandler) SetItemAvailability(w http.ResponseWriter, r *http.Request) {
	var req SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.SetItemAvailability(r.Context(), r.PathValue("subdomain"), r.PathValue("itemID"), req.IsAvailable); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func weekdaysFromNames(names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return nil, nil
	}
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, domain.ErrValidation
		}
		days = append(days, day)
	}
	return days, nil
}

func weekdaysToNames(days []time.Weekday) []string {
	if len(days) == 0 {
		return nil
	}
	names := make([]string, len(days))
	for i, day := range days {
		names[i] = strings.ToLower(day.String())
	}
	return names
}

func menuToResponse(menu *domain.Menu) MenuResponse {
	categories := make([]CategoryResponse, len(menu.Categories))
	for i := range menu.Categories {
		categories[i] = categoryToResponse(&menu.Categories[i])
	}
	return MenuResponse{
		ID:            menu.ID,
		Name:          menu.Name,
		Slug:          menu.Slug,
		Description:   menu.Description,
		ImageURL:      menu.ImageURL,
		IsListed:      menu.IsListed,
		StartTime:     menu.StartTime,
		EndTime:       menu.EndTime,
		AvailableDays: weekdaysToNames(menu.AvailableDays),
		Layout:        string(menu.Layout),
		Categories:    categories,
		CreatedAt:     menu.CreatedAt,
		UpdatedAt:     menu.UpdatedAt,
	}
}

func categoryToResponse(category *domain.Category) CategoryResponse {
	items := make([]MenuItemResponse, len(category.Items))
	for i := range category.Items {
		items[i] = itemToResponse(&category.Items[i])
	}
	return CategoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		DisplayOrder: category.DisplayOrder,
		Items:        items,
	}
}

func itemToResponse(item *domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price.String(),
		ImageURL:     item.ImageURL,
		Ingredients:  item.Ingredients,
		Allergens:    item.Allergens,
		Calories:     item.Calories,
		DisplayOrder: item.DisplayOrder,
		IsAvailable:  item.IsAvailable,
	}
}
