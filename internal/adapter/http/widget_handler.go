package http

import (
	"net/http"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

type WidgetHandler struct {
	service interfaces.WidgetService
	logger  logger.Logger
}

func NewWidgetHandler(service interfaces.WidgetService, logger logger.Logger) *WidgetHandler {
	return &WidgetHandler{
		service: service,
		logger:  logger,
	}
}

type WidgetResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	DefaultEnabled bool   `json:"default_enabled"`
}

type EnabledWidgetsResponse struct {
	Enabled []string `json:"enabled"`
}

func (h *WidgetHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	catalog := h.service.Catalog()
	resp := make([]WidgetResponse, len(catalog))
	for i, widget := range catalog {
		resp[i] = WidgetResponse{
			ID:             widget.ID,
			Name:           widget.Name,
			Description:    widget.Description,
			DefaultEnabled: widget.DefaultEnabled,
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *WidgetHandler) Enabled(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.service.Enabled(r.Context(), r.PathValue("subdomain"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, EnabledWidgetsResponse{Enabled: enabled})
}

func (h *WidgetHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	subdomain := r.PathValue("subdomain")
	widgetID := r.PathValue("widgetID")

	enabled, err := h.service.Toggle(r.Context(), subdomain, widgetID)
	if err != nil {
		h.logger.Error("widget_toggle_failed", "Failed to toggle widget", "", map[string]interface{}{
			"subdomain": subdomain,
			"widget_id": widgetID,
		}, err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, EnabledWidgetsResponse{Enabled: enabled})
}
