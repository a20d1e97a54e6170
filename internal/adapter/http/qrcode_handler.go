package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

type QRCodeHandler struct {
	service interfaces.QRCodeService
	logger  logger.Logger
}

func NewQRCodeHandler(service interfaces.QRCodeService, logger logger.Logger) *QRCodeHandler {
	return &QRCodeHandler{
		service: service,
		logger:  logger,
	}
}

type QRCodeResponse struct {
	ID                string    `json:"id"`
	MenuID            string    `json:"menu_id"`
	PayloadURL        string    `json:"payload_url"`
	Views             int       `json:"views"`
	CreatedAt         time.Time `json:"created_at"`
	LastRegeneratedAt time.Time `json:"last_regenerated_at"`
}

func (h *QRCodeHandler) Create(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Create(r.Context(), r.PathValue("subdomain"), r.PathValue("menuID"))
	if err != nil {
		h.logger.Error("qrcode_create_failed", "Failed to create QR code", "", map[string]interface{}{
			"menu_id": r.PathValue("menuID"),
		}, err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, qrCodeToResponse(status))
}

func (h *QRCodeHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Get(r.Context(), r.PathValue("subdomain"), r.PathValue("menuID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, qrCodeToResponse(status))
}

func (h *QRCodeHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Regenerate(r.Context(), r.PathValue("subdomain"), r.PathValue("menuID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, qrCodeToResponse(status))
}

func (h *QRCodeHandler) Image(w http.ResponseWriter, r *http.Request) {
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid size"})
			return
		}
		size = parsed
	}

	png, err := h.service.Image(r.Context(), r.PathValue("subdomain"), r.PathValue("menuID"), size)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func qrCodeToResponse(status *interfaces.QRCodeStatus) QRCodeResponse {
	return QRCodeResponse{
		ID:                status.Code.ID,
		MenuID:            status.Code.MenuID,
		PayloadURL:        status.PayloadURL,
		Views:             status.Views,
		CreatedAt:         status.Code.CreatedAt,
		LastRegeneratedAt: status.Code.LastRegeneratedAt,
	}
}
