package http

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

type OrganizationHandler struct {
	service interfaces.RegistryService
	logger  logger.Logger
}

func NewOrganizationHandler(service interfaces.RegistryService, logger logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		service: service,
		logger:  logger,
	}
}

type CreateOrganizationRequest struct {
	Subdomain string `json:"subdomain"`
	Name      string `json:"name"`
	Tier      string `json:"tier"`
}

type DayHoursRequest struct {
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type BusinessInfoRequest struct {
	Phone   string                     `json:"phone"`
	Address string                     `json:"address"`
	City    string                     `json:"city"`
	State   string                     `json:"state"`
	Zipcode string                     `json:"zipcode"`
	Hours   map[string]DayHoursRequest `json:"hours"`
}

type OrganizationResponse struct {
	Subdomain      string              `json:"subdomain"`
	Name           string              `json:"name"`
	DisplayName    string              `json:"display_name"`
	Tier           string              `json:"tier"`
	BusinessInfo   BusinessInfoRequest `json:"business_info"`
	EnabledWidgets []string            `json:"enabled_widgets"`
	CreatedAt      time.Time           `json:"created_at"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	cmd := interfaces.CreateOrganizationCommand{
		Subdomain: strings.TrimSpace(req.Subdomain),
		Name:      strings.TrimSpace(req.Name),
		Tier:      req.Tier,
	}

	org, err := h.service.CreateOrganization(r.Context(), cmd)
	if err != nil {
		h.logger.Error("organization_create_failed", "Failed to create organization", "", map[string]interface{}{
			"subdomain": cmd.Subdomain,
		}, err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, organizationToResponse(org))
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.service.GetOrganization(r.Context(), r.PathValue("subdomain"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, organizationToResponse(org))
}

func (h *OrganizationHandler) UpdateBusinessInfo(w http.ResponseWriter, r *http.Request) {
	subdomain := r.PathValue("subdomain")

	var req BusinessInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	info, err := businessInfoFromRequest(req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.service.UpdateBusinessInfo(r.Context(), subdomain, info); err != nil {
		h.logger.Error("business_info_update_failed", "Failed to update business info", "", map[string]interface{}{
			"subdomain": subdomain,
		}, err)
		respondDomainError(w, err)
		return
	}

	org, err := h.service.GetOrganization(r.Context(), subdomain)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, organizationToResponse(org))
}

func businessInfoFromRequest(req BusinessInfoRequest) (domain.BusinessInfo, error) {
	info := domain.BusinessInfo{
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		State:   strings.TrimSpace(req.State),
		Zipcode: strings.TrimSpace(req.Zipcode),
	}
	if len(req.Hours) > 0 {
		info.Hours = make(map[time.Weekday]domain.DayHours, len(req.Hours))
		for name, hours := range req.Hours {
			day, ok := weekdayNames[strings.ToLower(name)]
			if !ok {
				return domain.BusinessInfo{}, domain.ErrValidation
			}
			info.Hours[day] = domain.DayHours{
				IsOpen:    hours.IsOpen,
				OpenTime:  hours.OpenTime,
				CloseTime: hours.CloseTime,
			}
		}
	}
	return info, nil
}

func organizationToResponse(org *domain.Organization) OrganizationResponse {
	hours := make(map[string]DayHoursRequest, len(org.BusinessInfo.Hours))
	for day, dh := range org.BusinessInfo.Hours {
		hours[strings.ToLower(day.String())] = DayHoursRequest{
			IsOpen:    dh.IsOpen,
			OpenTime:  dh.OpenTime,
			CloseTime: dh.CloseTime,
		}
	}

	enabled := make([]string, 0, len(org.EnabledWidgets))
	for id, on := range org.EnabledWidgets {
		if on {
			enabled = append(enabled, id)
		}
	}
	sort.Strings(enabled)

	return OrganizationResponse{
		Subdomain:   org.Subdomain,
		Name:        org.Name,
		DisplayName: org.DisplayName(),
		Tier:        string(org.Tier),
		BusinessInfo: BusinessInfoRequest{
			Phone:   org.BusinessInfo.Phone,
			Address: org.BusinessInfo.Address,
			City:    org.BusinessInfo.City,
			State:   org.BusinessInfo.State,
			Zipcode: org.BusinessInfo.Zipcode,
			Hours:   hours,
		},
		EnabledWidgets: enabled,
		CreatedAt:      org.CreatedAt,
	}
}
