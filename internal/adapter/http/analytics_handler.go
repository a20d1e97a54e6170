package http

import (
	"net/http"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

type AnalyticsHandler struct {
	service interfaces.AnalyticsService
	logger  logger.Logger
}

func NewAnalyticsHandler(service interfaces.AnalyticsService, logger logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger,
	}
}

type DevicePercentResponse struct {
	Device  string `json:"device"`
	Percent int    `json:"percent"`
}

type ItemViewStatsResponse struct {
	Name              string `json:"name"`
	Views             int    `json:"views"`
	TotalTimeViewedMs int64  `json:"total_time_viewed_ms"`
}

type DailyViewsResponse struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

type AnalyticsSummaryResponse struct {
	TimeRange       string                  `json:"time_range"`
	TotalViews      int                     `json:"total_views"`
	AvgViewTimeMs   int64                   `json:"avg_view_time_ms"`
	DeviceBreakdown []DevicePercentResponse `json:"device_breakdown"`
	TopItems        []ItemViewStatsResponse `json:"top_items"`
	ViewsOverTime   []DailyViewsResponse    `json:"views_over_time"`
}

func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	timeRange := domain.TimeRange(r.URL.Query().Get("range"))
	if timeRange == "" {
		timeRange = domain.Range7d
	}

	summary, err := h.service.Summary(r.Context(), r.PathValue("subdomain"), timeRange)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	devices := make([]DevicePercentResponse, len(summary.DeviceBreakdown))
	for i, dp := range summary.DeviceBreakdown {
		devices[i] = DevicePercentResponse{Device: string(dp.Device), Percent: dp.Percent}
	}

	items := make([]ItemViewStatsResponse, len(summary.TopItems))
	for i, item := range summary.TopItems {
		items[i] = ItemViewStatsResponse{
			Name:              item.Name,
			Views:             item.Views,
			TotalTimeViewedMs: item.TotalTimeViewedMs,
		}
	}

	days := make([]DailyViewsResponse, len(summary.ViewsOverTime))
	for i, day := range summary.ViewsOverTime {
		days[i] = DailyViewsResponse{Date: day.Date, Views: day.Views}
	}

	respondJSON(w, http.StatusOK, AnalyticsSummaryResponse{
		TimeRange:       string(summary.TimeRange),
		TotalViews:      summary.TotalViews,
		AvgViewTimeMs:   summary.AvgViewTimeMs,
		DeviceBreakdown: devices,
		TopItems:        items,
		ViewsOverTime:   days,
	})
}
