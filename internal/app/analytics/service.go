package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

const topItemsLimit = 5

// Service is the read model over the view-event fact table. It holds
// no state of its own; every summary is computed by query at call time.
type Service struct {
	orgRepo  interfaces.OrganizationRepository
	viewRepo interfaces.ViewEventRepository
	logger   logger.Logger
	now      func() time.Time
}

func NewService(orgRepo interfaces.OrganizationRepository, viewRepo interfaces.ViewEventRepository, logger logger.Logger) *Service {
	return &Service{
		orgRepo:  orgRepo,
		viewRepo: viewRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Summary(ctx context.Context, subdomain string, timeRange domain.TimeRange) (*domain.AnalyticsSummary, error) {
	days, err := timeRange.Days()
	if err != nil {
		return nil, err
	}
	if _, err := s.orgRepo.FindBySubdomain(ctx, subdomain); err != nil {
		return nil, err
	}

	// The window covers today plus the preceding days-1 full days.
	// Days are bucketed in UTC everywhere, so the window origin is too.
	now := s.now().UTC()
	since := startOfDay(now).AddDate(0, 0, -(days - 1))

	total, err := s.viewRepo.TotalViews(ctx, subdomain, since)
	if err != nil {
		return nil, err
	}
	avg, err := s.viewRepo.AvgDurationMs(ctx, subdomain, since)
	if err != nil {
		return nil, err
	}
	deviceCounts, err := s.viewRepo.DeviceCounts(ctx, subdomain, since)
	if err != nil {
		return nil, err
	}
	topItems, err := s.viewRepo.TopItems(ctx, subdomain, since, topItemsLimit)
	if err != nil {
		return nil, err
	}
	daily, err := s.viewRepo.DailyCounts(ctx, subdomain, since)
	if err != nil {
		return nil, err
	}

	return &domain.AnalyticsSummary{
		TimeRange:       timeRange,
		TotalViews:      total,
		AvgViewTimeMs:   avg,
		DeviceBreakdown: devicePercentages(deviceCounts),
		TopItems:        topItems,
		ViewsOverTime:   fillDailyBuckets(daily, since, days),
	}, nil
}

// devicePercentages converts raw counts into integer percentages that
// sum to exactly 100 (largest-remainder rounding). An empty window
// yields an empty breakdown.
func devicePercentages(counts map[domain.DeviceClass]int) []domain.DevicePercent {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return []domain.DevicePercent{}
	}

	type share struct {
		device    domain.DeviceClass
		floor     int
		remainder int
	}

	devices := []domain.DeviceClass{domain.DeviceMobile, domain.DeviceTablet, domain.DeviceDesktop}
	shares := make([]share, 0, len(devices))
	allocated := 0
	for _, d := range devices {
		scaled := counts[d] * 100
		sh := share{device: d, floor: scaled / total, remainder: scaled % total}
		allocated += sh.floor
		shares = append(shares, sh)
	}

	// Hand the leftover points to the largest remainders.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder > shares[j].remainder
	})
	for i := 0; i < 100-allocated; i++ {
		shares[i%len(shares)].floor++
	}

	// Restore the fixed mobile/tablet/desktop order.
	byDevice := map[domain.DeviceClass]int{}
	for _, sh := range shares {
		byDevice[sh.device] = sh.floor
	}
	out := make([]domain.DevicePercent, 0, len(devices))
	for _, d := range devices {
		out = append(out, domain.DevicePercent{Device: d, Percent: byDevice[d]})
	}
	return out
}

// fillDailyBuckets produces exactly `days` buckets in ascending order,
// zero-filling days with no events.
func fillDailyBuckets(counts map[string]int, since time.Time, days int) []domain.DailyViews {
	out := make([]domain.DailyViews, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, domain.DailyViews{Date: day, Views: counts[day]})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
