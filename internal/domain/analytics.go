package domain

import (
	"fmt"
	"time"
)

// DeviceClass is the coarse device family a menu view came from.
type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceTablet  DeviceClass = "tablet"
	DeviceDesktop DeviceClass = "desktop"
)

func (d DeviceClass) Valid() bool {
	switch d {
	case DeviceMobile, DeviceTablet, DeviceDesktop:
		return true
	}
	return false
}

// TimeRange is the analytics window selected on the dashboard.
type TimeRange string

const (
	Range7d  TimeRange = "7d"
	Range30d TimeRange = "30d"
	Range90d TimeRange = "90d"
)

// Days returns the number of daily buckets in the range.
func (r TimeRange) Days() (int, error) {
	switch r {
	case Range7d:
		return 7, nil
	case Range30d:
		return 30, nil
	case Range90d:
		return 90, nil
	default:
		return 0, fmt.Errorf("%w: time range must be one of: 7d, 30d, 90d", ErrValidation)
	}
}

// ViewEvent is one row of the append-only fact table the analytics
// read model aggregates from. ItemName is set when the view was of a
// specific dish rather than the menu page.
type ViewEvent struct {
	ID         int64
	Subdomain  string
	MenuID     string
	ItemName   string
	Device     DeviceClass
	DurationMs int64
	OccurredAt time.Time
}

func (e *ViewEvent) Validate() error {
	if e.Subdomain == "" || e.MenuID == "" {
		return fmt.Errorf("%w: view event requires subdomain and menu id", ErrValidation)
	}
	if !e.Device.Valid() {
		return fmt.Errorf("%w: unknown device class %q", ErrValidation, e.Device)
	}
	if e.DurationMs < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrValidation)
	}
	return nil
}

// DevicePercent is one slice of the device breakdown chart.
type DevicePercent struct {
	Device  DeviceClass
	Percent int
}

// ItemViewStats is one row of the most-viewed-items table.
type ItemViewStats struct {
	Name              string
	Views             int
	TotalTimeViewedMs int64
}

// DailyViews is one bucket of the views-over-time chart. Date is the
// bucket day in YYYY-MM-DD form.
type DailyViews struct {
	Date  string
	Views int
}

// AnalyticsSummary is the dashboard read model for one organization
// and time range.
type AnalyticsSummary struct {
	TimeRange       TimeRange
	TotalViews      int
	AvgViewTimeMs   int64
	DeviceBreakdown []DevicePercent
	TopItems        []ItemViewStats
	ViewsOverTime   []DailyViews
}
