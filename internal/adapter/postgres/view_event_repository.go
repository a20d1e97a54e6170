package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

type viewEventRepository struct {
	db DB
}

func NewViewEventRepository(db DB) interfaces.ViewEventRepository {
	return &viewEventRepository{db: db}
}

func (r *viewEventRepository) Append(ctx context.Context, event *domain.ViewEvent) error {
	query := `
		INSERT INTO menu_view_events (subdomain, menu_id, item_name, device, duration_ms, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		event.Subdomain, event.MenuID, event.ItemName, event.Device,
		event.DurationMs, event.OccurredAt,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to append view event: %w", err)
	}
	return nil
}

func (r *viewEventRepository) CountByMenu(ctx context.Context, menuID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM menu_view_events WHERE menu_id = $1`, menuID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count menu views: %w", err)
	}
	return count, nil
}

func (r *viewEventRepository) TotalViews(ctx context.Context, subdomain string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM menu_view_events WHERE subdomain = $1 AND occurred_at >= $2`,
		subdomain, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count views: %w", err)
	}
	return count, nil
}

func (r *viewEventRepository) AvgDurationMs(ctx context.Context, subdomain string, since time.Time) (int64, error) {
	var avg int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(duration_ms), 0)::bigint
		 FROM menu_view_events
		 WHERE subdomain = $1 AND occurred_at >= $2 AND duration_ms > 0`,
		subdomain, since).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average view duration: %w", err)
	}
	return avg, nil
}

func (r *viewEventRepository) DeviceCounts(ctx context.Context, subdomain string, since time.Time) (map[domain.DeviceClass]int, error) {
	query := `
		SELECT device, COUNT(*)
		FROM menu_view_events
		WHERE subdomain = $1 AND occurred_at >= $2
		GROUP BY device
	`
	rows, err := r.db.Query(ctx, query, subdomain, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count views by device: %w", err)
	}
	defer rows.Close()

	counts := map[domain.DeviceClass]int{}
	for rows.Next() {
		var (
			device domain.DeviceClass
			count  int
		)
		if err := rows.Scan(&device, &count); err != nil {
			return nil, fmt.Errorf("failed to scan device count: %w", err)
		}
		counts[device] = count
	}
	return counts, nil
}

func (r *viewEventRepository) TopItems(ctx context.Context, subdomain string, since time.Time, limit int) ([]domain.ItemViewStats, error) {
	query := `
		SELECT item_name, COUNT(*), COALESCE(SUM(duration_ms), 0)
		FROM menu_view_events
		WHERE subdomain = $1 AND occurred_at >= $2 AND item_name <> ''
		GROUP BY item_name
		ORDER BY COUNT(*) DESC, item_name
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, subdomain, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top items: %w", err)
	}
	defer rows.Close()

	var stats []domain.ItemViewStats
	for rows.Next() {
		var s domain.ItemViewStats
		if err := rows.Scan(&s.Name, &s.Views, &s.TotalTimeViewedMs); err != nil {
			return nil, fmt.Errorf("failed to scan item stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, nil
}

func (r *viewEventRepository) DailyCounts(ctx context.Context, subdomain string, since time.Time) (map[string]int, error) {
	query := `
		SELECT to_char(date_trunc('day', occurred_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD'), COUNT(*)
		FROM menu_view_events
		WHERE subdomain = $1 AND occurred_at >= $2
		GROUP BY 1
	`
	rows, err := r.db.Query(ctx, query, subdomain, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily views: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var (
			day   string
			count int
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan daily views: %w", err)
		}
		counts[day] = count
	}
	return counts, nil
}
