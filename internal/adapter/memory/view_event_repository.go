package memory

import (
	"context"
	"sort"
	"time"

	"github.com/menuqrs/menuqr/internal/domain"
)

type viewEventRepository struct {
	store *Store
}

func (r *viewEventRepository) Append(ctx context.Context, event *domain.ViewEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextEventID++
	event.ID = r.store.nextEventID
	r.store.events = append(r.store.events, *event)
	return nil
}

func (r *viewEventRepository) CountByMenu(ctx context.Context, menuID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, e := range r.store.events {
		if e.MenuID == menuID {
			count++
		}
	}
	return count, nil
}

func (r *viewEventRepository) TotalViews(ctx context.Context, subdomain string, since time.Time) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, e := range r.store.events {
		if e.Subdomain == subdomain && !e.OccurredAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *viewEventRepository) AvgDurationMs(ctx context.Context, subdomain string, since time.Time) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var sum, n int64
	for _, e := range r.store.events {
		if e.Subdomain == subdomain && !e.OccurredAt.Before(since) && e.DurationMs > 0 {
			sum += e.DurationMs
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / n, nil
}

func (r *viewEventRepository) DeviceCounts(ctx context.Context, subdomain string, since time.Time) (map[domain.DeviceClass]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := map[domain.DeviceClass]int{}
	for _, e := range r.store.events {
		if e.Subdomain == subdomain && !e.OccurredAt.Before(since) {
			counts[e.Device]++
		}
	}
	return counts, nil
}

func (r *viewEventRepository) TopItems(ctx context.Context, subdomain string, since time.Time, limit int) ([]domain.ItemViewStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byName := map[string]*domain.ItemViewStats{}
	for _, e := range r.store.events {
		if e.Subdomain != subdomain || e.OccurredAt.Before(since) || e.ItemName == "" {
			continue
		}
		s, ok := byName[e.ItemName]
		if !ok {
			s = &domain.ItemViewStats{Name: e.ItemName}
			byName[e.ItemName] = s
		}
		s.Views++
		s.TotalTimeViewedMs += e.DurationMs
	}

	stats := make([]domain.ItemViewStats, 0, len(byName))
	for _, s := range byName {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Views != stats[j].Views {
			return stats[i].Views > stats[j].Views
		}
		return stats[i].Name < stats[j].Name
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

func (r *viewEventRepository) DailyCounts(ctx context.Context, subdomain string, since time.Time) (map[string]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := map[string]int{}
	for _, e := range r.store.events {
		if e.Subdomain == subdomain && !e.OccurredAt.Before(since) {
			counts[e.OccurredAt.UTC().Format("2006-01-02")]++
		}
	}
	return counts, nil
}
