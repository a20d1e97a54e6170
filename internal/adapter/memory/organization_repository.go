package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/menuqrs/menuqr/internal/domain"
)

type organizationRepository struct {
	store *Store
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.organizations[org.Subdomain]; ok {
		return fmt.Errorf("%w: subdomain %s is already taken", domain.ErrConflict, org.Subdomain)
	}
	r.store.organizations[org.Subdomain] = copyOrganization(org)
	return nil
}

func (r *organizationRepository) FindBySubdomain(ctx context.Context, subdomain string) (*domain.Organization, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	org, ok := r.store.organizations[subdomain]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyOrganization(org), nil
}

func (r *organizationRepository) UpdateBusinessInfo(ctx context.Context, subdomain string, info domain.BusinessInfo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	org, ok := r.store.organizations[subdomain]
	if !ok {
		return domain.ErrNotFound
	}
	org.BusinessInfo = copyBusinessInfo(info)
	return nil
}

func (r *organizationRepository) UpdateEnabledWidgets(ctx context.Context, subdomain string, widgets map[string]bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	org, ok := r.store.organizations[subdomain]
	if !ok {
		return domain.ErrNotFound
	}
	org.EnabledWidgets = copyWidgetSet(widgets)
	return nil
}

func copyOrganization(org *domain.Organization) *domain.Organization {
	out := *org
	out.BusinessInfo = copyBusinessInfo(org.BusinessInfo)
	out.EnabledWidgets = copyWidgetSet(org.EnabledWidgets)
	return &out
}

func copyBusinessInfo(info domain.BusinessInfo) domain.BusinessInfo {
	out := info
	if info.Hours != nil {
		out.Hours = make(map[time.Weekday]domain.DayHours, len(info.Hours))
		for k, v := range info.Hours {
			out.Hours[k] = v
		}
	}
	return out
}

func copyWidgetSet(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for k, v := range set {
		out[k] = v
	}
	return out
}
