package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/menuqrs/menuqr/internal/domain"
)

type menuRepository struct {
	store *Store
}

func (r *menuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.menus {
		if existing.Subdomain == menu.Subdomain && existing.Slug == menu.Slug {
			return fmt.Errorf("%w: a menu with slug %s already exists", domain.ErrConflict, menu.Slug)
		}
	}
	r.store.menus[menu.ID] = copyMenu(menu)
	return nil
}

func (r *menuRepository) FindByID(ctx context.Context, menuID string) (*domain.Menu, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	menu, ok := r.store.menus[menuID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyMenu(menu), nil
}

func (r *menuRepository) FindBySlug(ctx context.Context, subdomain, slug string) (*domain.Menu, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, menu := range r.store.menus {
		if menu.Subdomain == subdomain && menu.Slug == slug {
			return copyMenu(menu), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *menuRepository) ListBySubdomain(ctx context.Context, subdomain string) ([]*domain.Menu, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var menus []*domain.Menu
	for _, menu := range r.store.menus {
		if menu.Subdomain == subdomain {
			menus = append(menus, copyMenu(menu))
		}
	}
	sort.Slice(menus, func(i, j int) bool {
		return menus[i].CreatedAt.Before(menus[j].CreatedAt)
	})
	return menus, nil
}

func (r *menuRepository) Update(ctx context.Context, menu *domain.Menu, expectedUpdatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.menus[menu.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if !stored.UpdatedAt.Equal(expectedUpdatedAt) {
		return domain.ErrConflict
	}

	updated := copyMenu(menu)
	updated.Slug = stored.Slug // frozen at creation
	updated.Categories = stored.Categories
	r.store.menus[menu.ID] = updated
	return nil
}

func (r *menuRepository) Delete(ctx context.Context, menuID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.menus[menuID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.menus, menuID)
	delete(r.store.qrCodes, menuID)
	return nil
}

func (r *menuRepository) AddCategory(ctx context.Context, category *domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	menu, ok := r.store.menus[category.MenuID]
	if !ok {
		return domain.ErrNotFound
	}
	menu.Categories = append(menu.Categories, *copyCategory(category))
	sort.SliceStable(menu.Categories, func(i, j int) bool {
		return menu.Categories[i].DisplayOrder < menu.Categories[j].DisplayOrder
	})
	return nil
}

func (r *menuRepository) AddItem(ctx context.Context, item *domain.MenuItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, menu := range r.store.menus {
		for i := range menu.Categories {
			if menu.Categories[i].ID != item.CategoryID {
				continue
			}
			items := append(menu.Categories[i].Items, copyItem(item))
			sort.SliceStable(items, func(a, b int) bool {
				return items[a].DisplayOrder < items[b].DisplayOrder
			})
			menu.Categories[i].Items = items
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *menuRepository) SetItemAvailability(ctx context.Context, itemID string, available bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, menu := range r.store.menus {
		for i := range menu.Categories {
			for j := range menu.Categories[i].Items {
				if menu.Categories[i].Items[j].ID == itemID {
					menu.Categories[i].Items[j].IsAvailable = available
					return nil
				}
			}
		}
	}
	return domain.ErrNotFound
}

func (r *menuRepository) FindItem(ctx context.Context, itemID string) (*domain.MenuItem, *domain.Menu, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, menu := range r.store.menus {
		for i := range menu.Categories {
			for j := range menu.Categories[i].Items {
				if menu.Categories[i].Items[j].ID == itemID {
					item := copyItem(&menu.Categories[i].Items[j])
					return &item, copyMenu(menu), nil
				}
			}
		}
	}
	return nil, nil, domain.ErrNotFound
}

func copyMenu(menu *domain.Menu) *domain.Menu {
	out := *menu
	out.AvailableDays = append([]time.Weekday(nil), menu.AvailableDays...)
	out.Categories = make([]domain.Category, len(menu.Categories))
	for i := range menu.Categories {
		out.Categories[i] = *copyCategory(&menu.Categories[i])
	}
	return &out
}

func copyCategory(cat *domain.Category) *domain.Category {
	out := *cat
	out.Items = make([]domain.MenuItem, len(cat.Items))
	for i := range cat.Items {
		out.Items[i] = copyItem(&cat.Items[i])
	}
	return &out
}

func copyItem(item *domain.MenuItem) domain.MenuItem {
	out := *item
	out.Ingredients = append([]string(nil), item.Ingredients...)
	out.Allergens = append([]string(nil), item.Allergens...)
	return out
}
