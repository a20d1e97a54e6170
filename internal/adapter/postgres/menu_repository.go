package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
	"github.com/shopspring/decimal"
)

type menuRepository struct {
	db DB
}

func NewMenuRepository(db DB) interfaces.MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	query := `
		INSERT INTO menus (id, subdomain, name, slug, description, image_url, is_listed,
		                   start_time, end_time, available_days, layout, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		menu.ID, menu.Subdomain, menu.Name, menu.Slug, menu.Description, menu.ImageURL,
		menu.IsListed, menu.StartTime, menu.EndTime, weekdaysToInts(menu.AvailableDays),
		menu.Layout, menu.CreatedAt, menu.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: a menu with slug %s already exists", domain.ErrConflict, menu.Slug)
		}
		return fmt.Errorf("failed to insert menu: %w", err)
	}
	return nil
}

func (r *menuRepository) FindByID(ctx context.Context, menuID string) (*domain.Menu, error) {
	query := menuSelect + ` WHERE id = $1`
	menu, err := r.scanMenu(r.db.QueryRow(ctx, query, menuID))
	if err != nil {
		return nil, err
	}
	if err := r.loadCategories(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (r *menuRepository) FindBySlug(ctx context.Context, subdomain, slug string) (*domain.Menu, error) {
	query := menuSelect + ` WHERE subdomain = $1 AND slug = $2`
	menu, err := r.scanMenu(r.db.QueryRow(ctx, query, subdomain, slug))
	if err != nil {
		return nil, err
	}
	if err := r.loadCategories(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (r *menuRepository) ListBySubdomain(ctx context.Context, subdomain string) ([]*domain.Menu, error) {
	query := menuSelect + ` WHERE subdomain = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, subdomain)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	var menus []*domain.Menu
	for rows.Next() {
		menu, err := r.scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}

	for _, menu := range menus {
		if err := r.loadCategories(ctx, menu); err != nil {
			return nil, err
		}
	}
	return menus, nil
}

func (r *menuRepository) Update(ctx context.Context, menu *domain.Menu, expectedUpdatedAt time.Time) error {
	// The slug is frozen at creation and deliberately not written.
	query := `
		UPDATE menus
		SET name = $1, description = $2, image_url = $3, is_listed = $4,
		    start_time = $5, end_time = $6, available_days = $7, layout = $8, updated_at = $9
		WHERE id = $10 AND updated_at = $11
	`
	tag, err := r.db.Exec(ctx, query,
		menu.Name, menu.Description, menu.ImageURL, menu.IsListed,
		menu.StartTime, menu.EndTime, weekdaysToInts(menu.AvailableDays), menu.Layout,
		menu.UpdatedAt, menu.ID, expectedUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: menu was modified concurrently", domain.ErrConflict)
	}
	return nil
}

func (r *menuRepository) Delete(ctx context.Context, menuID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM menu_items WHERE category_id IN (SELECT id FROM categories WHERE menu_id = $1)`,
		menuID); err != nil {
		return fmt.Errorf("failed to delete menu items: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE menu_id = $1`, menuID); err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM qr_codes WHERE menu_id = $1`, menuID); err != nil {
		return fmt.Errorf("failed to delete qr code: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM menus WHERE id = $1`, menuID)
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *menuRepository) AddCategory(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, menu_id, name, description, display_order)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		category.ID, category.MenuID, category.Name, category.Description, category.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *menuRepository) AddItem(ctx context.Context, item *domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, category_id, name, description, price, image_url,
		                        ingredients, allergens, calories, display_order, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		item.ID, item.CategoryID, item.Name, item.Description, item.Price.String(),
		item.ImageURL, item.Ingredients, item.Allergens, item.Calories,
		item.DisplayOrder, item.IsAvailable,
	)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (r *menuRepository) SetItemAvailability(ctx context.Context, itemID string, available bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE menu_items SET is_available = $1 WHERE id = $2`, available, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *menuRepository) FindItem(ctx context.Context, itemID string) (*domain.MenuItem, *domain.Menu, error) {
	query := `
		SELECT i.id, i.category_id, i.name, i.description, i.price::text, i.image_url,
		       i.ingredients, i.allergens, i.calories, i.display_order, i.is_available,
		       c.menu_id
		FROM menu_items i
		JOIN categories c ON c.id = i.category_id
		WHERE i.id = $1
	`

	var (
		item   domain.MenuItem
		price  string
		menuID string
	)
	err := r.db.QueryRow(ctx, query, itemID).Scan(
		&item.ID, &item.CategoryID, &item.Name, &item.Description, &price, &item.ImageURL,
		&item.Ingredients, &item.Allergens, &item.Calories, &item.DisplayOrder,
		&item.IsAvailable, &menuID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to find menu item: %w", err)
	}

	item.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse item price: %w", err)
	}

	menu, err := r.FindByID(ctx, menuID)
	if err != nil {
		return nil, nil, err
	}
	return &item, menu, nil
}

const menuSelect = `
	SELECT id, subdomain, name, slug, description, image_url, is_listed,
	       start_time, end_time, available_days, layout, created_at, updated_at
	FROM menus`

func (r *menuRepository) scanMenu(row Row) (*domain.Menu, error) {
	var (
		menu domain.Menu
		days []int
	)
	err := row.Scan(
		&menu.ID, &menu.Subdomain, &menu.Name, &menu.Slug, &menu.Description,
		&menu.ImageURL, &menu.IsListed, &menu.StartTime, &menu.EndTime,
		&days, &menu.Layout, &menu.CreatedAt, &menu.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan menu: %w", err)
	}
	menu.AvailableDays = intsToWeekdays(days)
	menu.Categories = []domain.Category{}
	return &menu, nil
}

func (r *menuRepository) loadCategories(ctx context.Context, menu *domain.Menu) error {
	query := `
		SELECT id, menu_id, name, description, display_order
		FROM categories
		WHERE menu_id = $1
		ORDER BY display_order, id
	`
	rows, err := r.db.Query(ctx, query, menu.ID)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.MenuID, &cat.Name, &cat.Description, &cat.DisplayOrder); err != nil {
			return fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Items = []domain.MenuItem{}
		menu.Categories = append(menu.Categories, cat)
	}

	for i := range menu.Categories {
		if err := r.loadItems(ctx, &menu.Categories[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *menuRepository) loadItems(ctx context.Context, cat *domain.Category) error {
	query := `
		SELECT id, category_id, name, description, price::text, image_url,
		       ingredients, allergens, calories, display_order, is_available
		FROM menu_items
		WHERE category_id = $1
		ORDER BY display_order, id
	`
	rows, err := r.db.Query(ctx, query, cat.ID)
	if err != nil {
		return fmt.Errorf("failed to load menu items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item  domain.MenuItem
			price string
		)
		if err := rows.Scan(
			&item.ID, &item.CategoryID, &item.Name, &item.Description, &price,
			&item.ImageURL, &item.Ingredients, &item.Allergens, &item.Calories,
			&item.DisplayOrder, &item.IsAvailable,
		); err != nil {
			return fmt.Errorf("failed to scan menu item: %w", err)
		}
		item.Price, err = decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("failed to parse item price: %w", err)
		}
		cat.Items = append(cat.Items, item)
	}
	return nil
}

func weekdaysToInts(days []time.Weekday) []int {
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}

func intsToWeekdays(days []int) []time.Weekday {
	out := make([]time.Weekday, len(days))
	for i, d := range days {
		out[i] = time.Weekday(d)
	}
	return out
}
