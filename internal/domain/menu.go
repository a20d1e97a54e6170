package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Layout controls how the public viewer renders a menu.
type Layout string

const (
	LayoutGrid    Layout = "grid"
	LayoutList    Layout = "list"
	LayoutCompact Layout = "compact"
)

func (l Layout) Valid() bool {
	switch l {
	case LayoutGrid, LayoutList, LayoutCompact:
		return true
	}
	return false
}

// Menu belongs to exactly one organization. The slug is frozen at
// creation so that printed QR codes survive renames.
type Menu struct {
	ID            string
	Subdomain     string
	Name          string
	Slug          string
	Description   string
	ImageURL      string
	IsListed      bool
	StartTime     string
	EndTime       string
	AvailableDays []time.Weekday
	Layout        Layout
	Categories    []Category
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Category groups items inside a menu. DisplayOrder defines the stable
// sort within the menu.
type Category struct {
	ID           string
	MenuID       string
	Name         string
	Description  string
	DisplayOrder int
	Items        []MenuItem
}

// MenuItem is a single dish. IsAvailable hides it from the public view
// without deleting it.
type MenuItem struct {
	ID           string
	CategoryID   string
	Name         string
	Description  string
	Price        decimal.Decimal
	ImageURL     string
	Ingredients  []string
	Allergens    []string
	Calories     int
	DisplayOrder int
	IsAvailable  bool
}

// NewMenu creates a menu with defaults applied: listed, no categories,
// grid layout unless overridden, slug derived from the name.
func NewMenu(subdomain, name, description, imageURL string, layout Layout) (*Menu, error) {
	if layout == "" {
		layout = LayoutGrid
	}

	now := time.Now()
	menu := &Menu{
		ID:          uuid.NewString(),
		Subdomain:   subdomain,
		Name:        name,
		Slug:        Slugify(name),
		Description: description,
		ImageURL:    imageURL,
		IsListed:    true,
		Layout:      layout,
		Categories:  []Category{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := menu.Validate(); err != nil {
		return nil, err
	}
	return menu, nil
}

// Validate applies the business rules shared by create and update.
func (m *Menu) Validate() error {
	if len(m.Name) < 1 || len(m.Name) > 100 {
		return fmt.Errorf("%w: menu name must be 1-100 characters", ErrValidation)
	}
	if m.Slug == "" {
		return fmt.Errorf("%w: menu name must contain at least one URL-safe character", ErrValidation)
	}
	if !m.Layout.Valid() {
		return fmt.Errorf("%w: layout must be one of: grid, list, compact", ErrValidation)
	}
	if (m.StartTime == "") != (m.EndTime == "") {
		return fmt.Errorf("%w: start and end time must be set together", ErrValidation)
	}
	if m.StartTime != "" {
		if !ValidClock(m.StartTime) || !ValidClock(m.EndTime) {
			return fmt.Errorf("%w: serving times must be HH:MM", ErrValidation)
		}
	}
	seen := map[time.Weekday]bool{}
	for _, d := range m.AvailableDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: invalid weekday %d", ErrValidation, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate weekday %s", ErrValidation, d)
		}
		seen[d] = true
	}
	return nil
}

// Touch bumps the update timestamp after a mutation.
func (m *Menu) Touch() {
	m.UpdatedAt = time.Now()
}

// IsServingAt reports whether the menu's scheduling window covers t.
// An empty window or day set means always available.
func (m *Menu) IsServingAt(t time.Time) bool {
	if len(m.AvailableDays) > 0 {
		match := false
		for _, d := range m.AvailableDays {
			if d == t.Weekday() {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}

	if m.StartTime == "" {
		return true
	}
	clock := t.Format("15:04")
	if m.StartTime <= m.EndTime {
		return clock >= m.StartTime && clock <= m.EndTime
	}
	// Window crosses midnight.
	return clock >= m.StartTime || clock <= m.EndTime
}

// AvailableItems flattens categories into the public item list:
// category order first, item order within each category, unavailable
// items excluded.
func (m *Menu) AvailableItems() []MenuItem {
	items := []MenuItem{}
	for _, cat := range m.Categories {
		for _, item := range cat.Items {
			if item.IsAvailable {
				items = append(items, item)
			}
		}
	}
	return items
}

// NewCategory appends a category after the existing ones.
func NewCategory(menuID, name, description string, displayOrder int) (*Category, error) {
	if len(name) < 1 || len(name) > 100 {
		return nil, fmt.Errorf("%w: category name must be 1-100 characters", ErrValidation)
	}
	return &Category{
		ID:           uuid.NewString(),
		MenuID:       menuID,
		Name:         name,
		Description:  description,
		DisplayOrder: displayOrder,
		Items:        []MenuItem{},
	}, nil
}

// NewMenuItem creates an item with availability defaulted to true.
func NewMenuItem(categoryID, name, description string, price decimal.Decimal, imageURL string, ingredients, allergens []string, calories, displayOrder int) (*MenuItem, error) {
	if len(name) < 1 || len(name) > 100 {
		return nil, fmt.Errorf("%w: item name must be 1-100 characters", ErrValidation)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: item price must not be negative", ErrValidation)
	}
	if calories < 0 {
		return nil, fmt.Errorf("%w: calories must not be negative", ErrValidation)
	}
	return &MenuItem{
		ID:           uuid.NewString(),
		CategoryID:   categoryID,
		Name:         name,
		Description:  description,
		Price:        price,
		ImageURL:     imageURL,
		Ingredients:  ingredients,
		Allergens:    allergens,
		Calories:     calories,
		DisplayOrder: displayOrder,
		IsAvailable:  true,
	}, nil
}
