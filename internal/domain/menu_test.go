package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuDefaults(t *testing.T) {
	menu, err := NewMenu("tony-pizza", "Lunch Special", "Midday menu", "", "")
	require.NoError(t, err)

	assert.NotEmpty(t, menu.ID)
	assert.Equal(t, "lunch-special", menu.Slug)
	assert.True(t, menu.IsListed)
	assert.Equal(t, LayoutGrid, menu.Layout)
	assert.Empty(t, menu.Categories)
}

func TestNewMenuValidation(t *testing.T) {
	_, err := NewMenu("tony-pizza", "", "", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewMenu("tony-pizza", "!!!", "", "", "")
	assert.ErrorIs(t, err, ErrValidation, "name with no slug-safe characters")

	_, err = NewMenu("tony-pizza", "Dinner", "", "", "circular")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMenuValidateServingWindow(t *testing.T) {
	menu, err := NewMenu("tony-pizza", "Dinner", "", "", LayoutList)
	require.NoError(t, err)

	menu.StartTime = "17:00"
	assert.ErrorIs(t, menu.Validate(), ErrValidation, "start without end")

	menu.EndTime = "23:00"
	assert.NoError(t, menu.Validate())

	menu.EndTime = "25:00"
	assert.ErrorIs(t, menu.Validate(), ErrValidation)

	menu.EndTime = "23:00"
	menu.AvailableDays = []time.Weekday{time.Monday, time.Monday}
	assert.ErrorIs(t, menu.Validate(), ErrValidation, "duplicate weekday")
}

func TestMenuIsServingAt(t *testing.T) {
	menu, err := NewMenu("tony-pizza", "Lunch", "", "", "")
	require.NoError(t, err)

	// 2026-03-02 is a Monday.
	monday := func(clock string) time.Time {
		parsed, err := time.Parse("2006-01-02 15:04", "2026-03-02 "+clock)
		require.NoError(t, err)
		return parsed
	}

	assert.True(t, menu.IsServingAt(monday("03:00")), "no window means always serving")

	menu.StartTime = "11:00"
	menu.EndTime = "15:00"
	assert.True(t, menu.IsServingAt(monday("11:00")))
	assert.True(t, menu.IsServingAt(monday("15:00")))
	assert.False(t, menu.IsServingAt(monday("15:01")))
	assert.False(t, menu.IsServingAt(monday("10:59")))

	menu.AvailableDays = []time.Weekday{time.Tuesday}
	assert.False(t, menu.IsServingAt(monday("12:00")), "wrong weekday")
	menu.AvailableDays = []time.Weekday{time.Monday}
	assert.True(t, menu.IsServingAt(monday("12:00")))
}

func TestMenuIsServingAtMidnightCrossing(t *testing.T) {
	menu, err := NewMenu("tony-pizza", "Late Night", "", "", "")
	require.NoError(t, err)
	menu.StartTime = "22:00"
	menu.EndTime = "02:00"

	at := func(clock string) time.Time {
		parsed, err := time.Parse("15:04", clock)
		require.NoError(t, err)
		return parsed
	}

	assert.True(t, menu.IsServingAt(at("23:30")))
	assert.True(t, menu.IsServingAt(at("01:00")))
	assert.False(t, menu.IsServingAt(at("12:00")))
}

func TestMenuAvailableItems(t *testing.T) {
	menu, err := NewMenu("tony-pizza", "Dinner", "", "", "")
	require.NoError(t, err)

	price := decimal.NewFromInt(10)
	starters, err := NewCategory(menu.ID, "Starters", "", 0)
	require.NoError(t, err)
	mains, err := NewCategory(menu.ID, "Mains", "", 1)
	require.NoError(t, err)

	soup, err := NewMenuItem(starters.ID, "Soup", "", price, "", nil, nil, 120, 0)
	require.NoError(t, err)
	salad, err := NewMenuItem(starters.ID, "Salad", "", price, "", nil, nil, 90, 1)
	require.NoError(t, err)
	salad.IsAvailable = false
	pasta, err := NewMenuItem(mains.ID, "Pasta", "", price, "", nil, nil, 600, 0)
	require.NoError(t, err)

	starters.Items = []MenuItem{*soup, *salad}
	mains.Items = []MenuItem{*pasta}
	menu.Categories = []Category{*starters, *mains}

	items := menu.AvailableItems()
	require.Len(t, items, 2)
	assert.Equal(t, "Soup", items[0].Name)
	assert.Equal(t, "Pasta", items[1].Name)
}

func TestNewMenuItemValidation(t *testing.T) {
	_, err := NewMenuItem("cat", "Soup", "", decimal.NewFromInt(-1), "", nil, nil, 0, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewMenuItem("cat", "Soup", "", decimal.NewFromInt(5), "", nil, nil, -10, 0)
	assert.ErrorIs(t, err, ErrValidation)

	item, err := NewMenuItem("cat", "Soup", "", decimal.NewFromInt(5), "", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)
}
