package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrganization(t *testing.T) {
	org, err := NewOrganization("tony-pizza", "Tony's Pizza", TierStarter)
	require.NoError(t, err)

	assert.Equal(t, "tony-pizza", org.Subdomain)
	assert.Equal(t, DefaultWidgetSet(TierStarter), org.EnabledWidgets)

	_, err = NewOrganization("Tony Pizza", "Tony's Pizza", TierStarter)
	assert.ErrorIs(t, err, ErrValidation, "subdomain must be a slug")

	_, err = NewOrganization("tony-pizza", "", TierStarter)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewOrganization("tony-pizza", "Tony's Pizza", Tier("platinum"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrganizationDisplayName(t *testing.T) {
	org, err := NewOrganization("joes-diner", "Joe's Diner", TierStarter)
	require.NoError(t, err)
	assert.Equal(t, "Joe's Diner", org.DisplayName())

	org.Name = ""
	assert.Equal(t, "joes diner", org.DisplayName())
}

func TestBusinessInfoValidate(t *testing.T) {
	info := BusinessInfo{
		Phone: "555-0134",
		Hours: map[time.Weekday]DayHours{
			time.Monday: {IsOpen: true, OpenTime: "09:00", CloseTime: "22:00"},
			time.Sunday: {IsOpen: false},
		},
	}
	assert.NoError(t, info.Validate())

	info.Hours[time.Monday] = DayHours{IsOpen: true, OpenTime: "9am", CloseTime: "22:00"}
	assert.ErrorIs(t, info.Validate(), ErrValidation)

	// Closed days are not checked.
	info.Hours[time.Monday] = DayHours{IsOpen: false, OpenTime: "9am"}
	assert.NoError(t, info.Validate())
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("00:00"))
	assert.True(t, ValidClock("23:59"))
	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("12:60"))
	assert.False(t, ValidClock("7:30"))
}
