package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Lunch Special", "lunch-special"},
		{"  Tony's Pizza!  ", "tonys-pizza"},
		{"Breakfast", "breakfast"},
		{"Drinks & Desserts", "drinks-desserts"},
		{"Multi   Space", "multi-space"},
		{"Already-Hyphenated", "already-hyphenated"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.name), "Slugify(%q)", tc.name)
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("tony-pizza"))
	assert.True(t, IsValidSlug("cafe42"))
	assert.True(t, IsValidSlug("a"))

	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("-leading"))
	assert.False(t, IsValidSlug("trailing-"))
	assert.False(t, IsValidSlug("double--hyphen"))
	assert.False(t, IsValidSlug("Upper-Case"))
	assert.False(t, IsValidSlug("under_score"))
}
