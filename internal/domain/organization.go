package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Tier is the subscription level of an organization. Widget
// entitlement branches on it, so every switch over Tier must be
// exhaustive.
type Tier string

const (
	TierStarter      Tier = "starter"
	TierProfessional Tier = "professional"
	TierEnterprise   Tier = "enterprise"
)

func (t Tier) Valid() bool {
	switch t {
	case TierStarter, TierProfessional, TierEnterprise:
		return true
	}
	return false
}

// DayHours is the opening window for a single weekday.
type DayHours struct {
	IsOpen    bool
	OpenTime  string
	CloseTime string
}

// BusinessInfo holds the profile fields edited on the settings page.
type BusinessInfo struct {
	Phone   string
	Address string
	City    string
	State   string
	Zipcode string
	Hours   map[time.Weekday]DayHours
}

// Organization is a restaurant tenant. The subdomain is the unique key;
// every other entity is reached through it.
type Organization struct {
	Subdomain      string
	Name           string
	Tier           Tier
	BusinessInfo   BusinessInfo
	EnabledWidgets map[string]bool
	CreatedAt      time.Time
}

// NewOrganization creates a tenant at signup. Non-enterprise tiers get
// a fixed, tier-determined widget set.
func NewOrganization(subdomain, name string, tier Tier) (*Organization, error) {
	if !IsValidSlug(subdomain) {
		return nil, fmt.Errorf("%w: subdomain must be a URL-safe slug", ErrValidation)
	}
	if len(name) < 1 || len(name) > 100 {
		return nil, fmt.Errorf("%w: organization name must be 1-100 characters", ErrValidation)
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: unknown tier %q", ErrValidation, tier)
	}

	return &Organization{
		Subdomain:      subdomain,
		Name:           name,
		Tier:           tier,
		EnabledWidgets: DefaultWidgetSet(tier),
		CreatedAt:      time.Now(),
	}, nil
}

// DisplayName is the public-facing restaurant name shown on the menu
// viewer; falls back to the humanized subdomain when no name is set.
func (o *Organization) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return humanizeSlug(o.Subdomain)
}

func humanizeSlug(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] == '-' {
			out[i] = ' '
		}
	}
	return string(out)
}

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock reports whether s is a wall-clock time in HH:MM form.
func ValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// Validate checks the editable profile fields. Hours entries are only
// checked when the day is marked open.
func (b BusinessInfo) Validate() error {
	if len(b.Phone) > 30 {
		return fmt.Errorf("%w: phone must not exceed 30 characters", ErrValidation)
	}
	for day, h := range b.Hours {
		if !h.IsOpen {
			continue
		}
		if !ValidClock(h.OpenTime) || !ValidClock(h.CloseTime) {
			return fmt.Errorf("%w: hours for %s must be HH:MM", ErrValidation, day)
		}
	}
	return nil
}
