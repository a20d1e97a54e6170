package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

type organizationRepository struct {
	db DB
}

func NewOrganizationRepository(db DB) interfaces.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	hours, err := json.Marshal(org.BusinessInfo.Hours)
	if err != nil {
		return fmt.Errorf("failed to marshal hours: %w", err)
	}

	query := `
		INSERT INTO organizations (subdomain, name, tier, phone, address, city, state, zipcode,
		                           hours, enabled_widgets, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.Exec(ctx, query,
		org.Subdomain, org.Name, org.Tier,
		org.BusinessInfo.Phone, org.BusinessInfo.Address, org.BusinessInfo.City,
		org.BusinessInfo.State, org.BusinessInfo.Zipcode,
		hours, widgetSetToSlice(org.EnabledWidgets), org.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: subdomain %s is already taken", domain.ErrConflict, org.Subdomain)
		}
		return fmt.Errorf("failed to insert organization: %w", err)
	}
	return nil
}

func (r *organizationRepository) FindBySubdomain(ctx context.Context, subdomain string) (*domain.Organization, error) {
	query := `
		SELECT subdomain, name, tier, phone, address, city, state, zipcode,
		       hours, enabled_widgets, created_at
		FROM organizations
		WHERE subdomain = $1
	`

	var (
		org     domain.Organization
		hours   []byte
		widgets []string
	)
	err := r.db.QueryRow(ctx, query, subdomain).Scan(
		&org.Subdomain, &org.Name, &org.Tier,
		&org.BusinessInfo.Phone, &org.BusinessInfo.Address, &org.BusinessInfo.City,
		&org.BusinessInfo.State, &org.BusinessInfo.Zipcode,
		&hours, &widgets, &org.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &org.BusinessInfo.Hours); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hours: %w", err)
		}
	}
	org.EnabledWidgets = widgetSliceToSet(widgets)

	return &org, nil
}

func (r *organizationRepository) UpdateBusinessInfo(ctx context.Context, subdomain string, info domain.BusinessInfo) error {
	hours, err := json.Marshal(info.Hours)
	if err != nil {
		return fmt.Errorf("failed to marshal hours: %w", err)
	}

	query := `
		UPDATE organizations
		SET phone = $1, address = $2, city = $3, state = $4, zipcode = $5, hours = $6
		WHERE subdomain = $7
	`
	tag, err := r.db.Exec(ctx, query,
		info.Phone, info.Address, info.City, info.State, info.Zipcode, hours, subdomain,
	)
	if err != nil {
		return fmt.Errorf("failed to update business info: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *organizationRepository) UpdateEnabledWidgets(ctx context.Context, subdomain string, widgets map[string]bool) error {
	query := `
		UPDATE organizations
		SET enabled_widgets = $1
		WHERE subdomain = $2
	`
	tag, err := r.db.Exec(ctx, query, widgetSetToSlice(widgets), subdomain)
	if err != nil {
		return fmt.Errorf("failed to update enabled widgets: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func widgetSetToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id, on := range set {
		if on {
			out = append(out, id)
		}
	}
	return out
}

func widgetSliceToSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
