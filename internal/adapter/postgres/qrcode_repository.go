package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

type qrCodeRepository struct {
	db DB
}

func NewQRCodeRepository(db DB) interfaces.QRCodeRepository {
	return &qrCodeRepository{db: db}
}

func (r *qrCodeRepository) Create(ctx context.Context, code *domain.QRCode) error {
	// ON CONFLICT DO NOTHING keeps the one-to-one invariant under
	// concurrent create calls; the service re-reads the winner.
	query := `
		INSERT INTO qr_codes (id, menu_id, created_at, last_regenerated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (menu_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, code.ID, code.MenuID, code.CreatedAt, code.LastRegeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to insert qr code: %w", err)
	}
	return nil
}

func (r *qrCodeRepository) FindByMenuID(ctx context.Context, menuID string) (*domain.QRCode, error) {
	query := `
		SELECT id, menu_id, created_at, last_regenerated_at
		FROM qr_codes
		WHERE menu_id = $1
	`

	var code domain.QRCode
	err := r.db.QueryRow(ctx, query, menuID).Scan(
		&code.ID, &code.MenuID, &code.CreatedAt, &code.LastRegeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find qr code: %w", err)
	}
	return &code, nil
}

func (r *qrCodeRepository) Update(ctx context.Context, code *domain.QRCode) error {
	query := `
		UPDATE qr_codes
		SET last_regenerated_at = $1
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, code.LastRegeneratedAt, code.ID)
	if err != nil {
		return fmt.Errorf("failed to update qr code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *qrCodeRepository) DeleteByMenuID(ctx context.Context, menuID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM qr_codes WHERE menu_id = $1`, menuID)
	if err != nil {
		return fmt.Errorf("failed to delete qr code: %w", err)
	}
	return nil
}
