package memory

import (
	"context"

	"github.com/menuqrs/menuqr/internal/domain"
)

type qrCodeRepository struct {
	store *Store
}

func (r *qrCodeRepository) Create(ctx context.Context, code *domain.QRCode) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// First writer wins; duplicate creates are resolved by the
	// service re-reading the stored record.
	if _, ok := r.store.qrCodes[code.MenuID]; ok {
		return nil
	}
	stored := *code
	r.store.qrCodes[code.MenuID] = &stored
	return nil
}

func (r *qrCodeRepository) FindByMenuID(ctx context.Context, menuID string) (*domain.QRCode, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	code, ok := r.store.qrCodes[menuID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *code
	return &out, nil
}

func (r *qrCodeRepository) Update(ctx context.Context, code *domain.QRCode) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.qrCodes[code.MenuID]
	if !ok || stored.ID != code.ID {
		return domain.ErrNotFound
	}
	stored.LastRegeneratedAt = code.LastRegeneratedAt
	return nil
}

func (r *qrCodeRepository) DeleteByMenuID(ctx context.Context, menuID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.qrCodes, menuID)
	return nil
}
