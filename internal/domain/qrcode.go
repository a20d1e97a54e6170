package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QRCode is the one-to-one registry record for a menu's printed code.
// The encoded URL is never stored; it is rebuilt from the organization
// subdomain and the menu's frozen slug, so regeneration only moves the
// timestamp.
type QRCode struct {
	ID                string
	MenuID            string
	CreatedAt         time.Time
	LastRegeneratedAt time.Time
}

func NewQRCode(menuID string) *QRCode {
	now := time.Now()
	return &QRCode{
		ID:                uuid.NewString(),
		MenuID:            menuID,
		CreatedAt:         now,
		LastRegeneratedAt: now,
	}
}

// Regenerate records a regeneration event. The payload URL is
// deterministic, so nothing else changes.
func (q *QRCode) Regenerate() {
	q.LastRegeneratedAt = time.Now()
}

// QRPayloadURL composes the URL a printed code resolves to.
func QRPayloadURL(baseDomain, subdomain, slug string) string {
	return fmt.Sprintf("https://%s.%s/%s", subdomain, baseDomain, slug)
}
