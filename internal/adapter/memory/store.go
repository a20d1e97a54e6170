// Package memory is an in-process implementation of the repository
// interfaces, mirroring the Postgres adapter's semantics. It backs the
// test suite and local development without a database.
package memory

import (
	"sync"

	"github.com/menuqrs/menuqr/internal/domain"
	"github.com/menuqrs/menuqr/internal/interfaces"
)

// Store holds all tenants' data behind one mutex. Cascading deletes
// need cross-entity access, so the repositories are views over the
// shared store rather than independent maps.
type Store struct {
	mu sync.RWMutex

	organizations map[string]*domain.Organization
	menus         map[string]*domain.Menu
	qrCodes       map[string]*domain.QRCode // keyed by menu id
	events        []domain.ViewEvent
	nextEventID   int64
}

func NewStore() *Store {
	return &Store{
		organizations: map[string]*domain.Organization{},
		menus:         map[string]*domain.Menu{},
		qrCodes:       map[string]*domain.QRCode{},
	}
}

func (s *Store) Organizations() interfaces.OrganizationRepository {
	return &organizationRepository{store: s}
}

func (s *Store) Menus() interfaces.MenuRepository {
	return &menuRepository{store: s}
}

func (s *Store) QRCodes() interfaces.QRCodeRepository {
	return &qrCodeRepository{store: s}
}

func (s *Store) ViewEvents() interfaces.ViewEventRepository {
	return &viewEventRepository{store: s}
}
