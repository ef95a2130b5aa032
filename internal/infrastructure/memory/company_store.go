package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyStore)(nil)

// CompanyStore perfiles de emisor en memoria.
type CompanyStore struct {
	mu        sync.RWMutex
	companies map[string]entity.Company
}

// NewCompanyStore construye el repositorio con los perfiles dados.
func NewCompanyStore(companies ...entity.Company) *CompanyStore {
	s := &CompanyStore{companies: make(map[string]entity.Company, len(companies))}
	for _, c := range companies {
		s.companies[c.ID] = c
	}
	return s
}

// GetByID devuelve nil, nil si no existe.
func (s *CompanyStore) GetByID(_ context.Context, id string) (*entity.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Upsert crea o reemplaza el perfil.
func (s *CompanyStore) Upsert(_ context.Context, c *entity.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.ID] = *c
	return nil
}
