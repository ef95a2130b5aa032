package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceStore)(nil)

// InvoiceStore repositorio de facturas en memoria.
type InvoiceStore struct {
	mu       sync.RWMutex
	byID     map[string]*entity.Invoice
	byNumber map[string]string
}

// NewInvoiceStore construye el repositorio vacío.
func NewInvoiceStore() *InvoiceStore {
	return &InvoiceStore{byID: map[string]*entity.Invoice{}, byNumber: map[string]string{}}
}

// Create guarda una copia de la factura. El número es único.
func (s *InvoiceStore) Create(_ context.Context, inv *entity.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byNumber[inv.Number]; ok {
		return fmt.Errorf("%w: número %s", domain.ErrDuplicate, inv.Number)
	}
	cp := clone(inv)
	s.byID[inv.ID] = cp
	s.byNumber[inv.Number] = inv.ID
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (s *InvoiceStore) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(inv), nil
}

// GetByNumber devuelve nil, nil si no existe.
func (s *InvoiceStore) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	s.mu.RLock()
	id, ok := s.byNumber[number]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.GetByID(ctx, id)
}

// List ordena por número descendente (los más recientes primero).
func (s *InvoiceStore) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*entity.Invoice, 0, len(s.byID))
	for _, inv := range s.byID {
		all = append(all, inv)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number > all[j].Number })
	if offset >= len(all) {
		return []*entity.Invoice{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*entity.Invoice, 0, end-offset)
	for _, inv := range all[offset:end] {
		out = append(out, clone(inv))
	}
	return out, nil
}

// UpdateStatus única mutación permitida; compara y asigna bajo el lock.
func (s *InvoiceStore) UpdateStatus(_ context.Context, id string, from, to entity.InvoiceStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if inv.Status != from {
		return fmt.Errorf("%w: estado actual %s, esperado %s", domain.ErrConflict, inv.Status, from)
	}
	inv.Status = to
	inv.UpdatedAt = updatedAt
	return nil
}

func (s *InvoiceStore) remove(inv *entity.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, inv.ID)
	delete(s.byNumber, inv.Number)
}

func clone(inv *entity.Invoice) *entity.Invoice {
	cp := *inv
	cp.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return &cp
}
