package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/invoicing"
	"github.com/jhoicas/facturador/internal/domain/repository"
	"github.com/jhoicas/facturador/pkg/logger"
)

// InvoiceUseCase consultas y cambios de estado de facturas emitidas.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(invoiceRepo repository.InvoiceRepository, log *logger.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{invoiceRepo: invoiceRepo, log: log, now: time.Now}
}

// Get devuelve la factura o domain.ErrNotFound.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoice: obtener: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// List devuelve una página de facturas, las más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	list, err := uc.invoiceRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("invoice: listar: %w", err)
	}
	return list, nil
}

// ChangeStatus aplica una transición de estado decidida por el flujo externo.
// Es la única mutación permitida sobre una factura emitida.
func (uc *InvoiceUseCase) ChangeStatus(ctx context.Context, id, status string) (*entity.Invoice, error) {
	to := entity.InvoiceStatus(status)
	if !to.Valid() {
		verr := &domain.ValidationError{}
		verr.Add("status", fmt.Sprintf("unknown status %q", status))
		return nil, verr
	}
	inv, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoicing.CanTransition(inv.Status, to) {
		return nil, fmt.Errorf("%w: no se puede pasar de %s a %s", domain.ErrConflict, inv.Status, to)
	}

	now := uc.now()
	if err := uc.invoiceRepo.UpdateStatus(ctx, inv.ID, inv.Status, to, now); err != nil {
		return nil, fmt.Errorf("invoice: actualizar estado: %w", err)
	}
	uc.log.Info().Str("number", inv.Number).Str("from", string(inv.Status)).Str("to", string(to)).Msg("estado de factura actualizado")
	inv.Status = to
	inv.UpdatedAt = now
	return inv, nil
}
