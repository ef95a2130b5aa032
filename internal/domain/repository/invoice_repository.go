package repository

import (
	"context"
	"time"

	"github.com/jhoicas/facturador/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Una factura emitida solo cambia Status y UpdatedAt.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	// UpdateStatus cambia el estado solo si sigue siendo from; si otro cambio se
	// adelantó devuelve domain.ErrConflict.
	UpdateStatus(ctx context.Context, id string, from, to entity.InvoiceStatus, updatedAt time.Time) error
}
