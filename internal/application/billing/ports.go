package billing

import (
	"context"

	"github.com/jhoicas/facturador/internal/document"
	"github.com/jhoicas/facturador/internal/domain/repository"
)

// IssuingTxRunner ejecuta una función dentro de una transacción que incluye el
// contador diario y el repositorio de facturas. Si fn devuelve error la
// transacción se revierte y el consecutivo tomado se libera.
type IssuingTxRunner interface {
	RunIssuing(ctx context.Context, fn func(
		numbers repository.NumberSequence,
		invoices repository.InvoiceRepository,
	) error) error
}

// DocumentRenderer una estrategia de representación gráfica. Todas consumen el
// mismo contenido y el mismo plan de páginas; ninguna calcula cifras.
// Ante un fallo devuelven *domain.RenderError y nunca bytes parciales.
type DocumentRenderer interface {
	Strategy() string
	Render(ctx context.Context, c *document.Content, plan *document.Plan) ([]byte, error)
}
