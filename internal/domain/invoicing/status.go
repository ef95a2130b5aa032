package invoicing

import "github.com/jhoicas/facturador/internal/domain/entity"

// transitions cambios de estado permitidos. paid y cancelled son terminales.
var transitions = map[entity.InvoiceStatus][]entity.InvoiceStatus{
	entity.StatusDraft:   {entity.StatusSent, entity.StatusCancelled},
	entity.StatusSent:    {entity.StatusPaid, entity.StatusOverdue, entity.StatusCancelled},
	entity.StatusOverdue: {entity.StatusPaid, entity.StatusCancelled},
}

// CanTransition informa si la factura puede pasar de from a to.
func CanTransition(from, to entity.InvoiceStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
