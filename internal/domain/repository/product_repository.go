package repository

import (
	"context"

	"github.com/jhoicas/facturador/internal/domain/entity"
)

// ProductCatalog resuelve nombre, descripción y unidad de una referencia de producto.
// Devuelve nil, nil si la referencia no existe.
type ProductCatalog interface {
	Lookup(ctx context.Context, ref string) (*entity.Product, error)
}
