package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/repository"
)

var _ repository.ProductCatalog = (*ProductCatalog)(nil)

// ProductCatalog catálogo de productos (nombre, descripción, unidad) sobre PostgreSQL.
type ProductCatalog struct {
	q Querier
}

// NewProductCatalog construye el adaptador. Pasar pool o tx (Querier).
func NewProductCatalog(q Querier) *ProductCatalog {
	return &ProductCatalog{q: q}
}

// Lookup devuelve nil, nil si la referencia no existe.
func (c *ProductCatalog) Lookup(ctx context.Context, ref string) (*entity.Product, error) {
	query := `SELECT ref, name, description, unit FROM products WHERE ref = $1`
	var p entity.Product
	err := c.q.QueryRow(ctx, query, ref).Scan(&p.Ref, &p.Name, &p.Description, &p.Unit)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	return &p, nil
}
