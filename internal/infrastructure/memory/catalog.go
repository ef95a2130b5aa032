package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/repository"
)

var _ repository.ProductCatalog = (*Catalog)(nil)

// Catalog catálogo de productos en memoria.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]entity.Product
}

// NewCatalog construye el catálogo con los productos dados.
func NewCatalog(products ...entity.Product) *Catalog {
	c := &Catalog{products: make(map[string]entity.Product, len(products))}
	for _, p := range products {
		c.products[p.Ref] = p
	}
	return c
}

// CatalogFromOrder deriva un catálogo de los nombres que trae el propio pedido.
func CatalogFromOrder(order entity.Order) *Catalog {
	c := NewCatalog()
	for _, it := range order.Items {
		if it.ProductRef == "" || it.Name == "" {
			continue
		}
		c.Put(entity.Product{Ref: it.ProductRef, Name: it.Name, Unit: it.Unit})
	}
	return c
}

// Put agrega o reemplaza un producto.
func (c *Catalog) Put(p entity.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.Ref] = p
}

// Lookup devuelve nil, nil si la referencia no existe.
func (c *Catalog) Lookup(_ context.Context, ref string) (*entity.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[ref]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
