package entity

import "github.com/shopspring/decimal"

// Order instantánea del pedido tal como la entrega la fuente externa.
type Order struct {
	Number   string
	Customer Customer
	Items    []OrderItem
	Notes    string
}

// OrderItem línea cruda del pedido. Name/Unit son opcionales: el catálogo tiene prioridad.
type OrderItem struct {
	ProductRef string
	Name       string
	Unit       string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
}
