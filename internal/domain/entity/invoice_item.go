package entity

import "github.com/shopspring/decimal"

// InvoiceItem línea facturable. Los campos derivados los fija la calculadora de totales.
type InvoiceItem struct {
	ID          string
	ProductRef  string
	Name        string
	Description string
	Quantity    decimal.Decimal
	Unit        string // pieza, m², kg...

	UnitPrice decimal.Decimal
	VATRate   decimal.Decimal // porcentaje: 0, 9 o 20

	LineTotal decimal.Decimal
	VATAmount decimal.Decimal

	UnitPriceSecondary decimal.Decimal
	LineTotalSecondary decimal.Decimal
	VATAmountSecondary decimal.Decimal
}
