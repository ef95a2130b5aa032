package invoicing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/pkg/money"
)

// Totals agregados del documento en ambas divisas.
type Totals struct {
	Subtotal  decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal

	SubtotalSecondary  decimal.Decimal
	VATAmountSecondary decimal.Decimal
	TotalSecondary     decimal.Decimal
	ExchangeRate       decimal.Decimal
}

// Calculate deriva los campos de cada línea y los agregados del documento.
//
// Es pura: no muta la entrada y devuelve una copia de las líneas con
// LineTotal, VATAmount y sus equivalentes secundarios. La suma recorre las líneas
// en orden y redondea una sola vez al final.
func Calculate(items []entity.InvoiceItem, exchangeRate decimal.Decimal) ([]entity.InvoiceItem, Totals, error) {
	if err := money.CheckNonNegative("exchange_rate", exchangeRate); err != nil {
		return nil, Totals{}, err
	}
	out := make([]entity.InvoiceItem, len(items))
	lineTotals := make([]decimal.Decimal, len(items))
	vatAmounts := make([]decimal.Decimal, len(items))

	for i, it := range items {
		field := fmt.Sprintf("items[%d]", i)
		if err := money.CheckPositive(field+".quantity", it.Quantity); err != nil {
			return nil, Totals{}, err
		}
		if err := money.CheckNonNegative(field+".unit_price", it.UnitPrice); err != nil {
			return nil, Totals{}, err
		}
		if err := money.CheckRatePercent(field+".vat_rate", it.VATRate); err != nil {
			return nil, Totals{}, err
		}

		it.LineTotal = money.Round2(it.UnitPrice.Mul(it.Quantity))
		it.VATAmount = money.Percent(it.LineTotal, it.VATRate)
		it.UnitPriceSecondary = money.ApplyRate(it.UnitPrice, exchangeRate)
		it.LineTotalSecondary = money.ApplyRate(it.LineTotal, exchangeRate)
		it.VATAmountSecondary = money.ApplyRate(it.VATAmount, exchangeRate)

		out[i] = it
		lineTotals[i] = it.LineTotal
		vatAmounts[i] = it.VATAmount
	}

	t := Totals{ExchangeRate: exchangeRate}
	t.Subtotal = money.Sum(lineTotals...)
	t.VATAmount = money.Sum(vatAmounts...)
	t.Total = money.Sum(t.Subtotal, t.VATAmount)
	t.SubtotalSecondary = money.ApplyRate(t.Subtotal, exchangeRate)
	t.VATAmountSecondary = money.ApplyRate(t.VATAmount, exchangeRate)
	t.TotalSecondary = money.ApplyRate(t.Total, exchangeRate)
	return out, t, nil
}

// Apply copia los agregados sobre la factura.
func (t Totals) Apply(inv *entity.Invoice) {
	inv.Subtotal = t.Subtotal
	inv.VATAmount = t.VATAmount
	inv.Total = t.Total
	inv.SubtotalSecondary = t.SubtotalSecondary
	inv.VATAmountSecondary = t.VATAmountSecondary
	inv.TotalSecondary = t.TotalSecondary
	inv.ExchangeRate = t.ExchangeRate
}
