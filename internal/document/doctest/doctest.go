// Package doctest construye facturas de ejemplo para las pruebas de los renderers.
package doctest

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/invoicing"
)

// Rate tipo de cambio usado en los ejemplos.
var Rate = decimal.RequireFromString("0.51129")

// Company emisor de ejemplo con datos en cirílico.
func Company() entity.Company {
	return entity.Company{
		ID:    "c1",
		Name:  "Плочки Ковачев ЕООД",
		TaxID: "204567890",
		VATID: "BG204567890",
		Phone: "+359 2 123 4567",
		Email: "office@plochki.bg",
		Address: entity.Address{
			Street: "ул. Витоша 15", City: "София", PostalCode: "1000", Country: "България",
		},
		Bank: entity.BankDetails{BankName: "УниКредит Булбанк", IBAN: "BG80BNBG96611020345678", SWIFT: "UNCRBGSF"},
	}
}

// Invoice factura ensamblada con n líneas de 2 × 25.50 al 20 %.
func Invoice(n int) *entity.Invoice {
	items := make([]entity.InvoiceItem, n)
	for i := range items {
		items[i] = entity.InvoiceItem{
			ProductRef: fmt.Sprintf("P-%03d", i+1),
			Name:       fmt.Sprintf("Гранитогрес плочка %d", i+1),
			Quantity:   decimal.NewFromInt(2),
			Unit:       "бр.",
			UnitPrice:  decimal.RequireFromString("25.50"),
			VATRate:    decimal.NewFromInt(20),
		}
	}
	items, totals, err := invoicing.Calculate(items, Rate)
	if err != nil {
		panic(err)
	}
	issue := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	due, _ := invoicing.DueDate(issue, invoicing.Terms30Days)
	inv := &entity.Invoice{
		ID:          "inv-1",
		Number:      "20240315001",
		OrderNumber: "ORD-1001",
		IssueDate:   issue,
		DueDate:     due,
		Status:      entity.StatusDraft,
		Company:     Company(),
		Customer: entity.Customer{
			Name:        "Иван Петров",
			CompanyName: "Строй Инвест ООД",
			Address:     entity.Address{Street: "бул. България 102", City: "Пловдив", PostalCode: "4000", Country: "България"},
			VATID:       "BG123456789",
		},
		Items:             items,
		ExchangeRate:      Rate,
		Currency:          entity.Currency{Code: "BGN", Symbol: "лв."},
		SecondaryCurrency: entity.Currency{Code: "EUR", Symbol: "€"},
		PaymentTerms:      invoicing.Terms30Days,
		Notes:             "Благодарим за доверието!",
	}
	totals.Apply(inv)
	return inv
}
