package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus ciclo de vida de la factura. Las transiciones las decide el flujo
// externo; el motor solo calcula si la fecha de vencimiento ya pasó.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusSent      InvoiceStatus = "sent"
	StatusPaid      InvoiceStatus = "paid"
	StatusOverdue   InvoiceStatus = "overdue"
	StatusCancelled InvoiceStatus = "cancelled"
)

// Valid informa si el estado pertenece al conjunto cerrado.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// Currency identifica una divisa y su símbolo para la representación gráfica.
type Currency struct {
	Code   string `json:"code"`   // BGN, EUR
	Symbol string `json:"symbol"` // лв., €
}

// Invoice registro inmutable de un evento de facturación. Solo Status y UpdatedAt
// cambian después de la emisión.
type Invoice struct {
	ID          string
	Number      string // YYYYMMDDnnn
	OrderNumber string

	IssueDate  time.Time
	DueDate    time.Time
	SupplyDate *time.Time

	Status InvoiceStatus

	Company  Company
	Customer Customer
	Items    []InvoiceItem

	// Totales en la divisa nativa.
	Subtotal  decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal

	// Equivalentes en la divisa secundaria, congelados al ensamblar.
	SubtotalSecondary  decimal.Decimal
	VATAmountSecondary decimal.Decimal
	TotalSecondary     decimal.Decimal
	ExchangeRate       decimal.Decimal

	Currency          Currency
	SecondaryCurrency Currency

	PaymentTerms string
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// IsOverdue calcula si la factura impaga ya venció en la fecha dada. No muta Status.
func (inv *Invoice) IsOverdue(now time.Time) bool {
	switch inv.Status {
	case StatusPaid, StatusCancelled:
		return false
	}
	due := time.Date(inv.DueDate.Year(), inv.DueDate.Month(), inv.DueDate.Day(), 0, 0, 0, 0, inv.DueDate.Location())
	return !now.In(inv.DueDate.Location()).Before(due.AddDate(0, 0, 1))
}
