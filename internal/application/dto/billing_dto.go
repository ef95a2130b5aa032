package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador/internal/domain/entity"
)

// DateLayout formato de fechas en la API (ISO 8601, sin hora).
const DateLayout = "2006-01-02"

// CreateInvoiceRequest body para POST /api/invoices y /api/invoices/preview.
type CreateInvoiceRequest struct {
	Order        OrderRequest `json:"order"`
	PaymentTerms string       `json:"payment_terms"`         // immediate|7_days|14_days|30_days|60_days|90_days
	SupplyDate   string       `json:"supply_date,omitempty"` // YYYY-MM-DD, opcional
}

// OrderRequest instantánea del pedido.
type OrderRequest struct {
	Number   string             `json:"number"`
	Customer entity.Customer    `json:"customer"`
	Items    []OrderItemRequest `json:"items"`
	Notes    string             `json:"notes,omitempty"`
}

// OrderItemRequest línea del pedido (producto, cantidad, precio unitario).
type OrderItemRequest struct {
	ProductRef string          `json:"product_ref"`
	Name       string          `json:"name,omitempty"`
	Unit       string          `json:"unit,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// ToOrder convierte la petición en la entidad de dominio.
func (r OrderRequest) ToOrder() entity.Order {
	o := entity.Order{Number: r.Number, Customer: r.Customer, Notes: r.Notes}
	for _, it := range r.Items {
		o.Items = append(o.Items, entity.OrderItem{
			ProductRef: it.ProductRef,
			Name:       it.Name,
			Unit:       it.Unit,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}
	return o
}

// UpdateStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// InvoiceResponse factura completa para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	OrderNumber  string          `json:"order_number,omitempty"`
	IssueDate    string          `json:"issue_date"`
	DueDate      string          `json:"due_date"`
	SupplyDate   string          `json:"supply_date,omitempty"`
	Status       string          `json:"status"`
	Overdue      bool            `json:"overdue"`
	PaymentTerms string          `json:"payment_terms"`
	Company      entity.Company  `json:"company"`
	Customer     entity.Customer `json:"customer"`

	Items []InvoiceItemResponse `json:"items"`

	Currency           entity.Currency `json:"currency"`
	SecondaryCurrency  entity.Currency `json:"secondary_currency"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	VATAmount          decimal.Decimal `json:"vat_amount"`
	Total              decimal.Decimal `json:"total"`
	SubtotalSecondary  decimal.Decimal `json:"subtotal_secondary"`
	VATAmountSecondary decimal.Decimal `json:"vat_amount_secondary"`
	TotalSecondary     decimal.Decimal `json:"total_secondary"`

	Notes     string    `json:"notes,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceItemResponse línea de la factura en la respuesta.
type InvoiceItemResponse struct {
	ID                 string          `json:"id"`
	ProductRef         string          `json:"product_ref,omitempty"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	Unit               string          `json:"unit"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	VATRate            decimal.Decimal `json:"vat_rate"`
	LineTotal          decimal.Decimal `json:"line_total"`
	VATAmount          decimal.Decimal `json:"vat_amount"`
	UnitPriceSecondary decimal.Decimal `json:"unit_price_secondary"`
	LineTotalSecondary decimal.Decimal `json:"line_total_secondary"`
	VATAmountSecondary decimal.Decimal `json:"vat_amount_secondary"`
}

// InvoiceSummary fila del listado.
type InvoiceSummary struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	IssueDate    string          `json:"issue_date"`
	DueDate      string          `json:"due_date"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Overdue      bool            `json:"overdue"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"currency"`
}

// InvoiceListResponse respuesta de GET /api/invoices.
type InvoiceListResponse struct {
	Items []InvoiceSummary `json:"items"`
	Page  PageResponse     `json:"page"`
}

// NewInvoiceResponse arma la respuesta. now decide el indicador de vencida.
func NewInvoiceResponse(inv *entity.Invoice, now time.Time) InvoiceResponse {
	r := InvoiceResponse{
		ID:                 inv.ID,
		Number:             inv.Number,
		OrderNumber:        inv.OrderNumber,
		IssueDate:          inv.IssueDate.Format(DateLayout),
		DueDate:            inv.DueDate.Format(DateLayout),
		Status:             string(inv.Status),
		Overdue:            inv.IsOverdue(now),
		PaymentTerms:       inv.PaymentTerms,
		Company:            inv.Company,
		Customer:           inv.Customer,
		Items:              make([]InvoiceItemResponse, 0, len(inv.Items)),
		Currency:           inv.Currency,
		SecondaryCurrency:  inv.SecondaryCurrency,
		ExchangeRate:       inv.ExchangeRate,
		Subtotal:           inv.Subtotal,
		VATAmount:          inv.VATAmount,
		Total:              inv.Total,
		SubtotalSecondary:  inv.SubtotalSecondary,
		VATAmountSecondary: inv.VATAmountSecondary,
		TotalSecondary:     inv.TotalSecondary,
		Notes:              inv.Notes,
		CreatedBy:          inv.CreatedBy,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
	}
	if inv.SupplyDate != nil {
		r.SupplyDate = inv.SupplyDate.Format(DateLayout)
	}
	for _, it := range inv.Items {
		r.Items = append(r.Items, InvoiceItemResponse{
			ID:                 it.ID,
			ProductRef:         it.ProductRef,
			Name:               it.Name,
			Description:        it.Description,
			Quantity:           it.Quantity,
			Unit:               it.Unit,
			UnitPrice:          it.UnitPrice,
			VATRate:            it.VATRate,
			LineTotal:          it.LineTotal,
			VATAmount:          it.VATAmount,
			UnitPriceSecondary: it.UnitPriceSecondary,
			LineTotalSecondary: it.LineTotalSecondary,
			VATAmountSecondary: it.VATAmountSecondary,
		})
	}
	return r
}

// NewInvoiceSummary fila del listado.
func NewInvoiceSummary(inv *entity.Invoice, now time.Time) InvoiceSummary {
	name := inv.Customer.Name
	if inv.Customer.CompanyName != "" {
		name = inv.Customer.CompanyName
	}
	return InvoiceSummary{
		ID:           inv.ID,
		Number:       inv.Number,
		IssueDate:    inv.IssueDate.Format(DateLayout),
		DueDate:      inv.DueDate.Format(DateLayout),
		CustomerName: name,
		Status:       string(inv.Status),
		Overdue:      inv.IsOverdue(now),
		Total:        inv.Total,
		Currency:     inv.Currency.Code,
	}
}
