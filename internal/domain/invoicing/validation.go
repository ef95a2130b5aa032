package invoicing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/pkg/money"
)

// Mensajes de violación expuestos al cliente (contrato de la API).
const (
	MsgItemsRequired        = "at least one item required"
	MsgCustomerNameRequired = "customer name required"
	MsgStreetRequired       = "customer street required"
	MsgCityRequired         = "customer city required"
	MsgUnknownTerms         = "unrecognized payment terms"
	MsgQuantityPositive     = "quantity must be positive"
	MsgPriceNonNegative     = "unit price must not be negative"
	MsgPriceScale           = "unit price must have at most 2 decimal places"
	MsgQuantityScale        = "quantity must have at most 3 decimal places"
	MsgRateScale            = "exchange rate must have at most 6 decimal places"
	MsgVATRateUnsupported   = "vat rate must be one of 0, 9, 20"
	MsgNameRequired         = "item name required"
	MsgNumberFormat         = "invoice number must be 11 digits (YYYYMMDDnnn)"
	MsgDueBeforeIssue       = "due date must not precede issue date"
	MsgDueMismatch          = "due date does not match payment terms"
	MsgTotalsMismatch       = "totals do not match line items"
)

// VATRates tasas de IVA admitidas por la jurisdicción (porcentaje).
var VATRates = []decimal.Decimal{decimal.NewFromInt(0), decimal.NewFromInt(9), decimal.NewFromInt(20)}

// IsSupportedVATRate informa si la tasa pertenece al conjunto cerrado.
func IsSupportedVATRate(rate decimal.Decimal) bool {
	for _, r := range VATRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// ValidateOrder revisa la instantánea del pedido antes de consumir un número.
// Devuelve todas las violaciones a la vez.
func ValidateOrder(order entity.Order, paymentTerms string) error {
	verr := &domain.ValidationError{}
	validateCustomer(verr, order.Customer)
	if !IsKnownTerms(paymentTerms) {
		verr.Add("payment_terms", MsgUnknownTerms)
	}
	if len(order.Items) == 0 {
		verr.Add("items", MsgItemsRequired)
	}
	for i, it := range order.Items {
		field := fmt.Sprintf("items[%d]", i)
		if !it.Quantity.IsPositive() {
			verr.Add(field+".quantity", MsgQuantityPositive)
		}
		if it.UnitPrice.IsNegative() {
			verr.Add(field+".unit_price", MsgPriceNonNegative)
		}
		validateScales(verr, field, it.Quantity, it.UnitPrice)
	}
	return verr.OrNil()
}

// validateScales: el registro guardado debe reproducir los mismos importes, así
// que no se aceptan decimales que el almacenamiento tendría que redondear.
func validateScales(verr *domain.ValidationError, field string, qty, price decimal.Decimal) {
	if !money.FitsScale(qty, money.QuantityScale) {
		verr.Add(field+".quantity", MsgQuantityScale)
	}
	if !money.FitsScale(price, money.Scale) {
		verr.Add(field+".unit_price", MsgPriceScale)
	}
}

// ValidateInvoice valida la factura ensamblada: campos obligatorios, formato del
// número, coherencia de fechas con las condiciones de pago y de los totales con las líneas.
func ValidateInvoice(inv *entity.Invoice) error {
	if inv == nil {
		return &domain.ValidationError{Violations: []domain.Violation{{Message: "invoice is nil"}}}
	}
	verr := &domain.ValidationError{}
	validateCustomer(verr, inv.Customer)

	if !IsValidInvoiceNumber(inv.Number) {
		verr.Add("number", MsgNumberFormat)
	}
	if due, err := DueDate(inv.IssueDate, inv.PaymentTerms); err != nil {
		verr.Add("payment_terms", MsgUnknownTerms)
	} else {
		if inv.DueDate.Before(inv.IssueDate) {
			verr.Add("due_date", MsgDueBeforeIssue)
		}
		if !inv.DueDate.Equal(due) {
			verr.Add("due_date", MsgDueMismatch)
		}
	}

	if len(inv.Items) == 0 {
		verr.Add("items", MsgItemsRequired)
	}
	for i, it := range inv.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(it.Name) == "" {
			verr.Add(field+".name", MsgNameRequired)
		}
		if !it.Quantity.IsPositive() {
			verr.Add(field+".quantity", MsgQuantityPositive)
		}
		if it.UnitPrice.IsNegative() {
			verr.Add(field+".unit_price", MsgPriceNonNegative)
		}
		if !IsSupportedVATRate(it.VATRate) {
			verr.Add(field+".vat_rate", MsgVATRateUnsupported)
		}
		validateScales(verr, field, it.Quantity, it.UnitPrice)
	}
	if !money.FitsScale(inv.ExchangeRate, money.RateScale) {
		verr.Add("exchange_rate", MsgRateScale)
	}

	// Totales coherentes con las líneas (solo si las líneas son calculables).
	if len(verr.Violations) == 0 {
		_, t, err := Calculate(inv.Items, inv.ExchangeRate)
		if err != nil {
			verr.Add("items", err.Error())
		} else if !t.Subtotal.Equal(inv.Subtotal) || !t.VATAmount.Equal(inv.VATAmount) || !t.Total.Equal(inv.Total) ||
			!t.TotalSecondary.Equal(inv.TotalSecondary) {
			verr.Add("totals", MsgTotalsMismatch)
		}
	}
	return verr.OrNil()
}

func validateCustomer(verr *domain.ValidationError, c entity.Customer) {
	if strings.TrimSpace(c.Name) == "" {
		verr.Add("customer.name", MsgCustomerNameRequired)
	}
	if strings.TrimSpace(c.Address.Street) == "" {
		verr.Add("customer.address.street", MsgStreetRequired)
	}
	if strings.TrimSpace(c.Address.City) == "" {
		verr.Add("customer.address.city", MsgCityRequired)
	}
}
