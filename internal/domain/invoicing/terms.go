// Package invoicing contiene los servicios puros del motor de facturación:
// condiciones de pago y vencimiento, numeración, totales con IVA en dos divisas y
// la validación estructural de la factura. Nada de este paquete hace E/S.
package invoicing

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/facturador/internal/domain"
)

// Códigos de condiciones de pago (conjunto cerrado).
const (
	TermsImmediate = "immediate"
	Terms7Days     = "7_days"
	Terms14Days    = "14_days"
	Terms30Days    = "30_days"
	Terms60Days    = "60_days"
	Terms90Days    = "90_days"
)

var termOffsets = map[string]int{
	TermsImmediate: 0,
	Terms7Days:     7,
	Terms14Days:    14,
	Terms30Days:    30,
	Terms60Days:    60,
	Terms90Days:    90,
}

// TermDays devuelve el desfase en días de un código de condiciones de pago.
func TermDays(code string) (int, error) {
	days, ok := termOffsets[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentTerms, code)
	}
	return days, nil
}

// IsKnownTerms informa si el código pertenece al conjunto cerrado.
func IsKnownTerms(code string) bool {
	_, ok := termOffsets[code]
	return ok
}

// TermCodes lista los códigos ordenados por plazo.
func TermCodes() []string {
	codes := make([]string, 0, len(termOffsets))
	for c := range termOffsets {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return termOffsets[codes[i]] < termOffsets[codes[j]] })
	return codes
}

// DueDate calcula la fecha de vencimiento a partir de la fecha de emisión.
// Un código desconocido falla con ErrInvalidPaymentTerms; no hay plazo por defecto.
func DueDate(issueDate time.Time, code string) (time.Time, error) {
	days, err := TermDays(code)
	if err != nil {
		return time.Time{}, err
	}
	return issueDate.AddDate(0, 0, days), nil
}
