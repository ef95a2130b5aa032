package invoicing

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/repository"
)

// MaxDailySequence límite del desambiguador de 3 dígitos.
const MaxDailySequence = 999

// numberLayout prefijo de fecha del número de factura.
const numberLayout = "20060102"

var numberPattern = regexp.MustCompile(`^\d{11}$`)

// GenerateInvoiceNumber produce un número YYYYMMDDnnn (11 dígitos) tomando el
// siguiente valor del contador del día de emisión.
func GenerateInvoiceNumber(ctx context.Context, seq repository.NumberSequence, issueDate time.Time) (string, error) {
	if seq == nil {
		return "", fmt.Errorf("numbering: sequence no configurada")
	}
	n, err := seq.Next(ctx, issueDate)
	if err != nil {
		return "", fmt.Errorf("numbering: siguiente consecutivo: %w", err)
	}
	return FormatInvoiceNumber(issueDate, n)
}

// FormatInvoiceNumber compone el número a partir de la fecha y el consecutivo.
func FormatInvoiceNumber(issueDate time.Time, n int64) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("numbering: consecutivo inválido %d", n)
	}
	if n > MaxDailySequence {
		return "", fmt.Errorf("%w: %s", domain.ErrSequenceExhausted, issueDate.Format(numberLayout))
	}
	return fmt.Sprintf("%s%03d", issueDate.Format(numberLayout), n), nil
}

// IsValidInvoiceNumber valida el formato (11 dígitos con fecha real al inicio).
func IsValidInvoiceNumber(number string) bool {
	if !numberPattern.MatchString(number) {
		return false
	}
	if _, err := time.Parse(numberLayout, number[:8]); err != nil {
		return false
	}
	return number[8:] != "000"
}
