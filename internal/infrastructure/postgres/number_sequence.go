package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturador/internal/domain/repository"
)

var _ repository.NumberSequence = (*NumberSequence)(nil)

// NumberSequence contador diario en la tabla invoice_sequences.
type NumberSequence struct {
	q Querier
}

// NewNumberSequence construye el adaptador. Debe usarse con una tx para que el
// consecutivo se libere si la emisión falla.
func NewNumberSequence(q Querier) *NumberSequence {
	return &NumberSequence{q: q}
}

// Next incrementa de forma atómica el contador del día y devuelve el nuevo valor.
func (s *NumberSequence) Next(ctx context.Context, day time.Time) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (day, last_number)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET last_number = invoice_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	if err := s.q.QueryRow(ctx, query, d).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return n, nil
}
