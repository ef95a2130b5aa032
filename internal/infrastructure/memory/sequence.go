// Package memory implementa los puertos de numeración y catálogo en proceso.
// Se usa en la CLI y en las previsualizaciones; el servicio HTTP usa postgres.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/facturador/internal/domain/repository"
)

var _ repository.NumberSequence = (*DailySequence)(nil)

// DailySequence contador por día protegido por mutex.
type DailySequence struct {
	mu   sync.Mutex
	last map[string]int64
}

// NewDailySequence construye el contador vacío.
func NewDailySequence() *DailySequence {
	return &DailySequence{last: make(map[string]int64)}
}

// Next incrementa y devuelve el contador del día (1 para la primera llamada).
func (s *DailySequence) Next(ctx context.Context, day time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	key := day.Format("2006-01-02")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[key]++
	return s.last[key], nil
}
