package repository

import (
	"context"
	"time"
)

// NumberSequence fuente externa del contador diario de facturas. Next debe
// incrementar de forma atómica entre llamadas concurrentes y devolver 1 para la
// primera factura del día. El motor no guarda estado de numeración propio.
type NumberSequence interface {
	Next(ctx context.Context, day time.Time) (int64, error)
}
