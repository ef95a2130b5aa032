package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/application/billing"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/infrastructure/memory"
	"github.com/jhoicas/facturador/pkg/logger"
)

func TestChangeStatus(t *testing.T) {
	store := storeWithInvoice(t)
	uc := billing.NewInvoiceUseCase(store, logger.Nop())
	ctx := context.Background()

	inv, err := uc.ChangeStatus(ctx, "inv-1", "sent")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSent, inv.Status)

	_, err = uc.ChangeStatus(ctx, "inv-1", "draft")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.ChangeStatus(ctx, "inv-1", "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ChangeStatus(ctx, "nope", "paid")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := uc.Get(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSent, stored.Status)
	assert.Equal(t, "61.20", stored.Items[0].LineTotal.Add(stored.Items[0].VATAmount).StringFixed(2))
}

// readBarrier retiene cada lectura hasta que todas las solicitudes leyeron, así
// ambas ven el mismo estado de partida antes de escribir.
type readBarrier struct {
	*memory.InvoiceStore
	wg *sync.WaitGroup
}

func (r readBarrier) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := r.InvoiceStore.GetByID(ctx, id)
	r.wg.Done()
	r.wg.Wait()
	return inv, err
}

func TestChangeStatus_ConcurrentesSoloUnaGana(t *testing.T) {
	store := storeWithInvoice(t)
	ctx := context.Background()
	_, err := billing.NewInvoiceUseCase(store, logger.Nop()).ChangeStatus(ctx, "inv-1", "sent")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	uc := billing.NewInvoiceUseCase(readBarrier{InvoiceStore: store, wg: &wg}, logger.Nop())

	targets := []string{"paid", "cancelled"}
	errs := make([]error, len(targets))
	var done sync.WaitGroup
	for i, to := range targets {
		done.Add(1)
		go func(i int, to string) {
			defer done.Done()
			_, errs[i] = uc.ChangeStatus(ctx, "inv-1", to)
		}(i, to)
	}
	done.Wait()

	var winner string
	conflicts := 0
	for i, err := range errs {
		switch {
		case err == nil:
			winner = targets[i]
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	require.NotEmpty(t, winner)
	assert.Equal(t, 1, conflicts)

	stored, err := store.GetByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatus(winner), stored.Status)
}
