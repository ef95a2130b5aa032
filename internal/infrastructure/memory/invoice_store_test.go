package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/infrastructure/memory"
)

func TestInvoiceStore_UpdateStatusComparaEstado(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)
	store := memory.NewInvoiceStore()
	require.NoError(t, store.Create(ctx, &entity.Invoice{ID: "a", Number: "20240315001", Status: entity.StatusSent}))

	require.NoError(t, store.UpdateStatus(ctx, "a", entity.StatusSent, entity.StatusPaid, now))

	err := store.UpdateStatus(ctx, "a", entity.StatusSent, entity.StatusCancelled, now)
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = store.UpdateStatus(ctx, "b", entity.StatusSent, entity.StatusPaid, now)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := store.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, got.Status)
	assert.Equal(t, now, got.UpdatedAt)
}
