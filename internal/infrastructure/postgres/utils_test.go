package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturador/internal/domain"
)

func TestWriteError(t *testing.T) {
	unique := fmt.Errorf("exec: %w", &pgconn.PgError{Code: sqlstateUniqueViolation, ConstraintName: "invoices_number_key"})
	check := &pgconn.PgError{Code: sqlstateCheckViolation, ConstraintName: "invoices_status_check"}
	other := errors.New("conexión cerrada")

	assert.ErrorIs(t, writeError("insert invoice", unique), domain.ErrDuplicate)
	assert.Contains(t, writeError("insert invoice", unique).Error(), "invoices_number_key")
	assert.ErrorIs(t, writeError("update invoice status", check), domain.ErrConflict)
	assert.ErrorIs(t, writeError("upsert company", other), other)
	assert.NotErrorIs(t, writeError("upsert company", other), domain.ErrDuplicate)
	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(other))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("x")))
}

func TestText(t *testing.T) {
	assert.False(t, text("").Valid)
	v := text("PO-7")
	assert.True(t, v.Valid)
	assert.Equal(t, "PO-7", v.String)
}
