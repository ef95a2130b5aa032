package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/facturador/internal/domain"
)

// SQLSTATE usados por los repositorios.
const (
	sqlstateUniqueViolation = "23505"
	sqlstateCheckViolation  = "23514"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == sqlstateUniqueViolation
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// writeError traduce errores de escritura a errores de dominio. op prefija
// cualquier otro error.
func writeError(op string, err error) error {
	pgErr, ok := pgError(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pgErr.Code {
	case sqlstateUniqueViolation:
		return fmt.Errorf("%w: %s (%s)", domain.ErrDuplicate, op, pgErr.ConstraintName)
	case sqlstateCheckViolation:
		return fmt.Errorf("%w: %s (%s)", domain.ErrConflict, op, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// text mapea "" a NULL.
func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
