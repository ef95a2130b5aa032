package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo perfil del emisor guardado como JSONB.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para el emisor.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// GetByID obtiene el perfil; nil, nil si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, `SELECT profile FROM companies WHERE id = $1`, id).Scan(&c)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	c.ID = id
	return &c, nil
}

// Upsert crea o reemplaza el perfil.
func (r *CompanyRepo) Upsert(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, profile, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET profile = EXCLUDED.profile, updated_at = NOW()`
	if _, err := r.q.Exec(ctx, query, c.ID, c); err != nil {
		return writeError("upsert company", err)
	}
	return nil
}
