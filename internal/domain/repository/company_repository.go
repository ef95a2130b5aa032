package repository

import (
	"context"

	"github.com/jhoicas/facturador/internal/domain/entity"
)

// CompanyRepository define el puerto para el perfil del emisor (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	Upsert(ctx context.Context, company *entity.Company) error
}
