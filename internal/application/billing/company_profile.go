package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/repository"
	"github.com/jhoicas/facturador/pkg/logger"
)

// CompanyProfileUseCase lee y actualiza el perfil del emisor. Las facturas ya
// emitidas guardan su propia copia y no se ven afectadas.
type CompanyProfileUseCase struct {
	repo      repository.CompanyRepository
	companyID string
	log       *logger.Logger
}

// NewCompanyProfileUseCase construye el caso de uso.
func NewCompanyProfileUseCase(repo repository.CompanyRepository, companyID string, log *logger.Logger) *CompanyProfileUseCase {
	return &CompanyProfileUseCase{repo: repo, companyID: companyID, log: log}
}

// Get devuelve el perfil actual o domain.ErrNotFound.
func (uc *CompanyProfileUseCase) Get(ctx context.Context) (*entity.Company, error) {
	c, err := uc.repo.GetByID(ctx, uc.companyID)
	if err != nil {
		return nil, fmt.Errorf("company: obtener perfil: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Update valida y reemplaza el perfil.
func (uc *CompanyProfileUseCase) Update(ctx context.Context, in dto.UpsertCompanyRequest) (*entity.Company, error) {
	c := in.ToCompany(uc.companyID)
	if err := validateCompany(c); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("company: guardar perfil: %w", err)
	}
	uc.log.Info().Str("company_id", c.ID).Str("tax_id", c.TaxID).Msg("perfil del emisor actualizado")
	return c, nil
}

// Seed guarda el perfil configurado solo si el almacén aún no tiene uno.
func (uc *CompanyProfileUseCase) Seed(ctx context.Context, c entity.Company) error {
	if strings.TrimSpace(c.Name) == "" {
		return nil
	}
	existing, err := uc.repo.GetByID(ctx, uc.companyID)
	if err != nil {
		return fmt.Errorf("company: obtener perfil: %w", err)
	}
	if existing != nil {
		return nil
	}
	c.ID = uc.companyID
	if err := validateCompany(&c); err != nil {
		return err
	}
	return uc.repo.Upsert(ctx, &c)
}

func validateCompany(c *entity.Company) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		verr.Add("name", "is required")
	}
	if strings.TrimSpace(c.TaxID) == "" {
		verr.Add("tax_id", "is required")
	}
	if strings.TrimSpace(c.Address.Street) == "" {
		verr.Add("address.street", "is required")
	}
	if strings.TrimSpace(c.Address.City) == "" {
		verr.Add("address.city", "is required")
	}
	return verr.OrNil()
}
