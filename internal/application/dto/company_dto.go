package dto

import "github.com/jhoicas/facturador/internal/domain/entity"

// UpsertCompanyRequest body para PUT /api/company: perfil del emisor que se
// congela en cada factura emitida.
type UpsertCompanyRequest struct {
	Name     string             `json:"name"`
	Address  entity.Address     `json:"address"`
	TaxID    string             `json:"tax_id"`
	VATID    string             `json:"vat_id,omitempty"`
	Phone    string             `json:"phone,omitempty"`
	Email    string             `json:"email,omitempty"`
	Website  string             `json:"website,omitempty"`
	Bank     entity.BankDetails `json:"bank"`
	LogoPath string             `json:"logo_path,omitempty"`
}

// ToCompany convierte la petición en la entidad con el id dado.
func (r UpsertCompanyRequest) ToCompany(id string) *entity.Company {
	return &entity.Company{
		ID:       id,
		Name:     r.Name,
		Address:  r.Address,
		TaxID:    r.TaxID,
		VATID:    r.VATID,
		Phone:    r.Phone,
		Email:    r.Email,
		Website:  r.Website,
		Bank:     r.Bank,
		LogoPath: r.LogoPath,
	}
}
