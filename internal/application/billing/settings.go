package billing

import (
	"fmt"

	"github.com/jhoicas/facturador/internal/document"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/pkg/config"
	"github.com/jhoicas/facturador/pkg/money"
)

// AssemblyConfigFrom traduce la configuración de la jurisdicción.
func AssemblyConfigFrom(cfg config.InvoiceConfig) (AssemblyConfig, error) {
	loc, err := cfg.Location()
	if err != nil {
		return AssemblyConfig{}, fmt.Errorf("zona horaria %q: %w", cfg.Timezone, err)
	}
	if err := money.CheckScale("INVOICE_EXCHANGE_RATE", cfg.ExchangeRate, money.RateScale); err != nil {
		return AssemblyConfig{}, err
	}
	return AssemblyConfig{
		VATRate:           cfg.VATRate,
		ExchangeRate:      cfg.ExchangeRate,
		Currency:          entity.Currency{Code: cfg.NativeCurrency, Symbol: cfg.NativeSymbol},
		SecondaryCurrency: entity.Currency{Code: cfg.SecondaryCurrency, Symbol: cfg.SecondarySymbol},
		Location:          loc,
	}, nil
}

// RenderConfigFrom idioma y orden de estrategias configurados.
func RenderConfigFrom(inv config.InvoiceConfig, r config.RenderConfig) (RenderConfig, error) {
	order, err := document.Order(r.Strategy, r.Fallback)
	if err != nil {
		return RenderConfig{}, err
	}
	if _, err := document.LabelsFor(inv.Language); err != nil {
		return RenderConfig{}, err
	}
	return RenderConfig{Language: inv.Language, Fallback: order, Geometry: document.DefaultGeometry()}, nil
}

// CompanyFrom perfil del emisor definido en configuración.
func CompanyFrom(c config.CompanyConfig) entity.Company {
	return entity.Company{
		ID:   c.ID,
		Name: c.Name,
		Address: entity.Address{
			Street:     c.Street,
			City:       c.City,
			PostalCode: c.PostalCode,
			Country:    c.Country,
		},
		TaxID:   c.TaxID,
		VATID:   c.VATID,
		Phone:   c.Phone,
		Email:   c.Email,
		Website: c.Website,
		Bank: entity.BankDetails{
			BankName: c.BankName,
			IBAN:     c.IBAN,
			SWIFT:    c.SWIFT,
		},
		LogoPath: c.LogoPath,
	}
}
