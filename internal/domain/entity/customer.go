package entity

// Customer pagador de la factura. Varios campos son opcionales.
type Customer struct {
	Name        string  `json:"name"`
	CompanyName string  `json:"company_name,omitempty"`
	Address     Address `json:"address"`
	TaxID       string  `json:"tax_id,omitempty"`
	VATID       string  `json:"vat_id,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Email       string  `json:"email,omitempty"`
}
