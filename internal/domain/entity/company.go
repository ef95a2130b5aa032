package entity

// Address dirección postal.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// BankDetails datos bancarios del emisor impresos en el pie.
type BankDetails struct {
	BankName string `json:"bank_name"`
	IBAN     string `json:"iban"`
	SWIFT    string `json:"swift"`
}

// Company perfil estático del emisor.
type Company struct {
	ID       string      `json:"id,omitempty"`
	Name     string      `json:"name"`
	Address  Address     `json:"address"`
	TaxID    string      `json:"tax_id"` // identificador fiscal nacional (ЕИК)
	VATID    string      `json:"vat_id"`
	Phone    string      `json:"phone,omitempty"`
	Email    string      `json:"email,omitempty"`
	Website  string      `json:"website,omitempty"`
	Bank     BankDetails `json:"bank"`
	LogoPath string      `json:"logo_path,omitempty"`
}
