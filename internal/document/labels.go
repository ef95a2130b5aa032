package document

import (
	"fmt"

	"github.com/jhoicas/facturador/internal/domain/invoicing"
)

// Idiomas admitidos por la representación gráfica.
const (
	LangBG = "bg"
	LangEN = "en"
)

// Labels textos fijos del documento en un idioma.
type Labels struct {
	Title      string
	Number     string
	IssueDate  string
	DueDate    string
	SupplyDate string
	Order      string

	Issuer    string
	Recipient string
	TaxID     string
	VATID     string
	Phone     string
	Email     string
	Website   string

	ColIndex       string
	ColDescription string
	ColQuantity    string
	ColUnit        string
	ColUnitPrice   string // %s = código de divisa
	ColVATRate     string
	ColLineTotal   string // %s = código de divisa

	Subtotal     string
	VAT          string
	Total        string
	ExchangeRate string // 1 %s = %s %s

	Notes    string
	Bank     string
	BankName string
	Terms    string
	DueBy    string // %s = fecha
	Page     string // %d de %d

	TermNames map[string]string
}

var labelSets = map[string]Labels{
	LangBG: {
		Title: "ФАКТУРА", Number: "Номер", IssueDate: "Дата на издаване", DueDate: "Падеж",
		SupplyDate: "Дата на данъчно събитие", Order: "Поръчка",
		Issuer: "Доставчик", Recipient: "Получател", TaxID: "ЕИК", VATID: "ДДС №",
		Phone: "Тел.", Email: "Имейл", Website: "Уеб",
		ColIndex: "№", ColDescription: "Описание", ColQuantity: "К-во", ColUnit: "Мярка",
		ColUnitPrice: "Ед. цена (%s)", ColVATRate: "ДДС %", ColLineTotal: "Стойност (%s)",
		Subtotal: "Данъчна основа", VAT: "ДДС", Total: "Сума за плащане",
		ExchangeRate: "Курс: 1 %s = %s %s",
		Notes: "Бележки", Bank: "Банкови данни", BankName: "Банка", Terms: "Условия на плащане",
		DueBy: "платимо до %s", Page: "Страница %d от %d",
		TermNames: map[string]string{
			invoicing.TermsImmediate: "веднага", invoicing.Terms7Days: "7 дни",
			invoicing.Terms14Days: "14 дни", invoicing.Terms30Days: "30 дни",
			invoicing.Terms60Days: "60 дни", invoicing.Terms90Days: "90 дни",
		},
	},
	LangEN: {
		Title: "INVOICE", Number: "Number", IssueDate: "Issue date", DueDate: "Due date",
		SupplyDate: "Supply date", Order: "Order",
		Issuer: "Supplier", Recipient: "Customer", TaxID: "Company ID", VATID: "VAT No.",
		Phone: "Phone", Email: "Email", Website: "Web",
		ColIndex: "#", ColDescription: "Description", ColQuantity: "Qty", ColUnit: "Unit",
		ColUnitPrice: "Unit price (%s)", ColVATRate: "VAT %", ColLineTotal: "Amount (%s)",
		Subtotal: "Subtotal", VAT: "VAT", Total: "Total due",
		ExchangeRate: "Exchange rate: 1 %s = %s %s",
		Notes: "Notes", Bank: "Bank details", BankName: "Bank", Terms: "Payment terms",
		DueBy: "payable by %s", Page: "Page %d of %d",
		TermNames: map[string]string{
			invoicing.TermsImmediate: "immediate", invoicing.Terms7Days: "7 days",
			invoicing.Terms14Days: "14 days", invoicing.Terms30Days: "30 days",
			invoicing.Terms60Days: "60 days", invoicing.Terms90Days: "90 days",
		},
	},
}

// LabelsFor devuelve los textos de un idioma.
func LabelsFor(lang string) (Labels, error) {
	l, ok := labelSets[lang]
	if !ok {
		return Labels{}, fmt.Errorf("document: idioma no soportado %q", lang)
	}
	return l, nil
}
