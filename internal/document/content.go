// Package document define el contrato de contenido independiente del renderer.
//
// Build convierte una factura ensamblada en un Content con todos los textos ya
// formateados (cabecera, partes, tabla de 9 columnas, totales y pie). Los
// renderers solo dibujan estos textos: ninguno calcula ni re-deriva cifras.
// Paginate produce el plan de páginas compartido por todos los backends.
package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/facturador/internal/domain/entity"
)

// Columnas fijas de la tabla de líneas.
const (
	ColIndex = iota
	ColDescription
	ColQuantity
	ColUnit
	ColUnitPrice
	ColUnitPriceSecondary
	ColVATRate
	ColLineTotal
	ColLineTotalSecondary
	ColumnCount
)

// Field par etiqueta/valor.
type Field struct {
	Label string
	Value string
}

// Party bloque de una de las dos columnas de partes.
type Party struct {
	Title string
	Name  string
	Lines []string
}

// Row fila de la tabla. Detail es la descripción larga opcional, impresa bajo el nombre.
type Row struct {
	Cells  [ColumnCount]string
	Detail string
}

// TotalLine fila del bloque de totales.
type TotalLine struct {
	Label    string
	Value    string
	Emphasis bool
}

// Footer bloque de pie: notas, datos bancarios y condiciones de pago.
type Footer struct {
	NotesTitle string
	Notes      string
	BankTitle  string
	Bank       []string
	TermsTitle string
	Terms      string
}

// Content descripción completa y ya formateada de la factura.
type Content struct {
	Lang   string
	Labels Labels

	Title       string
	Number      string
	Meta        []Field
	CompanyName string
	LogoPath    string

	Issuer    Party
	Recipient Party

	Columns [ColumnCount]string
	Rows    []Row

	Totals       []TotalLine
	ExchangeNote string
	Footer       Footer

	// Metadatos del PDF. IssuedAt fija las fechas internas para que el documento
	// sea reproducible a partir del registro.
	Author   string
	Subject  string
	IssuedAt time.Time
}

// Build construye el contenido a partir de la factura. Solo formatea.
func Build(inv *entity.Invoice, lang string) (*Content, error) {
	if inv == nil {
		return nil, fmt.Errorf("document: factura nula")
	}
	l, err := LabelsFor(lang)
	if err != nil {
		return nil, err
	}
	nf := numberFormats[lang]
	native, secondary := inv.Currency, inv.SecondaryCurrency

	c := &Content{
		Lang:        lang,
		Labels:      l,
		Title:       l.Title,
		Number:      inv.Number,
		CompanyName: inv.Company.Name,
		LogoPath:    inv.Company.LogoPath,
		Author:      inv.Company.Name,
		Subject:     l.Title + " " + inv.Number,
		IssuedAt:    inv.IssueDate,
	}

	// ── Cabecera ──────────────────────────────────────────────────────────────
	c.Meta = []Field{
		{Label: l.Number, Value: inv.Number},
		{Label: l.IssueDate, Value: FormatDate(inv.IssueDate)},
		{Label: l.DueDate, Value: FormatDate(inv.DueDate)},
	}
	if inv.SupplyDate != nil {
		c.Meta = append(c.Meta, Field{Label: l.SupplyDate, Value: FormatDate(*inv.SupplyDate)})
	}
	if inv.OrderNumber != "" {
		c.Meta = append(c.Meta, Field{Label: l.Order, Value: inv.OrderNumber})
	}

	// ── Partes ────────────────────────────────────────────────────────────────
	co := inv.Company
	c.Issuer = Party{
		Title: l.Issuer,
		Name:  co.Name,
		Lines: compact(
			addressLine(co.Address),
			labeled(l.TaxID, co.TaxID),
			labeled(l.VATID, co.VATID),
			labeled(l.Phone, co.Phone),
			labeled(l.Email, co.Email),
			labeled(l.Website, co.Website),
		),
	}
	cu := inv.Customer
	c.Recipient = Party{
		Title: l.Recipient,
		Name:  cu.Name,
		Lines: compact(
			cu.CompanyName,
			addressLine(cu.Address),
			labeled(l.TaxID, cu.TaxID),
			labeled(l.VATID, cu.VATID),
			labeled(l.Phone, cu.Phone),
			labeled(l.Email, cu.Email),
		),
	}

	// ── Tabla ─────────────────────────────────────────────────────────────────
	c.Columns = [ColumnCount]string{
		ColIndex:              l.ColIndex,
		ColDescription:        l.ColDescription,
		ColQuantity:           l.ColQuantity,
		ColUnit:               l.ColUnit,
		ColUnitPrice:          fmt.Sprintf(l.ColUnitPrice, native.Code),
		ColUnitPriceSecondary: fmt.Sprintf(l.ColUnitPrice, secondary.Code),
		ColVATRate:            l.ColVATRate,
		ColLineTotal:          fmt.Sprintf(l.ColLineTotal, native.Code),
		ColLineTotalSecondary: fmt.Sprintf(l.ColLineTotal, secondary.Code),
	}
	c.Rows = make([]Row, 0, len(inv.Items))
	for i, it := range inv.Items {
		c.Rows = append(c.Rows, Row{
			Cells: [ColumnCount]string{
				ColIndex:              strconv.Itoa(i + 1),
				ColDescription:        it.Name,
				ColQuantity:           nf.FormatPlain(it.Quantity),
				ColUnit:               it.Unit,
				ColUnitPrice:          nf.FormatAmount(it.UnitPrice),
				ColUnitPriceSecondary: nf.FormatAmount(it.UnitPriceSecondary),
				ColVATRate:            nf.FormatPlain(it.VATRate) + "%",
				ColLineTotal:          nf.FormatAmount(it.LineTotal),
				ColLineTotalSecondary: nf.FormatAmount(it.LineTotalSecondary),
			},
			Detail: it.Description,
		})
	}

	// ── Totales ───────────────────────────────────────────────────────────────
	vatLabel := l.VAT
	if len(inv.Items) > 0 {
		vatLabel = fmt.Sprintf("%s %s%%", l.VAT, nf.FormatPlain(inv.Items[0].VATRate))
	}
	c.Totals = []TotalLine{
		{Label: l.Subtotal, Value: nf.FormatMoney(inv.Subtotal, native.Symbol)},
		{Label: vatLabel, Value: nf.FormatMoney(inv.VATAmount, native.Symbol)},
		{Label: l.Total, Value: nf.FormatMoney(inv.Total, native.Symbol), Emphasis: true},
		{Label: l.Total, Value: nf.FormatMoney(inv.TotalSecondary, secondary.Symbol), Emphasis: true},
	}
	c.ExchangeNote = fmt.Sprintf(l.ExchangeRate, native.Code, nf.FormatPlain(inv.ExchangeRate), secondary.Code)

	// ── Pie ───────────────────────────────────────────────────────────────────
	terms := l.TermNames[inv.PaymentTerms]
	if terms == "" {
		terms = inv.PaymentTerms
	}
	c.Footer = Footer{
		NotesTitle: l.Notes,
		Notes:      inv.Notes,
		BankTitle:  l.Bank,
		Bank: compact(
			labeled(l.BankName, co.Bank.BankName),
			labeled("IBAN", co.Bank.IBAN),
			labeled("BIC/SWIFT", co.Bank.SWIFT),
		),
		TermsTitle: l.Terms,
		Terms:      terms + ", " + fmt.Sprintf(l.DueBy, FormatDate(inv.DueDate)),
	}
	return c, nil
}

// PageLabel texto de numeración de página.
func (c *Content) PageLabel(page, total int) string {
	return fmt.Sprintf(c.Labels.Page, page, total)
}

// Texts devuelve, en orden de lectura, todos los textos de líneas y totales.
// Sirve para comparar la fidelidad entre backends.
func (c *Content) Texts() []string {
	var out []string
	for _, r := range c.Rows {
		out = append(out, r.Cells[:]...)
	}
	for _, t := range c.Totals {
		out = append(out, t.Value)
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func labeled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

func addressLine(a entity.Address) string {
	city := strings.TrimSpace(strings.Join(compact(a.PostalCode, a.City), " "))
	return strings.Join(compact(a.Street, city, a.Country), ", ")
}

func compact(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
