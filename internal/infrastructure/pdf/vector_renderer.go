package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/jhoicas/facturador/internal/document"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/pkg/logger"
)

// VectorRenderer dibuja el documento con primitivas de gofpdf y las fuentes
// base del PDF. No necesita recursos externos, por eso es el último recurso
// de la cadena; a cambio el texto se translitera a Windows-1252.
type VectorRenderer struct {
	assets   AssetConfig
	log      *logger.Logger
	compress bool
}

// NewVectorRenderer construye el renderer. Solo usa el logo de assets.
func NewVectorRenderer(assets AssetConfig, log *logger.Logger) *VectorRenderer {
	return &VectorRenderer{assets: assets, log: log, compress: true}
}

// WithoutCompression deja los streams sin comprimir (útil para inspeccionar el texto).
func (r *VectorRenderer) WithoutCompression() *VectorRenderer {
	cp := *r
	cp.compress = false
	return &cp
}

// Strategy implementa billing.DocumentRenderer.
func (r *VectorRenderer) Strategy() string { return document.StrategyVector }

// Render genera el PDF página a página siguiendo el plan.
func (r *VectorRenderer) Render(ctx context.Context, c *document.Content, plan *document.Plan) ([]byte, error) {
	fail := func(op string, err error) ([]byte, error) {
		return nil, domain.NewRenderError(document.StrategyVector, op, err)
	}

	assets, err := loadAssets(ctx, r.assets, c.LogoPath, false, r.log)
	if err != nil {
		return fail("recursos", err)
	}

	g := plan.Geometry
	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	f.SetMargins(g.MarginLeft, g.MarginTop, g.MarginRight)
	f.SetAutoPageBreak(false, g.MarginBottom)
	f.SetCompression(r.compress)
	f.SetCatalogSort(true)
	f.SetCreationDate(c.IssuedAt)
	f.SetModificationDate(c.IssuedAt)
	f.SetTitle(c.Subject, true)
	f.SetAuthor(c.Author, true)
	f.SetSubject(c.Subject, true)
	f.SetCreator("facturador", false)

	tr := f.UnicodeTranslatorFromDescriptor("")
	d := &vectorPage{f: f, g: g, c: c, plan: plan, txt: func(s string) string { return tr(Transliterate(s)) }}

	if assets.HasLogo() {
		opts := gofpdf.ImageOptions{ImageType: assets.LogoType}
		f.RegisterImageOptionsReader("logo", opts, bytes.NewReader(assets.Logo))
		if f.Err() {
			r.log.Warn().Err(f.Error()).Msg("pdf: logo ilegible, se usa texto")
			f.ClearError()
		} else {
			d.logo = true
		}
	}

	for _, pg := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return fail("cancelado", err)
		}
		d.draw(pg)
		if f.Err() {
			return fail(fmt.Sprintf("página %d", pg.Number), f.Error())
		}
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return fail("salida", err)
	}
	if err := Verify(buf.Bytes(), plan.PageCount()); err != nil {
		return fail("verificación", err)
	}
	return buf.Bytes(), nil
}

// ── Dibujo ────────────────────────────────────────────────────────────────────

type vectorPage struct {
	f    *gofpdf.Fpdf
	g    document.Geometry
	c    *document.Content
	plan *document.Plan
	txt  func(string) string
	logo bool
}

func (d *vectorPage) font(style string, size float64, color rgb) {
	d.f.SetFont("Helvetica", style, size)
	d.f.SetTextColor(color.R, color.G, color.B)
}

// cell escribe s en una celda de ancho w. La transliteración alarga el texto
// (щ -> sht), así que si no cabe se reduce el cuerpo solo para esta celda.
func (d *vectorPage) cell(x, y, w, h float64, s, align string) {
	t := d.txt(s)
	pt, _ := d.f.GetFontSize()
	if fit := fitSize(d.f, t, w); fit < pt {
		d.f.SetFontSize(fit)
		defer d.f.SetFontSize(pt)
	}
	d.f.SetXY(x, y)
	d.f.CellFormat(w, h, t, "", 0, align, false, 0, "")
}

// fitSize cuerpo en puntos con el que s, más los márgenes de celda, ocupa
// como mucho w; nunca supera el actual.
func fitSize(f *gofpdf.Fpdf, s string, w float64) float64 {
	pt, _ := f.GetFontSize()
	sw := f.GetStringWidth(s)
	w -= 2 * f.GetCellMargin()
	if w <= 0 || sw <= w {
		return pt
	}
	return pt * w / sw * 0.999
}

func (d *vectorPage) rule(y float64, color rgb, width float64) {
	d.f.SetDrawColor(color.R, color.G, color.B)
	d.f.SetLineWidth(width)
	d.f.Line(d.g.MarginLeft, y, d.g.PageWidth-d.g.MarginRight, y)
}

func (d *vectorPage) draw(pg document.Page) {
	d.f.AddPage()
	y := d.g.MarginTop
	if pg.First {
		d.header(y)
		y += d.g.HeaderHeight
		d.parties(y)
		y += d.g.PartiesHeight
	} else {
		d.continuation(y)
		y += d.g.ContinuationHeight
	}
	if pg.TableHeader {
		d.tableHeader(y)
		y += d.g.TableHeaderHeight
	}
	for _, i := range pg.Rows {
		rl := d.plan.Rows[i]
		d.row(y, d.c.Rows[i], rl)
		y += rl.Height
	}
	if pg.Closing {
		d.closing(y)
	}
	d.pageNumber(pg.Number)
}

// header: logo o razón social (izq) y título, número y fechas (der).
func (d *vectorPage) header(y float64) {
	g := d.g
	half := g.ContentWidth() / 2
	if d.logo {
		d.f.ImageOptions("logo", g.MarginLeft, y+1, 0, g.HeaderHeight-8, false, gofpdf.ImageOptions{}, 0, "")
	} else {
		d.font("B", sizeCompany, colorPrimary)
		d.cell(g.MarginLeft, y+2, half, 7, d.c.CompanyName, "L")
	}

	x := g.MarginLeft + half
	d.font("B", sizeTitle, colorPrimary)
	d.cell(x, y, half, 7, d.c.Title, "R")
	for i, m := range d.c.Meta {
		style := ""
		if i == 0 {
			style = "B"
		}
		d.font(style, sizeText, colorBlack)
		d.cell(x, y+8+float64(i)*metaLineHeight, half, metaLineHeight, m.Label+": "+m.Value, "R")
	}
	d.rule(y+g.HeaderHeight-1, colorPrimary, 0.5)
}

// parties: emisor y receptor en dos columnas.
func (d *vectorPage) parties(y float64) {
	g := d.g
	half := g.ContentWidth() / 2
	for i, p := range []document.Party{d.c.Issuer, d.c.Recipient} {
		x := g.MarginLeft + float64(i)*half
		d.font("B", sizeText, colorPrimary)
		d.cell(x, y+1, half, 4, p.Title, "L")
		d.font("B", sizePartyName, colorBlack)
		d.cell(x, y+6, half, 5, p.Name, "L")
		d.font("", sizeText, colorGray)
		for j, l := range firstN(p.Lines, partyMaxLines(g)) {
			d.cell(x, y+12+float64(j)*partyLineHeight, half, partyLineHeight, l, "L")
		}
	}
}

// continuation: franja de título en las páginas siguientes.
func (d *vectorPage) continuation(y float64) {
	g := d.g
	d.font("B", sizeText+2, colorPrimary)
	d.cell(g.MarginLeft, y+1, g.ContentWidth(), 6, d.c.Title+" "+d.c.Number, "L")
	d.rule(y+g.ContinuationHeight-2, colorPrimary, 0.3)
}

func (d *vectorPage) tableHeader(y float64) {
	g := d.g
	d.f.SetFillColor(colorPrimary.R, colorPrimary.G, colorPrimary.B)
	d.f.Rect(g.MarginLeft, y, g.ContentWidth(), g.TableHeaderHeight-1, "F")
	d.font("B", sizeSmall, colorWhite)
	x := g.MarginLeft
	for i, title := range d.c.Columns {
		w := g.ColumnWidths[i]
		d.cell(x+0.5, y, w-1, g.TableHeaderHeight-1, title, columnAlign[i])
		x += w
	}
}

func (d *vectorPage) row(y float64, row document.Row, rl document.RowLayout) {
	g := d.g
	top := y + g.RowPadding/2
	x := g.MarginLeft
	for i, v := range row.Cells {
		w := g.ColumnWidths[i]
		if i == document.ColDescription {
			d.font("", sizeTable, colorBlack)
			for j, l := range rl.Lines {
				d.cell(x+0.5, top+float64(j)*g.LineHeight, w-1, g.LineHeight, l, "L")
			}
			d.font("", sizeSmall, colorGray)
			for j, l := range rl.Detail {
				d.cell(x+0.5, top+float64(len(rl.Lines)+j)*g.LineHeight, w-1, g.LineHeight, l, "L")
			}
		} else {
			d.font("", sizeTable, colorBlack)
			d.cell(x+0.5, top, w-1, g.LineHeight, v, columnAlign[i])
		}
		x += w
	}
	d.rule(y+rl.Height, colorRule, 0.2)
}

// closing: totales alineados a la derecha, tipo de cambio y pie.
func (d *vectorPage) closing(y float64) {
	g := d.g
	right := g.PageWidth - g.MarginRight
	for _, t := range d.c.Totals {
		color := colorBlack
		style := ""
		if t.Emphasis {
			color, style = colorPrimary, "B"
		}
		d.font("B", sizeTotal, color)
		d.cell(right-110, y, 65, g.TotalsRowHeight, t.Label+":", "R")
		d.font(style, sizeTotal, color)
		d.cell(right-45, y, 45, g.TotalsRowHeight, t.Value, "R")
		y += g.TotalsRowHeight
	}
	d.font("", sizeSmall, colorGray)
	d.cell(right-110, y, 110, g.ExchangeNoteHeight, d.c.ExchangeNote, "R")
	y += g.ExchangeNoteHeight + g.FooterGap

	d.rule(y-g.FooterGap/2, colorRule, 0.3)
	for _, s := range d.plan.Closing.Sections {
		d.font("B", sizeText, colorPrimary)
		d.cell(g.MarginLeft, y, g.ContentWidth(), g.FooterTitleHeight, s.Title, "L")
		y += g.FooterTitleHeight
		d.font("", sizeText, colorGray)
		for _, l := range s.Lines {
			d.cell(g.MarginLeft, y, g.ContentWidth(), g.FooterLineHeight, l, "L")
			y += g.FooterLineHeight
		}
	}
}

func (d *vectorPage) pageNumber(n int) {
	g := d.g
	d.font("", sizeSmall, colorGray)
	d.cell(g.MarginLeft, g.PageHeight-g.MarginBottom-g.PageNumberHeight+1, g.ContentWidth(), g.PageNumberHeight-1,
		d.c.PageLabel(n, d.plan.PageCount()), "C")
}
