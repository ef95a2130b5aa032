package pdf

import (
	"context"
	"math"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/facturador/internal/document"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/pkg/logger"
)

// fontFamily nombre con el que se registran las fuentes TTF en maroto.
const fontFamily = "invoice"

// spacerSlack holgura para que el relleno no empuje la numeración a otra página.
const spacerSlack = 0.5

// StructuredRenderer construye un árbol de páginas con maroto v2 y fuentes TTF
// embebidas. Mejor fidelidad y menor tamaño; exige una fuente con cirílico.
type StructuredRenderer struct {
	assets AssetConfig
	log    *logger.Logger
}

// NewStructuredRenderer construye el renderer.
func NewStructuredRenderer(assets AssetConfig, log *logger.Logger) *StructuredRenderer {
	return &StructuredRenderer{assets: assets, log: log}
}

// Strategy implementa billing.DocumentRenderer.
func (r *StructuredRenderer) Strategy() string { return document.StrategyStructured }

// Render genera el PDF con una página de maroto por cada página del plan.
func (r *StructuredRenderer) Render(ctx context.Context, c *document.Content, plan *document.Plan) ([]byte, error) {
	fail := func(op string, err error) ([]byte, error) {
		return nil, domain.NewRenderError(document.StrategyStructured, op, err)
	}

	assets, err := loadAssets(ctx, r.assets, c.LogoPath, true, r.log)
	if err != nil {
		return fail("recursos", err)
	}
	if err := checkCoverage(assets.FontRegular, c); err != nil {
		return fail("fuente", err)
	}
	fonts, err := repository.New().
		AddUTF8FontFromBytes(fontFamily, fontstyle.Normal, assets.FontRegular).
		AddUTF8FontFromBytes(fontFamily, fontstyle.Bold, assets.FontBold).
		Load()
	if err != nil {
		return fail("fuente", err)
	}

	g := plan.Geometry
	cfg := config.NewBuilder().
		WithDimensions(g.PageWidth, g.PageHeight).
		WithLeftMargin(g.MarginLeft).WithRightMargin(g.MarginRight).
		WithTopMargin(g.MarginTop).WithBottomMargin(g.MarginBottom).
		WithMaxGridSize(int(math.Round(g.ContentWidth()))).
		WithCustomFonts(fonts).
		WithDefaultFont(&props.Font{Family: fontFamily, Size: sizeText}).
		WithTitle(c.Subject, true).
		WithAuthor(c.Author, true).
		WithSubject(c.Subject, true).
		WithCreator("facturador", true).
		WithCreationDate(c.IssuedAt).
		Build()

	m := maroto.New(cfg)
	b := &marotoBuilder{c: c, plan: plan, g: g, assets: assets}
	for _, pg := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return fail("cancelado", err)
		}
		m.AddPages(b.page(pg))
	}

	doc, err := m.Generate()
	if err != nil {
		return fail("generar documento", err)
	}
	out := doc.GetBytes()
	if err := Verify(out, plan.PageCount()); err != nil {
		return fail("verificación", err)
	}
	return out, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

type marotoBuilder struct {
	c      *document.Content
	plan   *document.Plan
	g      document.Geometry
	assets *Assets
}

func (b *marotoBuilder) grid(mm float64) int { return int(math.Round(mm)) }

func (b *marotoBuilder) page(pg document.Page) core.Page {
	var rows []core.Row
	if pg.First {
		rows = append(rows, b.headerRow(), line.NewRow(1, props.Line{Color: colorPrimary.props(), Thickness: 0.5}))
		rows = append(rows, b.partiesRow())
	} else {
		rows = append(rows, b.continuationRow())
	}
	if pg.TableHeader {
		rows = append(rows, b.tableHeaderRow())
	}
	for _, i := range pg.Rows {
		rows = append(rows, b.detailRow(b.c.Rows[i], b.plan.Rows[i]))
	}
	if pg.Closing {
		rows = append(rows, b.totalsRows()...)
		rows = append(rows, b.footerRows()...)
	}
	if spacer := b.g.UsableHeight() - pg.Used - spacerSlack; spacer > 0 {
		rows = append(rows, row.New(spacer))
	}
	rows = append(rows, b.pageNumberRow(pg.Number))
	return page.New().Add(rows...)
}

// headerRow: logo o razón social (izq) y título, número y fechas (der).
func (b *marotoBuilder) headerRow() core.Row {
	half := b.grid(b.g.ContentWidth() / 2)
	left := col.New(half)
	if b.assets.HasLogo() {
		ext := extension.Png
		if b.assets.LogoType == "jpg" {
			ext = extension.Jpg
		}
		left.Add(image.NewFromBytes(b.assets.Logo, ext, props.Rect{Percent: 80, Top: 1}))
	} else {
		left.Add(text.New(b.c.CompanyName, props.Text{
			Style: fontstyle.Bold, Size: sizeCompany, Color: colorPrimary.props(), Top: 2,
		}))
	}

	right := col.New(b.grid(b.g.ContentWidth()) - half).Add(
		text.New(b.c.Title, props.Text{
			Style: fontstyle.Bold, Size: sizeTitle, Align: align.Right, Color: colorPrimary.props(),
		}),
	)
	for i, m := range b.c.Meta {
		style := fontstyle.Normal
		if i == 0 {
			style = fontstyle.Bold
		}
		right.Add(text.New(m.Label+": "+m.Value, props.Text{
			Style: style, Size: sizeText, Align: align.Right, Top: 8 + float64(i)*metaLineHeight,
		}))
	}
	return row.New(b.g.HeaderHeight - 1).Add(left, right)
}

// partiesRow: emisor y receptor en dos columnas.
func (b *marotoBuilder) partiesRow() core.Row {
	half := b.grid(b.g.ContentWidth() / 2)
	party := func(p document.Party, size int) core.Col {
		c := col.New(size).Add(
			text.New(p.Title, props.Text{Style: fontstyle.Bold, Size: sizeText, Color: colorPrimary.props(), Top: 1}),
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: sizePartyName, Top: 6}),
		)
		for j, l := range firstN(p.Lines, partyMaxLines(b.g)) {
			c.Add(text.New(l, props.Text{Size: sizeText, Color: colorGray.props(), Top: 12 + float64(j)*partyLineHeight}))
		}
		return c
	}
	return row.New(b.g.PartiesHeight).Add(
		party(b.c.Issuer, half),
		party(b.c.Recipient, b.grid(b.g.ContentWidth())-half),
	)
}

// continuationRow: franja de título en las páginas siguientes.
func (b *marotoBuilder) continuationRow() core.Row {
	return row.New(b.g.ContinuationHeight).Add(col.New(b.grid(b.g.ContentWidth())).Add(
		text.New(b.c.Title+" "+b.c.Number, props.Text{
			Style: fontstyle.Bold, Size: sizeText + 2, Color: colorPrimary.props(), Top: 1,
		}),
	))
}

// tableHeaderRow: cabecera de la tabla con fondo de color.
func (b *marotoBuilder) tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, document.ColumnCount)
	for i, title := range b.c.Columns {
		cols = append(cols, col.New(b.grid(b.g.ColumnWidths[i])).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: sizeSmall, Align: alignOf(columnAlign[i]),
			Color: colorWhite.props(), Top: 2, Left: 0.5, Right: 0.5,
		})))
	}
	return row.New(b.g.TableHeaderHeight).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary.props()})
}

// detailRow: una fila por línea de la factura.
func (b *marotoBuilder) detailRow(r document.Row, rl document.RowLayout) core.Row {
	top := b.g.RowPadding / 2
	cols := make([]core.Col, 0, document.ColumnCount)
	for i, v := range r.Cells {
		c := col.New(b.grid(b.g.ColumnWidths[i]))
		if i == document.ColDescription {
			for j, l := range rl.Lines {
				c.Add(text.New(l, props.Text{Size: sizeTable, Top: top + float64(j)*b.g.LineHeight, Left: 0.5}))
			}
			for j, l := range rl.Detail {
				c.Add(text.New(l, props.Text{
					Size: sizeSmall, Color: colorGray.props(), Left: 0.5,
					Top: top + float64(len(rl.Lines)+j)*b.g.LineHeight,
				}))
			}
		} else {
			c.Add(text.New(v, props.Text{
				Size: sizeTable, Align: alignOf(columnAlign[i]), Top: top, Left: 0.5, Right: 0.5,
			}))
		}
		cols = append(cols, c)
	}
	return row.New(rl.Height).Add(cols...).WithStyle(&props.Cell{
		BorderType:      border.Bottom,
		BorderColor:     colorRule.props(),
		BorderThickness: 0.2,
	})
}

// totalsRows: 4 filas alineadas a la derecha + nota de tipo de cambio.
func (b *marotoBuilder) totalsRows() []core.Row {
	width := b.grid(b.g.ContentWidth())
	rows := make([]core.Row, 0, len(b.c.Totals)+1)
	for _, t := range b.c.Totals {
		style := fontstyle.Normal
		color := colorBlack
		if t.Emphasis {
			style, color = fontstyle.Bold, colorPrimary
		}
		rows = append(rows, row.New(b.g.TotalsRowHeight).Add(
			col.New(width-110),
			col.New(65).Add(text.New(t.Label+":", props.Text{
				Style: fontstyle.Bold, Size: sizeTotal, Align: align.Right, Color: color.props(), Right: 2, Top: 1,
			})),
			col.New(45).Add(text.New(t.Value, props.Text{
				Style: style, Size: sizeTotal, Align: align.Right, Color: color.props(), Top: 1,
			})),
		))
	}
	rows = append(rows, row.New(b.g.ExchangeNoteHeight).Add(col.New(width).Add(
		text.New(b.c.ExchangeNote, props.Text{Size: sizeSmall, Align: align.Right, Color: colorGray.props(), Top: 1}),
	)))
	return rows
}

// footerRows: notas, banco y condiciones de pago.
func (b *marotoBuilder) footerRows() []core.Row {
	width := b.grid(b.g.ContentWidth())
	rows := []core.Row{line.NewRow(b.g.FooterGap, props.Line{Color: colorRule.props(), Thickness: 0.3})}
	for _, s := range b.plan.Closing.Sections {
		rows = append(rows, row.New(b.g.FooterTitleHeight).Add(col.New(width).Add(
			text.New(s.Title, props.Text{Style: fontstyle.Bold, Size: sizeText, Color: colorPrimary.props(), Top: 1}),
		)))
		for _, l := range s.Lines {
			rows = append(rows, row.New(b.g.FooterLineHeight).Add(col.New(width).Add(
				text.New(l, props.Text{Size: sizeText, Color: colorGray.props()}),
			)))
		}
	}
	return rows
}

func (b *marotoBuilder) pageNumberRow(n int) core.Row {
	return row.New(b.g.PageNumberHeight).Add(col.New(b.grid(b.g.ContentWidth())).Add(
		text.New(b.c.PageLabel(n, b.plan.PageCount()), props.Text{
			Size: sizeSmall, Align: align.Center, Color: colorGray.props(), Top: 1,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func alignOf(a string) align.Type {
	switch a {
	case "C":
		return align.Center
	case "R":
		return align.Right
	default:
		return align.Left
	}
}
