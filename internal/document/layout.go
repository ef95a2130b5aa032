package document

import (
	"fmt"
)

// Geometry métricas de página compartidas por todos los renderers (mm, A4).
// Cualquier backend que respete estas alturas produce la misma paginación.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	HeaderHeight       float64 // título y metadatos, primera página
	PartiesHeight      float64 // emisor y receptor, primera página
	ContinuationHeight float64 // franja de título en páginas siguientes
	TableHeaderHeight  float64
	PageNumberHeight   float64 // franja inferior reservada

	LineHeight       float64
	RowPadding       float64
	DescriptionChars int

	TotalsRowHeight    float64
	ExchangeNoteHeight float64
	FooterGap          float64
	FooterTitleHeight  float64
	FooterLineHeight   float64
	FooterChars        int

	ColumnWidths [ColumnCount]float64
}

// DefaultGeometry A4 vertical con márgenes de 10 mm.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:    210,
		PageHeight:   297,
		MarginTop:    10,
		MarginBottom: 10,
		MarginLeft:   10,
		MarginRight:  10,

		HeaderHeight:       28,
		PartiesHeight:      42,
		ContinuationHeight: 12,
		TableHeaderHeight:  10,
		PageNumberHeight:   6,

		LineHeight:       4.5,
		RowPadding:       2,
		DescriptionChars: 30,

		TotalsRowHeight:    6,
		ExchangeNoteHeight: 6,
		FooterGap:          4,
		FooterTitleHeight:  5,
		FooterLineHeight:   4.5,
		FooterChars:        110,

		ColumnWidths: [ColumnCount]float64{8, 52, 14, 14, 20, 20, 12, 25, 25},
	}
}

// ContentWidth ancho útil entre márgenes.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// UsableHeight alto disponible para bloques, descontada la franja de numeración.
func (g Geometry) UsableHeight() float64 {
	return g.PageHeight - g.MarginTop - g.MarginBottom - g.PageNumberHeight
}

// RowLayout fila de la tabla con el texto ya partido en líneas.
type RowLayout struct {
	Index  int
	Lines  []string // nombre
	Detail []string // descripción larga
	Height float64
}

// FooterSection sección del pie con sus líneas ya partidas.
type FooterSection struct {
	Title string
	Lines []string
}

// ClosingLayout bloque de totales + pie, que nunca se parte entre páginas.
type ClosingLayout struct {
	Sections []FooterSection
	Height   float64
}

// Page una página del plan.
type Page struct {
	Number      int
	First       bool  // lleva cabecera completa y partes
	TableHeader bool  // repite la cabecera de la tabla
	Rows        []int // índices en Plan.Rows
	Closing     bool  // lleva totales y pie
	Used        float64
}

// Plan paginación completa de un documento.
type Plan struct {
	Geometry Geometry
	Rows     []RowLayout
	Closing  ClosingLayout
	Pages    []Page
}

// PageCount número total de páginas.
func (p *Plan) PageCount() int { return len(p.Pages) }

// Paginate reparte el contenido en páginas:
//   - la primera página lleva cabecera y partes; las siguientes una franja de título
//   - cada página con filas repite la cabecera de la tabla
//   - totales y pie van juntos; si no caben, pasan completos a una página nueva
//
// Una fila o un bloque de cierre más alto que una página es un error de layout.
func Paginate(c *Content, g Geometry) (*Plan, error) {
	if c == nil {
		return nil, fmt.Errorf("document: contenido nulo")
	}
	usable := g.UsableHeight()
	plan := &Plan{Geometry: g, Rows: make([]RowLayout, len(c.Rows))}

	for i, r := range c.Rows {
		rl := RowLayout{
			Index:  i,
			Lines:  Wrap(r.Cells[ColDescription], g.DescriptionChars),
			Detail: Wrap(r.Detail, g.DescriptionChars),
		}
		n := len(rl.Lines) + len(rl.Detail)
		if n == 0 {
			n = 1
		}
		rl.Height = g.RowPadding + float64(n)*g.LineHeight
		if g.ContinuationHeight+g.TableHeaderHeight+rl.Height > usable {
			return nil, fmt.Errorf("document: la línea %d no cabe en una página (%.1f mm)", i+1, rl.Height)
		}
		plan.Rows[i] = rl
	}
	plan.Closing = closingLayout(c, g)
	if g.ContinuationHeight+plan.Closing.Height > usable {
		return nil, fmt.Errorf("document: el bloque de totales no cabe en una página (%.1f mm)", plan.Closing.Height)
	}

	cur := Page{Number: 1, First: true, Used: g.HeaderHeight + g.PartiesHeight}
	if cur.Used > usable {
		return nil, fmt.Errorf("document: la cabecera no cabe en la página")
	}
	newPage := func() {
		plan.Pages = append(plan.Pages, cur)
		cur = Page{Number: len(plan.Pages) + 1, Used: g.ContinuationHeight}
	}

	for i, rl := range plan.Rows {
		need := rl.Height
		if !cur.TableHeader {
			need += g.TableHeaderHeight
		}
		if cur.Used+need > usable {
			newPage()
			need = g.TableHeaderHeight + rl.Height
		}
		if !cur.TableHeader {
			cur.TableHeader = true
		}
		cur.Rows = append(cur.Rows, i)
		cur.Used += need
	}

	if cur.Used+plan.Closing.Height > usable {
		newPage()
	}
	cur.Closing = true
	cur.Used += plan.Closing.Height
	plan.Pages = append(plan.Pages, cur)
	return plan, nil
}

func closingLayout(c *Content, g Geometry) ClosingLayout {
	cl := ClosingLayout{}
	add := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		cl.Sections = append(cl.Sections, FooterSection{Title: title, Lines: lines})
	}
	f := c.Footer
	add(f.NotesTitle, Wrap(f.Notes, g.FooterChars))
	var bank []string
	for _, l := range f.Bank {
		bank = append(bank, Wrap(l, g.FooterChars)...)
	}
	add(f.BankTitle, bank)
	add(f.TermsTitle, Wrap(f.Terms, g.FooterChars))

	cl.Height = float64(len(c.Totals))*g.TotalsRowHeight + g.ExchangeNoteHeight + g.FooterGap
	for _, s := range cl.Sections {
		cl.Height += g.FooterTitleHeight + float64(len(s.Lines))*g.FooterLineHeight
	}
	return cl
}
