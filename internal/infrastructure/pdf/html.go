package pdf

import (
	"bytes"
	"embed"
	"encoding/base64"
	"html/template"
	"math"
	"strconv"

	"github.com/jhoicas/facturador/internal/document"
)

//go:embed templates/invoice.html.tmpl
var templatesFS embed.FS

var invoiceTemplate = template.Must(template.New("invoice.html.tmpl").
	Funcs(template.FuncMap{
		"px":   func(mm float64) string { return "" },
		"pt":   func(size float64) string { return "" },
		"half": func(v float64) float64 { return v / 2 },
	}).
	ParseFS(templatesFS, "templates/invoice.html.tmpl"))

// cssDPI resolución CSS de referencia de Chromium.
const cssDPI = 96.0

// pageBox dimensiones enteras de una página en px CSS. La altura se redondea
// hacia arriba y el ancho se deriva con la misma escala, para que el corte de
// la captura caiga siempre en múltiplos exactos de la altura.
type pageBox struct {
	WidthPx  int
	HeightPx int
	PxPerMM  float64
}

func pageBoxFor(g document.Geometry) pageBox {
	h := int(math.Ceil(g.PageHeight * cssDPI / 25.4))
	k := float64(h) / g.PageHeight
	return pageBox{WidthPx: int(math.Round(g.PageWidth * k)), HeightPx: h, PxPerMM: k}
}

type htmlColumn struct {
	Title string
	Align string
	Width string
}

type htmlCell struct {
	Value  string
	Align  string
	Lines  []string
	Detail []string
}

type htmlRow struct {
	Height string
	Cells  []htmlCell
}

type htmlPage struct {
	Number      int
	First       bool
	TableHeader bool
	Closing     bool
	Rows        []htmlRow
	Label       string
}

type htmlView struct {
	C        *document.Content
	G        document.Geometry
	Pages    []htmlPage
	Parties  []document.Party
	Columns  []htmlColumn
	Sections []document.FooterSection

	PageWidthPx  int
	PageHeightPx int

	Logo        template.URL
	FontRegular template.URL
	FontBold    template.URL

	Primary, Gray, Rule, Black template.CSS
}

// buildHTML genera el marcado de todas las páginas del plan, cada una en una
// sección de altura fija.
func buildHTML(c *document.Content, plan *document.Plan, assets *Assets) (string, pageBox, error) {
	g := plan.Geometry
	box := pageBoxFor(g)
	px := func(mm float64) string { return strconv.FormatFloat(mm*box.PxPerMM, 'f', 2, 64) }

	v := htmlView{
		C:            c,
		G:            g,
		Parties:      []document.Party{trimParty(c.Issuer, g), trimParty(c.Recipient, g)},
		Sections:     plan.Closing.Sections,
		PageWidthPx:  box.WidthPx,
		PageHeightPx: box.HeightPx,
		Primary:      template.CSS(colorPrimary.css()),
		Gray:         template.CSS(colorGray.css()),
		Rule:         template.CSS(colorRule.css()),
		Black:        template.CSS(colorBlack.css()),
	}
	for i, title := range c.Columns {
		v.Columns = append(v.Columns, htmlColumn{Title: title, Align: columnAlign[i], Width: px(g.ColumnWidths[i])})
	}
	if assets != nil {
		if assets.HasLogo() {
			v.Logo = dataURL("image/"+mimeSubtype(assets.LogoType), assets.Logo)
		}
		if len(assets.FontRegular) > 0 {
			v.FontRegular = dataURL("font/ttf", assets.FontRegular)
			v.FontBold = dataURL("font/ttf", assets.FontBold)
		}
	}

	for _, pg := range plan.Pages {
		hp := htmlPage{
			Number:      pg.Number,
			First:       pg.First,
			TableHeader: pg.TableHeader,
			Closing:     pg.Closing,
			Label:       c.PageLabel(pg.Number, plan.PageCount()),
		}
		for _, i := range pg.Rows {
			rl := plan.Rows[i]
			hr := htmlRow{Height: px(rl.Height)}
			for col, value := range c.Rows[i].Cells {
				cell := htmlCell{Value: value, Align: columnAlign[col]}
				if col == document.ColDescription {
					cell.Lines, cell.Detail = rl.Lines, rl.Detail
				}
				hr.Cells = append(hr.Cells, cell)
			}
			hp.Rows = append(hp.Rows, hr)
		}
		v.Pages = append(v.Pages, hp)
	}

	tmpl, err := invoiceTemplate.Clone()
	if err != nil {
		return "", box, err
	}
	tmpl.Funcs(template.FuncMap{
		"px": px,
		"pt": func(size float64) string { return px(size * 25.4 / 72) },
	})
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", box, err
	}
	return buf.String(), box, nil
}

func trimParty(p document.Party, g document.Geometry) document.Party {
	p.Lines = firstN(p.Lines, partyMaxLines(g))
	return p
}

func dataURL(mime string, b []byte) template.URL {
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b))
}

func mimeSubtype(typ string) string {
	if typ == "jpg" {
		return "jpeg"
	}
	return typ
}
