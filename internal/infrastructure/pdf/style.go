// Package pdf implementa las tres estrategias de representación gráfica de la
// factura sobre el mismo contenido y el mismo plan de páginas:
//
//	structured  maroto v2, fuentes TTF embebidas, texto seleccionable
//	raster      HTML -> Chromium headless -> PNG -> gofpdf, una imagen por página
//	vector      gofpdf con fuentes base y texto transliterado a Windows-1252
//
// Layout de cada página A4 (alturas en document.Geometry):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: logo o nombre  │  ФАКТУРА + número + fechas        │  (1ª página)
//	│  EMISOR                 │  RECEPTOR                         │  (1ª página)
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: № | Descripción | К-во | Мярка | BGN | EUR | ДДС... │  (se repite)
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES (4 filas + tipo de cambio)                         │  (nunca se parte)
//	│  PIE: notas / banco / condiciones de pago                   │
//	│                     Страница 1 от N                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/facturador/internal/document"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

type rgb struct{ R, G, B int }

var (
	colorPrimary = rgb{0, 70, 127}
	colorGray    = rgb{100, 100, 100}
	colorRule    = rgb{200, 200, 200}
	colorWhite   = rgb{255, 255, 255}
	colorBlack   = rgb{0, 0, 0}
)

func (c rgb) props() *props.Color { return &props.Color{Red: c.R, Green: c.G, Blue: c.B} }

func (c rgb) css() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// ── Tipografía ────────────────────────────────────────────────────────────────

const (
	sizeTitle     = 14.0
	sizeCompany   = 13.0
	sizePartyName = 10.0
	sizeText      = 8.0
	sizeTable     = 7.0
	sizeSmall     = 6.5
	sizeTotal     = 9.0
)

// columnAlign alineación de cada columna de la tabla: L, C o R.
var columnAlign = [document.ColumnCount]string{
	document.ColIndex:              "C",
	document.ColDescription:        "L",
	document.ColQuantity:           "R",
	document.ColUnit:               "C",
	document.ColUnitPrice:          "R",
	document.ColUnitPriceSecondary: "R",
	document.ColVATRate:            "C",
	document.ColLineTotal:          "R",
	document.ColLineTotalSecondary: "R",
}

// metaLineHeight separación entre los campos de la cabecera.
const metaLineHeight = 3.8

// partyLineHeight separación entre líneas de cada parte.
const partyLineHeight = 4.0

// partyMaxLines líneas que caben bajo el nombre en el bloque de partes.
func partyMaxLines(g document.Geometry) int {
	return int((g.PartiesHeight - 12) / partyLineHeight)
}

func firstN(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
