package pdf_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/document"
	"github.com/jhoicas/facturador/internal/document/doctest"
)

const (
	dejaVuRegular = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	dejaVuBold    = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
)

func contentAndPlan(t *testing.T, items int) (*document.Content, *document.Plan) {
	t.Helper()
	c, err := document.Build(doctest.Invoice(items), document.LangBG)
	require.NoError(t, err)
	p, err := document.Paginate(c, document.DefaultGeometry())
	require.NoError(t, err)
	return c, p
}

func pageCount(t *testing.T, doc []byte) int {
	t.Helper()
	n, err := api.PageCount(bytes.NewReader(doc), nil)
	require.NoError(t, err)
	return n
}

func requireFont(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(dejaVuRegular); err != nil {
		t.Skip("DejaVu Sans no instalada")
	}
}

// pageContents extrae el flujo de contenido de cada página, ya descomprimido.
func pageContents(t *testing.T, doc []byte) []string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, api.ExtractContent(bytes.NewReader(doc), dir, "factura", nil, nil))
	n := pageCount(t, doc)
	out := make([]string, n)
	for i := range out {
		b, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("factura_Content_page_%d.txt", i+1)))
		require.NoError(t, err)
		out[i] = string(b)
	}
	return out
}

// utf16Literal codifica s como lo escribe gofpdf con fuentes TTF: UTF-16BE sin
// BOM y con los delimitadores de cadena escapados.
func utf16Literal(s string) string {
	var b strings.Builder
	for _, u := range utf16.Encode([]rune(s)) {
		for _, c := range []byte{byte(u >> 8), byte(u)} {
			switch c {
			case '\\', '(', ')':
				b.WriteByte('\\')
				b.WriteByte(c)
			case '\r':
				b.WriteString(`\r`)
			default:
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}
