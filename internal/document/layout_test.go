package document_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/document"
	"github.com/jhoicas/facturador/internal/document/doctest"
)

func plan(t *testing.T, items int) *document.Plan {
	t.Helper()
	c, err := document.Build(doctest.Invoice(items), document.LangBG)
	require.NoError(t, err)
	p, err := document.Paginate(c, document.DefaultGeometry())
	require.NoError(t, err)
	return p
}

func TestPaginate_UnaPagina(t *testing.T) {
	p := plan(t, 3)
	require.Equal(t, 1, p.PageCount())
	pg := p.Pages[0]
	assert.True(t, pg.First)
	assert.True(t, pg.TableHeader)
	assert.True(t, pg.Closing)
	assert.Equal(t, []int{0, 1, 2}, pg.Rows)
}

func TestPaginate_RepiteCabeceraYNoParteElCierre(t *testing.T) {
	p := plan(t, 60)
	require.Greater(t, p.PageCount(), 1)

	usable := p.Geometry.UsableHeight()
	seen := 0
	closing := 0
	for i, pg := range p.Pages {
		assert.Equal(t, i+1, pg.Number)
		assert.Equal(t, i == 0, pg.First)
		if len(pg.Rows) > 0 {
			assert.True(t, pg.TableHeader, "página %d sin cabecera de tabla", pg.Number)
		}
		for _, r := range pg.Rows {
			assert.Equal(t, seen, r, "las filas deben seguir el orden original")
			seen++
		}
		if pg.Closing {
			closing++
		}
		assert.LessOrEqual(t, pg.Used, usable)
	}
	assert.Equal(t, 60, seen)
	assert.Equal(t, 1, closing)
	assert.True(t, p.Pages[len(p.Pages)-1].Closing)
}

// Cuando el cierre no cabe tras la última fila pasa entero a una página nueva.
func TestPaginate_CierreEnPaginaNueva(t *testing.T) {
	g := document.DefaultGeometry()
	for n := 1; n < 80; n++ {
		c, err := document.Build(doctest.Invoice(n), document.LangBG)
		require.NoError(t, err)
		p, err := document.Paginate(c, g)
		require.NoError(t, err)
		last := p.Pages[len(p.Pages)-1]
		if len(last.Rows) == 0 {
			assert.False(t, last.TableHeader)
			assert.True(t, last.Closing)
			assert.InDelta(t, g.ContinuationHeight+p.Closing.Height, last.Used, 0.001)
			return
		}
	}
	t.Fatal("ningún tamaño de factura dejó el cierre solo en la última página")
}

func TestPaginate_FilaDemasiadoAlta(t *testing.T) {
	c, err := document.Build(doctest.Invoice(1), document.LangBG)
	require.NoError(t, err)
	c.Rows[0].Detail = strings.Repeat("дълго описание ", 2000)
	_, err = document.Paginate(c, document.DefaultGeometry())
	assert.Error(t, err)
}

func TestPaginate_Determinista(t *testing.T) {
	assert.Equal(t, plan(t, 45), plan(t, 45))
}
