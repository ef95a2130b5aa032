package pdf_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/document"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/infrastructure/pdf"
	"github.com/jhoicas/facturador/pkg/logger"
)

func TestStructuredRenderer_PaginasDelPlan(t *testing.T) {
	requireFont(t)
	for _, items := range []int{1, 19, 70} {
		c, plan := contentAndPlan(t, items)
		r := pdf.NewStructuredRenderer(pdf.AssetConfig{FontRegular: dejaVuRegular, FontBold: dejaVuBold}, logger.Nop())

		out, err := r.Render(context.Background(), c, plan)
		require.NoError(t, err, "%d líneas", items)
		assert.Equal(t, plan.PageCount(), pageCount(t, out), "%d líneas", items)
	}
}

func TestStructuredRenderer_SinFuenteFallaSinBytes(t *testing.T) {
	c, plan := contentAndPlan(t, 1)
	r := pdf.NewStructuredRenderer(pdf.AssetConfig{FontRegular: "/no/existe/font.ttf"}, logger.Nop())

	out, err := r.Render(context.Background(), c, plan)
	assert.Nil(t, out)
	var rerr *domain.RenderError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, document.StrategyStructured, rerr.Strategy)
	assert.Equal(t, "recursos", rerr.Op)
}

func TestStructuredRenderer_LogoAusenteNoAborta(t *testing.T) {
	requireFont(t)
	c, plan := contentAndPlan(t, 1)
	r := pdf.NewStructuredRenderer(pdf.AssetConfig{
		FontRegular: dejaVuRegular,
		FontBold:    dejaVuBold,
		LogoPath:    "/no/existe/logo.png",
	}, logger.Nop())

	out, err := r.Render(context.Background(), c, plan)
	require.NoError(t, err)
	assert.Equal(t, 1, pageCount(t, out))
}

func TestStructuredRenderer_TextoRecuperable(t *testing.T) {
	requireFont(t)
	c, plan := contentAndPlan(t, 3)
	r := pdf.NewStructuredRenderer(pdf.AssetConfig{FontRegular: dejaVuRegular, FontBold: dejaVuBold}, logger.Nop())

	out, err := r.Render(context.Background(), c, plan)
	require.NoError(t, err)
	pages := pageContents(t, out)
	require.Len(t, pages, plan.PageCount())
	all := strings.Join(pages, "\n")

	for _, s := range c.Texts() {
		if s == "" {
			continue
		}
		assert.Contains(t, all, utf16Literal(s), s)
	}
	assert.Contains(t, all, utf16Literal("Иван Петров"))
}

func TestStructuredRenderer_CabeceraDeTablaEnCadaPagina(t *testing.T) {
	requireFont(t)
	c, plan := contentAndPlan(t, 70)
	require.Greater(t, plan.PageCount(), 1)
	r := pdf.NewStructuredRenderer(pdf.AssetConfig{FontRegular: dejaVuRegular, FontBold: dejaVuBold}, logger.Nop())

	out, err := r.Render(context.Background(), c, plan)
	require.NoError(t, err)
	pages := pageContents(t, out)
	require.Len(t, pages, plan.PageCount())

	header := utf16Literal(c.Columns[document.ColDescription])
	for i, pg := range plan.Pages {
		if pg.TableHeader {
			assert.Contains(t, pages[i], header, "página %d", pg.Number)
		}
		for _, ri := range pg.Rows {
			assert.Contains(t, pages[i], utf16Literal(plan.Rows[ri].Lines[0]), "página %d", pg.Number)
		}
	}
	last := pages[len(pages)-1]
	assert.Contains(t, last, utf16Literal(c.PageLabel(plan.PageCount(), plan.PageCount())))
}
