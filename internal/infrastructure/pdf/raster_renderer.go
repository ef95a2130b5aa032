package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/image/draw"

	"github.com/jhoicas/facturador/internal/document"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/pkg/logger"
)

// RasterRenderer rasteriza el HTML de la factura y embebe una imagen por página.
// El texto del resultado no es seleccionable.
type RasterRenderer struct {
	rasterizer Rasterizer
	assets     AssetConfig
	scale      float64
	log        *logger.Logger
}

// NewRasterRenderer construye el renderer. scale es el factor de píxeles por px CSS.
func NewRasterRenderer(rasterizer Rasterizer, assets AssetConfig, scale float64, log *logger.Logger) *RasterRenderer {
	if scale <= 0 {
		scale = 2
	}
	return &RasterRenderer{rasterizer: rasterizer, assets: assets, scale: scale, log: log}
}

// Strategy implementa billing.DocumentRenderer.
func (r *RasterRenderer) Strategy() string { return document.StrategyRaster }

// Render genera el HTML, lo rasteriza y corta la captura en páginas.
func (r *RasterRenderer) Render(ctx context.Context, c *document.Content, plan *document.Plan) ([]byte, error) {
	fail := func(op string, err error) ([]byte, error) {
		return nil, domain.NewRenderError(document.StrategyRaster, op, err)
	}
	if r.rasterizer == nil {
		return fail("rasterizador", fmt.Errorf("no configurado"))
	}

	// La fuente se embebe siempre: no se depende de las del sistema de Chromium.
	assets, err := loadAssets(ctx, r.assets, c.LogoPath, true, r.log)
	if err != nil {
		return fail("recursos", err)
	}
	if err := checkCoverage(assets.FontRegular, c); err != nil {
		return fail("fuente", err)
	}
	html, box, err := buildHTML(c, plan, assets)
	if err != nil {
		return fail("html", err)
	}
	full, err := r.rasterizer.Rasterize(ctx, html, box.WidthPx, r.scale)
	if err != nil {
		return fail("rasterizar", err)
	}

	// Normaliza la captura al tamaño esperado antes de cortar.
	wantW := int(float64(box.WidthPx) * r.scale)
	pageH := int(float64(box.HeightPx) * r.scale)
	full = normalizeWidth(full, wantW)

	pages, err := SlicePages(full, pageH, plan.PageCount())
	if err != nil {
		return fail("paginar", err)
	}

	g := plan.Geometry
	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	f.SetAutoPageBreak(false, 0)
	f.SetCatalogSort(true)
	f.SetCreationDate(c.IssuedAt)
	f.SetModificationDate(c.IssuedAt)
	f.SetTitle(c.Subject, true)
	f.SetAuthor(c.Author, true)
	f.SetCreator("facturador", false)

	for i, img := range pages {
		if err := ctx.Err(); err != nil {
			return fail("cancelado", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fail(fmt.Sprintf("página %d", i+1), err)
		}
		name := fmt.Sprintf("page-%03d", i+1)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		f.RegisterImageOptionsReader(name, opts, &buf)
		f.AddPage()
		f.ImageOptions(name, 0, 0, g.PageWidth, g.PageHeight, false, opts, 0, "")
		if f.Err() {
			return fail(fmt.Sprintf("página %d", i+1), f.Error())
		}
	}

	var out bytes.Buffer
	if err := f.Output(&out); err != nil {
		return fail("salida", err)
	}
	if err := Verify(out.Bytes(), plan.PageCount()); err != nil {
		return fail("verificación", err)
	}
	return out.Bytes(), nil
}

// SlicePages corta una captura de alto completo en pages imágenes de pageH
// píxeles. Los cortes caen en múltiplos exactos de pageH, sin solape: la fila
// de píxeles y pertenece solo a la página y/pageH. Una captura más corta que
// el plan es un error; el sobrante tras la última página se descarta.
func SlicePages(full image.Image, pageH, pages int) ([]image.Image, error) {
	if pageH <= 0 || pages <= 0 {
		return nil, fmt.Errorf("alto de página %d o número de páginas %d inválido", pageH, pages)
	}
	b := full.Bounds()
	if b.Dy() < pageH*pages {
		return nil, fmt.Errorf("captura de %d px, se esperaban %d páginas de %d px", b.Dy(), pages, pageH)
	}
	out := make([]image.Image, 0, pages)
	for i := 0; i < pages; i++ {
		src := image.Rect(b.Min.X, b.Min.Y+i*pageH, b.Max.X, b.Min.Y+(i+1)*pageH)
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), pageH))
		draw.Copy(dst, image.Point{}, full, src, draw.Src, nil)
		out = append(out, dst)
	}
	return out, nil
}

// normalizeWidth escala la imagen si el ancho no coincide con el esperado,
// conservando la proporción.
func normalizeWidth(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() == width || b.Dx() == 0 {
		return img
	}
	height := b.Dy() * width / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
