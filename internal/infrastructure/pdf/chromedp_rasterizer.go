package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// Rasterizer convierte un documento HTML en una única imagen de alto completo.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string, widthPx int, scale float64) (image.Image, error)
}

// ChromeRasterizer rasteriza con Chromium headless vía chromedp.
type ChromeRasterizer struct {
	execPath string
	timeout  time.Duration
}

// NewChromeRasterizer construye el rasterizador. execPath vacío usa el Chromium del PATH.
func NewChromeRasterizer(execPath string, timeout time.Duration) *ChromeRasterizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromeRasterizer{execPath: execPath, timeout: timeout}
}

// Rasterize carga el HTML en una pestaña nueva y toma una captura de página completa.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, html string, widthPx int, scale float64) (image.Image, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var shot []byte
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(widthPx), 600, chromedp.EmulateScale(scale)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		// Espera a que las fuentes embebidas estén listas antes de capturar.
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("chromium: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("decodificar captura: %w", err)
	}
	return img, nil
}
