package pdf

import (
	"time"

	"github.com/jhoicas/facturador/internal/application/billing"
	"github.com/jhoicas/facturador/pkg/config"
	"github.com/jhoicas/facturador/pkg/logger"
)

// Options recursos y parámetros compartidos por los tres backends.
type Options struct {
	Assets        AssetConfig
	ChromiumPath  string
	RasterTimeout time.Duration
	RasterScale   float64
}

// OptionsFrom traduce la configuración de render.
func OptionsFrom(cfg config.RenderConfig) Options {
	return Options{
		Assets:        AssetConfig{FontRegular: cfg.FontRegular, FontBold: cfg.FontBold, LogoPath: cfg.LogoPath},
		ChromiumPath:  cfg.ChromiumPath,
		RasterTimeout: cfg.RasterTimeout,
		RasterScale:   cfg.RasterScale,
	}
}

var (
	_ billing.DocumentRenderer = (*StructuredRenderer)(nil)
	_ billing.DocumentRenderer = (*RasterRenderer)(nil)
	_ billing.DocumentRenderer = (*VectorRenderer)(nil)
)

// NewRenderers construye todos los backends. El orden en que se prueban lo
// decide el caso de uso de render, no esta lista.
func NewRenderers(opts Options, log *logger.Logger) []billing.DocumentRenderer {
	rasterizer := NewChromeRasterizer(opts.ChromiumPath, opts.RasterTimeout)
	return []billing.DocumentRenderer{
		NewStructuredRenderer(opts.Assets, log),
		NewRasterRenderer(rasterizer, opts.Assets, opts.RasterScale, log),
		NewVectorRenderer(opts.Assets, log),
	}
}
