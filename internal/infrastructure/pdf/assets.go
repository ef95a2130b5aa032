package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/facturador/pkg/logger"
)

// AssetConfig rutas de los recursos externos del documento.
type AssetConfig struct {
	FontRegular string // TTF con cobertura cirílica
	FontBold    string
	LogoPath    string
}

// Assets recursos ya cargados en memoria.
type Assets struct {
	FontRegular []byte
	FontBold    []byte
	Logo        []byte // nil -> se imprime el nombre de la empresa
	LogoType    string // png | jpg
}

// HasLogo informa si hay logo utilizable.
func (a *Assets) HasLogo() bool { return a != nil && len(a.Logo) > 0 }

// loadAssets lee en paralelo fuentes y logo. Las fuentes son obligatorias cuando
// withFonts es true: sin ellas el texto no es legible y se falla de inmediato.
// El logo es opcional: un fallo se registra y se sigue sin él.
func loadAssets(ctx context.Context, cfg AssetConfig, logoPath string, withFonts bool, log *logger.Logger) (*Assets, error) {
	a := &Assets{}
	g, gctx := errgroup.WithContext(ctx)

	if withFonts {
		g.Go(func() error {
			b, err := readAsset(gctx, cfg.FontRegular)
			if err != nil {
				return fmt.Errorf("fuente regular: %w", err)
			}
			a.FontRegular = b
			return nil
		})
		g.Go(func() error {
			path := cfg.FontBold
			if path == "" {
				path = cfg.FontRegular
			}
			b, err := readAsset(gctx, path)
			if err != nil {
				return fmt.Errorf("fuente negrita: %w", err)
			}
			a.FontBold = b
			return nil
		})
	}

	if logoPath == "" {
		logoPath = cfg.LogoPath
	}
	if logoPath != "" {
		g.Go(func() error {
			typ, ok := imageType(logoPath)
			if !ok {
				log.Warn().Str("path", logoPath).Msg("pdf: formato de logo no soportado, se usa texto")
				return nil
			}
			b, err := readAsset(gctx, logoPath)
			if err != nil {
				log.Warn().Err(err).Str("path", logoPath).Msg("pdf: logo no disponible, se usa texto")
				return nil
			}
			a.Logo, a.LogoType = b, typ
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return a, nil
}

func readAsset(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("ruta vacía")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%s: archivo vacío", path)
	}
	return b, nil
}

func imageType(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", true
	case ".jpg", ".jpeg":
		return "jpg", true
	}
	return "", false
}
