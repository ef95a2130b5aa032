package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/facturador/internal/document"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/repository"
	"github.com/jhoicas/facturador/pkg/logger"
)

// RenderConfig idioma, orden de respaldo y geometría de página.
type RenderConfig struct {
	Language string
	Fallback []string // estrategias en orden de preferencia
	Geometry document.Geometry
}

// RenderResult documento generado.
type RenderResult struct {
	PDF      []byte
	Filename string
	Strategy string
	Pages    int
}

// RenderUseCase genera la representación gráfica de una factura probando las
// estrategias en orden hasta que una produce el documento.
type RenderUseCase struct {
	invoiceRepo repository.InvoiceRepository
	renderers   map[string]DocumentRenderer
	cfg         RenderConfig
	log         *logger.Logger
}

// NewRenderUseCase construye el caso de uso con los renderers disponibles.
func NewRenderUseCase(invoiceRepo repository.InvoiceRepository, cfg RenderConfig, log *logger.Logger, renderers ...DocumentRenderer) *RenderUseCase {
	if cfg.Language == "" {
		cfg.Language = document.LangBG
	}
	if len(cfg.Fallback) == 0 {
		cfg.Fallback = document.FallbackOrder
	}
	if cfg.Geometry.PageHeight == 0 {
		cfg.Geometry = document.DefaultGeometry()
	}
	m := make(map[string]DocumentRenderer, len(renderers))
	for _, r := range renderers {
		m[r.Strategy()] = r
	}
	return &RenderUseCase{invoiceRepo: invoiceRepo, renderers: m, cfg: cfg, log: log}
}

// Render carga la factura y la renderiza. strategy vacío usa el orden configurado.
func (uc *RenderUseCase) Render(ctx context.Context, invoiceID, strategy string) (*RenderResult, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("render: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.RenderInvoice(ctx, inv, strategy)
}

// RenderInvoice renderiza una factura ya cargada. El contenido y el plan de
// páginas se construyen una vez y se comparten entre todos los intentos.
func (uc *RenderUseCase) RenderInvoice(ctx context.Context, inv *entity.Invoice, strategy string) (*RenderResult, error) {
	order, err := uc.order(strategy)
	if err != nil {
		return nil, err
	}

	content, err := document.Build(inv, uc.cfg.Language)
	if err != nil {
		return nil, domain.NewRenderError("content", "construir contenido", err)
	}
	plan, err := document.Paginate(content, uc.cfg.Geometry)
	if err != nil {
		return nil, domain.NewRenderError("layout", "paginar", err)
	}

	log := uc.log.With().Str("number", inv.Number).Int("pages", plan.PageCount()).Logger()
	var failures []error
	for _, name := range order {
		r, ok := uc.renderers[name]
		if !ok {
			continue
		}
		out, err := r.Render(ctx, content, plan)
		if err == nil {
			log.Info().Str("strategy", name).Int("bytes", len(out)).Msg("factura renderizada")
			return &RenderResult{
				PDF:      out,
				Filename: fmt.Sprintf("invoice_%s.pdf", inv.Number),
				Strategy: name,
				Pages:    plan.PageCount(),
			}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, domain.NewRenderError(name, "cancelado", ctxErr)
		}
		log.Warn().Err(err).Str("strategy", name).Msg("estrategia de render fallida, se prueba la siguiente")
		failures = append(failures, err)
	}

	if len(failures) == 0 {
		return nil, domain.NewRenderError("none", "seleccionar", fmt.Errorf("ninguna estrategia disponible de %v", order))
	}
	return nil, domain.NewRenderError("all", "agotadas", errors.Join(failures...))
}

// order estrategia pedida primero y luego el orden configurado, sin repetir.
func (uc *RenderUseCase) order(strategy string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	if strategy != "" {
		s, err := document.ParseStrategy(strategy)
		if err != nil {
			verr := &domain.ValidationError{}
			verr.Add("strategy", fmt.Sprintf("unknown rendering strategy %q", strategy))
			return nil, verr
		}
		out = append(out, s)
		seen[s] = true
	}
	for _, s := range uc.cfg.Fallback {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	return out, nil
}
