package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturador/internal/application/billing"
	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/infrastructure/memory"
	"github.com/jhoicas/facturador/internal/infrastructure/pdf"
)

type renderFlags struct {
	order      string
	company    string
	terms      string
	supplyDate string
	issued     string
	strategy   string
	lang       string
	out        string
}

func newRenderCommand() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Ensambla una factura desde un pedido JSON y escribe el PDF",
		Long: `Ensambla la factura con el perfil del emisor (archivo --company o variables
COMPANY_*) y la renderiza con la estrategia pedida; si falla se prueban las de
RENDER_FALLBACK en orden. Los nombres de producto se toman del propio pedido.`,
		Example: `  invoicectl render --order order.json --terms 30_days --strategy vector --out invoice.pdf
  invoicectl render --order order.json --company company.json --terms immediate --lang en`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.order, "order", "", "pedido en JSON (number, customer, items, notes)")
	cmd.Flags().StringVar(&f.company, "company", "", "perfil del emisor en JSON (opcional)")
	cmd.Flags().StringVar(&f.terms, "terms", "", "condiciones de pago (por defecto INVOICE_DEFAULT_PAYMENT_TERMS)")
	cmd.Flags().StringVar(&f.supplyDate, "supply-date", "", "fecha de suministro YYYY-MM-DD")
	cmd.Flags().StringVar(&f.issued, "issued", "", "fecha de emisión YYYY-MM-DD (por defecto hoy)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "structured, raster o vector")
	cmd.Flags().StringVar(&f.lang, "lang", "", "idioma del documento: bg o en")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "archivo de salida (por defecto invoice_<número>.pdf)")
	_ = cmd.MarkFlagRequired("order")
	return cmd
}

func runRender(cmd *cobra.Command, f renderFlags) error {
	ctx := cmd.Context()
	cfg, log, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if f.lang != "" {
		cfg.Invoice.Language = f.lang
	}
	if f.terms == "" {
		f.terms = cfg.Invoice.DefaultPaymentTerms
	}
	if f.terms == "" {
		return errors.New("--terms es obligatorio si INVOICE_DEFAULT_PAYMENT_TERMS no está definido")
	}

	var order dto.OrderRequest
	if err := readJSON(f.order, &order); err != nil {
		return fmt.Errorf("pedido: %w", err)
	}

	assemblyCfg, err := billing.AssemblyConfigFrom(cfg.Invoice)
	if err != nil {
		return err
	}
	renderCfg, err := billing.RenderConfigFrom(cfg.Invoice, cfg.Render)
	if err != nil {
		return err
	}

	companies := memory.NewCompanyStore()
	profile := billing.NewCompanyProfileUseCase(companies, cfg.Company.ID, log)
	if f.company != "" {
		var in dto.UpsertCompanyRequest
		if err := readJSON(f.company, &in); err != nil {
			return fmt.Errorf("emisor: %w", err)
		}
		if _, err := profile.Update(ctx, in); err != nil {
			return err
		}
	} else if err := profile.Seed(ctx, billing.CompanyFrom(cfg.Company)); err != nil {
		return err
	}

	assembler := billing.NewAssembler(memory.CatalogFromOrder(order.ToOrder()), assemblyCfg)
	if f.issued != "" {
		day, err := time.ParseInLocation(dto.DateLayout, f.issued, assemblyCfg.Location)
		if err != nil {
			return fmt.Errorf("--issued debe tener formato YYYY-MM-DD: %w", err)
		}
		assembler = assembler.WithClock(func() time.Time { return day })
	}

	store := memory.NewInvoiceStore()
	issue := billing.NewIssueInvoiceUseCase(memory.NewTxRunner(memory.NewDailySequence(), store), companies, assembler, cfg.Company.ID, log)
	inv, err := issue.Issue(ctx, "invoicectl", dto.CreateInvoiceRequest{
		Order:        order,
		PaymentTerms: f.terms,
		SupplyDate:   f.supplyDate,
	})
	if err != nil {
		return err
	}

	render := billing.NewRenderUseCase(store, renderCfg, log, pdf.NewRenderers(pdf.OptionsFrom(cfg.Render), log)...)
	res, err := render.RenderInvoice(ctx, inv, f.strategy)
	if err != nil {
		return err
	}

	path := f.out
	if path == "" {
		path = res.Filename
	}
	if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %d\n",
		inv.Number, inv.Total.StringFixed(2), inv.Currency.Code, res.Strategy, res.Pages)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
