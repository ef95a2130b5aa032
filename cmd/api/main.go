package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/jhoicas/facturador/internal/application/billing"
	"github.com/jhoicas/facturador/internal/domain/repository"
	"github.com/jhoicas/facturador/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/facturador/internal/infrastructure/pdf"
	"github.com/jhoicas/facturador/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/facturador/internal/interfaces/http"
	"github.com/jhoicas/facturador/pkg/config"
	"github.com/jhoicas/facturador/pkg/jwt"
	"github.com/jhoicas/facturador/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	tokens, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET es obligatorio")
	}

	assemblyCfg, err := billing.AssemblyConfigFrom(cfg.Invoice)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de facturación")
	}
	renderCfg, err := billing.RenderConfigFrom(cfg.Invoice, cfg.Render)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de render")
	}

	ctx := context.Background()

	var (
		txRunner    billing.IssuingTxRunner
		invoiceRepo repository.InvoiceRepository
		companyRepo repository.CompanyRepository
		catalog     repository.ProductCatalog
	)
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}

		txRunner = postgres.NewTxRunner(pool)
		invoiceRepo = postgres.NewInvoiceRepository(pool)
		companyRepo = postgres.NewCompanyRepository(pool)
		catalog = postgres.NewProductCatalog(pool)
	} else {
		// Modo desarrollo: los datos se pierden al reiniciar.
		log.Warn().Msg("sin base de datos configurada, se usa almacenamiento en memoria")
		numbers := memory.NewDailySequence()
		store := memory.NewInvoiceStore()
		txRunner = memory.NewTxRunner(numbers, store)
		invoiceRepo = store
		companyRepo = memory.NewCompanyStore()
		catalog = memory.NewCatalog()
	}

	companyUC := billing.NewCompanyProfileUseCase(companyRepo, cfg.Company.ID, log)
	if err := companyUC.Seed(ctx, billing.CompanyFrom(cfg.Company)); err != nil {
		log.Fatal().Err(err).Msg("perfil del emisor en configuración")
	}

	assembler := billing.NewAssembler(catalog, assemblyCfg)
	issueUC := billing.NewIssueInvoiceUseCase(txRunner, companyRepo, assembler, cfg.Company.ID, log)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, log)
	renderUC := billing.NewRenderUseCase(invoiceRepo, renderCfg, log,
		infrapdf.NewRenderers(infrapdf.OptionsFrom(cfg.Render), log.Component("pdf"))...,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Render.RasterTimeout + time.Second*10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturador API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		IssueInvoice: issueUC,
		Invoices:     invoiceUC,
		Render:       renderUC,
		Company:      companyUC,
		Log:          log,
		Tokens:       tokens,
		ServiceName:  cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
