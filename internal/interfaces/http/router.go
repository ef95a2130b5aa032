package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador/internal/application/billing"
	"github.com/jhoicas/facturador/pkg/jwt"
	"github.com/jhoicas/facturador/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IssueInvoice *billing.IssueInvoiceUseCase
	Invoices     *billing.InvoiceUseCase
	Render       *billing.RenderUseCase
	Company      *billing.CompanyProfileUseCase
	Log          *logger.Logger
	Tokens       *jwt.Signer
	ServiceName  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))
	anyRole := RequireRole(RoleAdmin, RoleAccountant, RoleSeller)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.IssueInvoice, deps.Invoices, deps.Render, deps.Log)
	invoices.Post("/", RequireRole(RoleAdmin, RoleSeller), invoiceHandler.Create)
	invoices.Post("/preview", RequireRole(RoleAdmin, RoleSeller), invoiceHandler.Preview)
	invoices.Get("/", anyRole, invoiceHandler.List)
	invoices.Get("/:id", anyRole, invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", anyRole, invoiceHandler.PDF)
	invoices.Patch("/:id/status", RequireRole(RoleAdmin, RoleAccountant), invoiceHandler.UpdateStatus)

	// Perfil del emisor
	company := protected.Group("/company")
	companyHandler := NewCompanyHandler(deps.Company, deps.Log)
	company.Get("/", anyRole, companyHandler.Get)
	company.Put("/", RequireRole(RoleAdmin), companyHandler.Update)
}
