package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador/internal/application/billing"
	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/pkg/logger"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	issue  *billing.IssueInvoiceUseCase
	query  *billing.InvoiceUseCase
	render *billing.RenderUseCase
	log    *logger.Logger
	now    func() time.Time
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(issue *billing.IssueInvoiceUseCase, query *billing.InvoiceUseCase, render *billing.RenderUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{issue: issue, query: query, render: render, log: log, now: time.Now}
}

// Create godoc
// @Summary      Emitir factura a partir de un pedido
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Pedido y condiciones de pago"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      422   {object}  ValidationErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.issue.Issue(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Location("/api/invoices/" + inv.ID)
	return c.Status(fiber.StatusCreated).JSON(dto.NewInvoiceResponse(inv, h.now()))
}

// Preview godoc
// @Summary      Vista previa sin persistir
// @Description  El número devuelto es provisional y no consume el contador.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Pedido y condiciones de pago"
// @Success      200   {object}  dto.InvoiceResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.issue.Preview(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv, h.now()))
}

// List godoc
// @Summary      Listar facturas (más recientes primero)
// @Tags         invoices
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit y offset deben ser enteros"})
	}
	page.Normalize()
	list, err := h.query.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	now := h.now()
	out := dto.InvoiceListResponse{
		Items: make([]dto.InvoiceSummary, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(list)},
	}
	for _, inv := range list {
		out.Items = append(out.Items, dto.NewInvoiceSummary(inv, now))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle completo de una factura
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.query.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv, h.now()))
}

// PDF godoc
// @Summary      Representación gráfica en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id        path   string  true   "ID de la factura"
// @Param        strategy  query  string  false  "structured | raster | vector"
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	res, err := h.render.Render(c.UserContext(), c.Params("id"), c.Query("strategy"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", res.Filename))
	c.Set("X-Render-Strategy", res.Strategy)
	c.Set("X-Page-Count", strconv.Itoa(res.Pages))
	return c.Send(res.PDF)
}

// UpdateStatus godoc
// @Summary      Cambiar el estado de una factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la factura"
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.query.ChangeStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv, h.now()))
}
