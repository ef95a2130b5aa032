package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/invoicing"
	"github.com/jhoicas/facturador/internal/domain/repository"
)

// AssemblyConfig parámetros fijos de la jurisdicción y del par de divisas.
type AssemblyConfig struct {
	VATRate           decimal.Decimal // porcentaje único aplicado a todas las líneas
	ExchangeRate      decimal.Decimal // nativa -> secundaria
	Currency          entity.Currency
	SecondaryCurrency entity.Currency
	Location          *time.Location // zona para la fecha de emisión (nil = UTC)
}

// AssembleInput datos de una emisión.
type AssembleInput struct {
	Order        entity.Order
	Company      entity.Company
	PaymentTerms string
	SupplyDate   *time.Time
	IssuedAt     time.Time // cero = reloj del ensamblador
	CreatedBy    string
}

// Assembler construye una factura validada a partir de un pedido y del perfil del emisor.
// No persiste nada: la persistencia y el contador son responsabilidad del llamador.
type Assembler struct {
	catalog repository.ProductCatalog
	cfg     AssemblyConfig
	now     func() time.Time
}

// NewAssembler construye el ensamblador.
func NewAssembler(catalog repository.ProductCatalog, cfg AssemblyConfig) *Assembler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Assembler{catalog: catalog, cfg: cfg, now: time.Now}
}

// WithClock reemplaza el reloj (pruebas).
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	cp := *a
	cp.now = now
	return &cp
}

// Assemble ejecuta el ensamblado completo:
//
//  1. Valida condiciones de pago (fatal) y la instantánea del pedido.
//  2. Convierte cada línea en InvoiceItem resolviendo nombre y descripción en el catálogo.
//  3. Calcula totales en ambas divisas.
//  4. Toma el siguiente número del día y calcula el vencimiento.
//  5. Valida la factura completa.
//
// El número solo se solicita cuando el pedido es válido, así un pedido rechazado
// no consume consecutivos.
func (a *Assembler) Assemble(ctx context.Context, numbers repository.NumberSequence, in AssembleInput) (*entity.Invoice, error) {
	if !invoicing.IsKnownTerms(in.PaymentTerms) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentTerms, in.PaymentTerms)
	}

	verr := &domain.ValidationError{}
	if err := invoicing.ValidateOrder(in.Order, in.PaymentTerms); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		verr.Violations = append(verr.Violations, ve.Violations...)
	}

	// ── 1. Líneas ─────────────────────────────────────────────────────────────
	items := make([]entity.InvoiceItem, 0, len(in.Order.Items))
	for i, line := range in.Order.Items {
		it, problem, err := a.mapItem(ctx, line)
		if err != nil {
			return nil, fmt.Errorf("assemble: catálogo: %w", err)
		}
		if problem != "" {
			verr.Add(fmt.Sprintf("items[%d]", i), problem)
			continue
		}
		items = append(items, it)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	// ── 2. Totales ────────────────────────────────────────────────────────────
	items, totals, err := invoicing.Calculate(items, a.cfg.ExchangeRate)
	if err != nil {
		return nil, err
	}

	// ── 3. Número y vencimiento ──────────────────────────────────────────────
	issuedAt := in.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = a.now()
	}
	issuedAt = issuedAt.In(a.cfg.Location)
	issueDate := time.Date(issuedAt.Year(), issuedAt.Month(), issuedAt.Day(), 0, 0, 0, 0, a.cfg.Location)
	dueDate, err := invoicing.DueDate(issueDate, in.PaymentTerms)
	if err != nil {
		return nil, err
	}
	number, err := invoicing.GenerateInvoiceNumber(ctx, numbers, issueDate)
	if err != nil {
		return nil, err
	}

	// ── 4. Registro ───────────────────────────────────────────────────────────
	now := a.now()
	inv := &entity.Invoice{
		ID:                uuid.New().String(),
		Number:            number,
		OrderNumber:       in.Order.Number,
		IssueDate:         issueDate,
		DueDate:           dueDate,
		SupplyDate:        in.SupplyDate,
		Status:            entity.StatusDraft,
		Company:           in.Company,
		Customer:          in.Order.Customer,
		Items:             items,
		Currency:          a.cfg.Currency,
		SecondaryCurrency: a.cfg.SecondaryCurrency,
		PaymentTerms:      in.PaymentTerms,
		Notes:             strings.TrimSpace(in.Order.Notes),
		CreatedAt:         now,
		UpdatedAt:         now,
		CreatedBy:         in.CreatedBy,
	}
	totals.Apply(inv)

	// ── 5. Validación final ──────────────────────────────────────────────────
	if err := invoicing.ValidateInvoice(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// mapItem resuelve la línea contra el catálogo. problem != "" es una violación del pedido.
func (a *Assembler) mapItem(ctx context.Context, line entity.OrderItem) (entity.InvoiceItem, string, error) {
	it := entity.InvoiceItem{
		ID:         uuid.New().String(),
		ProductRef: line.ProductRef,
		Name:       strings.TrimSpace(line.Name),
		Unit:       strings.TrimSpace(line.Unit),
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice,
		VATRate:    a.cfg.VATRate,
	}
	if line.ProductRef != "" && a.catalog != nil {
		product, err := a.catalog.Lookup(ctx, line.ProductRef)
		if err != nil {
			return it, "", err
		}
		if product != nil {
			it.Name = product.Name
			it.Description = product.Description
			if product.Unit != "" {
				it.Unit = product.Unit
			}
		}
	}
	if it.Name == "" {
		return it, "unknown product " + fmt.Sprintf("%q", line.ProductRef), nil
	}
	return it, "", nil
}
