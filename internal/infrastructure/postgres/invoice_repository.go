package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Emisor y cliente se guardan como snapshot JSONB: una factura emitida no
// cambia aunque el perfil del emisor se actualice después.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, number, order_number, issue_date, due_date, supply_date, status,
	company, customer,
	subtotal, vat_amount, total,
	subtotal_secondary, vat_amount_secondary, total_secondary, exchange_rate,
	currency_code, currency_symbol, secondary_code, secondary_symbol,
	payment_terms, notes, created_by, created_at, updated_at`

// Create persiste cabecera y líneas. Debe llamarse dentro de una tx para que
// ambas queden o ninguna.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Number, text(inv.OrderNumber), inv.IssueDate, inv.DueDate, inv.SupplyDate, string(inv.Status),
		inv.Company, inv.Customer,
		inv.Subtotal, inv.VATAmount, inv.Total,
		inv.SubtotalSecondary, inv.VATAmountSecondary, inv.TotalSecondary, inv.ExchangeRate,
		inv.Currency.Code, inv.Currency.Symbol, inv.SecondaryCurrency.Code, inv.SecondaryCurrency.Symbol,
		inv.PaymentTerms, text(inv.Notes), text(inv.CreatedBy), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número %s", domain.ErrDuplicate, inv.Number)
		}
		return writeError("insert invoice", err)
	}

	itemQuery := `
		INSERT INTO invoice_items (id, invoice_id, position, product_ref, name, description, quantity, unit,
		                           unit_price, vat_rate, line_total, vat_amount,
		                           unit_price_secondary, line_total_secondary, vat_amount_secondary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	for i := range inv.Items {
		it := &inv.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, inv.ID, i+1, it.ProductRef, it.Name, text(it.Description), it.Quantity, it.Unit,
			it.UnitPrice, it.VATRate, it.LineTotal, it.VATAmount,
			it.UnitPriceSecondary, it.LineTotalSecondary, it.VATAmountSecondary,
		)
		if err != nil {
			return writeError(fmt.Sprintf("insert invoice item %d", i+1), err)
		}
	}
	return nil
}

// GetByID obtiene una factura completa por ID; nil, nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetByNumber obtiene una factura por su número YYYYMMDDnnn; nil, nil si no existe.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE number = $1`, number)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query string, arg any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	byInvoice, err := r.loadItems(ctx, []string{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.Items = byInvoice[inv.ID]
	return inv, nil
}

// List devuelve facturas ordenadas por número descendente (las más recientes primero).
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY number DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	var ids []string
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
		ids = append(ids, inv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	byInvoice, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, inv := range list {
		inv.Items = byInvoice[inv.ID]
	}
	return list, nil
}

// UpdateStatus cambia solo estado y updated_at, y solo si el estado sigue siendo
// from. domain.ErrNotFound si el ID no existe, domain.ErrConflict si otro cambio
// se adelantó.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, from, to entity.InvoiceStatus, updatedAt time.Time) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
		id, string(to), updatedAt, string(from))
	if err != nil {
		return writeError("update invoice status", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var current string
	err = r.q.QueryRow(ctx, `SELECT status FROM invoices WHERE id = $1`, id).Scan(&current)
	if isNoRows(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get invoice status: %w", err)
	}
	return fmt.Errorf("%w: estado actual %s, esperado %s", domain.ErrConflict, current, from)
}

func (r *InvoiceRepo) loadItems(ctx context.Context, invoiceIDs []string) (map[string][]entity.InvoiceItem, error) {
	query := `
		SELECT invoice_id, id, product_ref, name, description, quantity, unit,
		       unit_price, vat_rate, line_total, vat_amount,
		       unit_price_secondary, line_total_secondary, vat_amount_secondary
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position`
	rows, err := r.q.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.InvoiceItem, len(invoiceIDs))
	for rows.Next() {
		var invoiceID string
		var description pgtype.Text
		var it entity.InvoiceItem
		if err := rows.Scan(
			&invoiceID, &it.ID, &it.ProductRef, &it.Name, &description, &it.Quantity, &it.Unit,
			&it.UnitPrice, &it.VATRate, &it.LineTotal, &it.VATAmount,
			&it.UnitPriceSecondary, &it.LineTotalSecondary, &it.VATAmountSecondary,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		it.Description = description.String
		out[invoiceID] = append(out[invoiceID], it)
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var orderNumber, notes, createdBy pgtype.Text
	var status string
	var subtotal, vat, total, subtotal2, vat2, total2, rate decimal.Decimal
	err := row.Scan(
		&inv.ID, &inv.Number, &orderNumber, &inv.IssueDate, &inv.DueDate, &inv.SupplyDate, &status,
		&inv.Company, &inv.Customer,
		&subtotal, &vat, &total,
		&subtotal2, &vat2, &total2, &rate,
		&inv.Currency.Code, &inv.Currency.Symbol, &inv.SecondaryCurrency.Code, &inv.SecondaryCurrency.Symbol,
		&inv.PaymentTerms, &notes, &createdBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	inv.OrderNumber = orderNumber.String
	inv.Notes = notes.String
	inv.CreatedBy = createdBy.String
	inv.Subtotal, inv.VATAmount, inv.Total = subtotal, vat, total
	inv.SubtotalSecondary, inv.VATAmountSecondary, inv.TotalSecondary = subtotal2, vat2, total2
	inv.ExchangeRate = rate
	return &inv, nil
}
