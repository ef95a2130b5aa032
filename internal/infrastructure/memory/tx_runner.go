package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/repository"
)

// TxRunner emula la transacción de emisión: serializa las emisiones y, si fn
// falla, deshace los consecutivos tomados y las facturas creadas.
type TxRunner struct {
	mu       sync.Mutex
	numbers  *DailySequence
	invoices *InvoiceStore
}

// NewTxRunner construye el runner sobre el contador y el repositorio dados.
func NewTxRunner(numbers *DailySequence, invoices *InvoiceStore) *TxRunner {
	return &TxRunner{numbers: numbers, invoices: invoices}
}

// RunIssuing implementa billing.IssuingTxRunner.
func (r *TxRunner) RunIssuing(ctx context.Context, fn func(repository.NumberSequence, repository.InvoiceRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &txScope{numbers: r.numbers, invoices: r.invoices, taken: map[string]int64{}}
	if err := fn(tx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// txScope registra lo hecho dentro de la transacción para poder deshacerlo.
type txScope struct {
	numbers  *DailySequence
	invoices *InvoiceStore
	taken    map[string]int64
	created  []*entity.Invoice
}

func (t *txScope) Next(ctx context.Context, day time.Time) (int64, error) {
	n, err := t.numbers.Next(ctx, day)
	if err == nil {
		t.taken[day.Format("2006-01-02")]++
	}
	return n, err
}

func (t *txScope) Create(ctx context.Context, inv *entity.Invoice) error {
	if err := t.invoices.Create(ctx, inv); err != nil {
		return err
	}
	t.created = append(t.created, inv)
	return nil
}

func (t *txScope) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return t.invoices.GetByID(ctx, id)
}

func (t *txScope) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	return t.invoices.GetByNumber(ctx, number)
}

func (t *txScope) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	return t.invoices.List(ctx, limit, offset)
}

func (t *txScope) UpdateStatus(ctx context.Context, id string, from, to entity.InvoiceStatus, updatedAt time.Time) error {
	return t.invoices.UpdateStatus(ctx, id, from, to, updatedAt)
}

func (t *txScope) rollback() {
	for _, inv := range t.created {
		t.invoices.remove(inv)
	}
	t.numbers.mu.Lock()
	defer t.numbers.mu.Unlock()
	for day, n := range t.taken {
		t.numbers.last[day] -= n
	}
}
