package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/application/billing"
	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/document/doctest"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/infrastructure/memory"
	"github.com/jhoicas/facturador/pkg/logger"
)

type issueFixture struct {
	uc    *billing.IssueInvoiceUseCase
	seq   *memory.DailySequence
	store *memory.InvoiceStore
}

func newIssueFixture() issueFixture {
	seq := memory.NewDailySequence()
	store := memory.NewInvoiceStore()
	company := doctest.Company()
	uc := billing.NewIssueInvoiceUseCase(
		memory.NewTxRunner(seq, store),
		memory.NewCompanyStore(company),
		newAssembler(),
		company.ID,
		logger.Nop(),
	)
	return issueFixture{uc: uc, seq: seq, store: store}
}

func createRequest() dto.CreateInvoiceRequest {
	o := sampleOrder()
	return dto.CreateInvoiceRequest{
		Order: dto.OrderRequest{
			Number:   o.Number,
			Customer: o.Customer,
			Items: []dto.OrderItemRequest{{
				ProductRef: "TILE-60",
				Quantity:   decimal.NewFromInt(2),
				UnitPrice:  decimal.RequireFromString("25.50"),
			}},
		},
		PaymentTerms: "30_days",
		SupplyDate:   "2024-03-14",
	}
}

func TestIssue_PersisteLaFactura(t *testing.T) {
	f := newIssueFixture()
	inv, err := f.uc.Issue(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	stored, err := f.store.GetByNumber(context.Background(), "20240315001")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, inv.ID, stored.ID)
	assert.Equal(t, "Плочки Ковачев ЕООД", stored.Company.Name)
	require.NotNil(t, stored.SupplyDate)
	assert.Equal(t, "2024-03-14", stored.SupplyDate.Format(dto.DateLayout))
}

func TestIssue_PedidoInvalidoNoConsumeNumero(t *testing.T) {
	f := newIssueFixture()
	req := createRequest()
	req.Order.Items = nil

	_, err := f.uc.Issue(context.Background(), "user-1", req)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	inv, err := f.uc.Issue(context.Background(), "user-1", createRequest())
	require.NoError(t, err)
	assert.Equal(t, "20240315001", inv.Number)
}

func TestIssue_FechaDeSuministroInvalida(t *testing.T) {
	f := newIssueFixture()
	req := createRequest()
	req.SupplyDate = "14.03.2024"

	_, err := f.uc.Issue(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIssue_SinPerfilDeEmisor(t *testing.T) {
	uc := billing.NewIssueInvoiceUseCase(
		memory.NewTxRunner(memory.NewDailySequence(), memory.NewInvoiceStore()),
		memory.NewCompanyStore(),
		newAssembler(),
		"missing",
		logger.Nop(),
	)
	_, err := uc.Issue(context.Background(), "user-1", createRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreview_NoPersisteNiConsume(t *testing.T) {
	f := newIssueFixture()
	inv, err := f.uc.Preview(context.Background(), "user-1", createRequest())
	require.NoError(t, err)
	assert.Equal(t, "20240315001", inv.Number)

	list, err := f.store.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	n, err := f.seq.Next(context.Background(), inv.IssueDate)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
