package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/application/billing"
	"github.com/jhoicas/facturador/internal/document/doctest"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/invoicing"
	"github.com/jhoicas/facturador/internal/infrastructure/memory"
)

var issuedAt = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func assemblyConfig() billing.AssemblyConfig {
	return billing.AssemblyConfig{
		VATRate:           decimal.NewFromInt(20),
		ExchangeRate:      doctest.Rate,
		Currency:          entity.Currency{Code: "BGN", Symbol: "лв."},
		SecondaryCurrency: entity.Currency{Code: "EUR", Symbol: "€"},
	}
}

func sampleOrder() entity.Order {
	return entity.Order{
		Number: "ORD-1001",
		Customer: entity.Customer{
			Name:    "Иван Петров",
			Address: entity.Address{Street: "бул. България 102", City: "Пловдив"},
		},
		Items: []entity.OrderItem{{
			ProductRef: "TILE-60",
			Quantity:   decimal.NewFromInt(2),
			UnitPrice:  decimal.RequireFromString("25.50"),
		}},
	}
}

func newAssembler() *billing.Assembler {
	catalog := memory.NewCatalog(entity.Product{Ref: "TILE-60", Name: "Гранитогрес 60x60", Description: "мат, сив", Unit: "м²"})
	return billing.NewAssembler(catalog, assemblyConfig()).WithClock(func() time.Time { return issuedAt })
}

func TestAssemble_EscenarioCompleto(t *testing.T) {
	inv, err := newAssembler().Assemble(context.Background(), memory.NewDailySequence(), billing.AssembleInput{
		Order:        sampleOrder(),
		Company:      doctest.Company(),
		PaymentTerms: invoicing.Terms30Days,
		CreatedBy:    "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "20240315001", inv.Number)
	assert.Equal(t, entity.StatusDraft, inv.Status)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), inv.IssueDate)
	assert.Equal(t, time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC), inv.DueDate)
	assert.Equal(t, "61.20", inv.Total.StringFixed(2))
	assert.Equal(t, "31.29", inv.TotalSecondary.StringFixed(2))
	assert.Equal(t, "user-1", inv.CreatedBy)
	assert.NotEmpty(t, inv.ID)

	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Гранитогрес 60x60", inv.Items[0].Name)
	assert.Equal(t, "мат, сив", inv.Items[0].Description)
	assert.Equal(t, "м²", inv.Items[0].Unit)
}

func TestAssemble_DosFacturasMismoDia(t *testing.T) {
	a := newAssembler()
	seq := memory.NewDailySequence()
	in := billing.AssembleInput{Order: sampleOrder(), Company: doctest.Company(), PaymentTerms: invoicing.TermsImmediate}

	first, err := a.Assemble(context.Background(), seq, in)
	require.NoError(t, err)
	second, err := a.Assemble(context.Background(), seq, in)
	require.NoError(t, err)

	assert.Equal(t, "20240315001", first.Number)
	assert.Equal(t, "20240315002", second.Number)
	assert.Equal(t, first.IssueDate, first.DueDate)
}

func TestAssemble_SinLineas(t *testing.T) {
	order := sampleOrder()
	order.Items = nil
	seq := memory.NewDailySequence()

	_, err := newAssembler().Assemble(context.Background(), seq, billing.AssembleInput{
		Order: order, Company: doctest.Company(), PaymentTerms: invoicing.Terms30Days,
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has(invoicing.MsgItemsRequired))

	n, err := seq.Next(context.Background(), issuedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "un pedido rechazado no consume consecutivos")
}

func TestAssemble_CondicionesDesconocidas(t *testing.T) {
	_, err := newAssembler().Assemble(context.Background(), memory.NewDailySequence(), billing.AssembleInput{
		Order: sampleOrder(), Company: doctest.Company(), PaymentTerms: "45_days",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentTerms)
}

func TestAssemble_AgregaViolaciones(t *testing.T) {
	order := sampleOrder()
	order.Customer = entity.Customer{}
	order.Items = append(order.Items, entity.OrderItem{ProductRef: "NOPE", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(1)})

	_, err := newAssembler().Assemble(context.Background(), memory.NewDailySequence(), billing.AssembleInput{
		Order: order, Company: doctest.Company(), PaymentTerms: invoicing.Terms7Days,
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has(invoicing.MsgCustomerNameRequired))
	assert.True(t, verr.Has(invoicing.MsgQuantityPositive))
	assert.True(t, verr.Has(`unknown product "NOPE"`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssemble_NombreDelPedidoSinCatalogo(t *testing.T) {
	order := sampleOrder()
	order.Items[0].ProductRef = "CUSTOM"
	order.Items[0].Name = "Монтаж"
	order.Items[0].Unit = "час"

	inv, err := newAssembler().Assemble(context.Background(), memory.NewDailySequence(), billing.AssembleInput{
		Order: order, Company: doctest.Company(), PaymentTerms: invoicing.Terms14Days,
	})
	require.NoError(t, err)
	assert.Equal(t, "Монтаж", inv.Items[0].Name)
	assert.Equal(t, "час", inv.Items[0].Unit)
}

// Precio o cantidad con más decimales de los que guarda la base: se rechaza
// antes de tomar número, nunca se redondea al persistir.
func TestAssemble_DecimalesDeMas(t *testing.T) {
	order := sampleOrder()
	order.Items[0].UnitPrice = decimal.RequireFromString("10.005")
	order.Items[0].Quantity = decimal.RequireFromString("3.0001")
	seq := memory.NewDailySequence()

	_, err := newAssembler().Assemble(context.Background(), seq, billing.AssembleInput{
		Order: order, Company: doctest.Company(), PaymentTerms: invoicing.Terms30Days,
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has(invoicing.MsgPriceScale))
	assert.True(t, verr.Has(invoicing.MsgQuantityScale))

	n, err := seq.Next(context.Background(), issuedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

// Los ceros a la derecha no cuentan como decimales.
func TestAssemble_CerosFinalesAdmitidos(t *testing.T) {
	order := sampleOrder()
	order.Items[0].UnitPrice = decimal.RequireFromString("25.5000")
	order.Items[0].Quantity = decimal.RequireFromString("2.000")

	inv, err := newAssembler().Assemble(context.Background(), memory.NewDailySequence(), billing.AssembleInput{
		Order: order, Company: doctest.Company(), PaymentTerms: invoicing.Terms30Days,
	})
	require.NoError(t, err)
	assert.Equal(t, "61.20", inv.Total.StringFixed(2))
}
