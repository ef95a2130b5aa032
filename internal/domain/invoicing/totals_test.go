package invoicing_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/invoicing"
)

var testRate = decimal.RequireFromString("0.51129")

func item(qty, price, vat string) entity.InvoiceItem {
	return entity.InvoiceItem{
		Name:      "Item",
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
		VATRate:   decimal.RequireFromString(vat),
	}
}

// Escenario de referencia: 2 × 25.50 con IVA 20 %.
func TestCalculate_EscenarioUnaLinea(t *testing.T) {
	items, totals, err := invoicing.Calculate([]entity.InvoiceItem{item("2", "25.50", "20")}, testRate)
	require.NoError(t, err)

	assert.Equal(t, "51.00", items[0].LineTotal.StringFixed(2))
	assert.Equal(t, "10.20", items[0].VATAmount.StringFixed(2))
	assert.Equal(t, "51.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "10.20", totals.VATAmount.StringFixed(2))
	assert.Equal(t, "61.20", totals.Total.StringFixed(2))

	assert.Equal(t, "26.08", totals.SubtotalSecondary.StringFixed(2))
	assert.Equal(t, "5.22", totals.VATAmountSecondary.StringFixed(2))
	assert.Equal(t, "31.29", totals.TotalSecondary.StringFixed(2))
	assert.Equal(t, "13.04", items[0].UnitPriceSecondary.StringFixed(2))
}

// subtotal + IVA == total al céntimo, incluso con precios terminados en .005.
func TestCalculate_SumaCuadraAlCentimo(t *testing.T) {
	for i := 0; i < 200; i++ {
		var items []entity.InvoiceItem
		for j := 0; j <= i%7; j++ {
			price := fmt.Sprintf("%d.%03d", i+j, 5+10*((i*j)%99))
			vat := []string{"0", "9", "20"}[(i+j)%3]
			items = append(items, item(fmt.Sprintf("%d", 1+j%4), price, vat))
		}
		_, totals, err := invoicing.Calculate(items, testRate)
		require.NoError(t, err)
		assert.True(t, totals.Subtotal.Add(totals.VATAmount).Equal(totals.Total),
			"caso %d: %s + %s != %s", i, totals.Subtotal, totals.VATAmount, totals.Total)
		assert.Equal(t, int32(-2), minExp(totals.Total), "el total debe tener a lo sumo 2 decimales")
	}
}

func minExp(d decimal.Decimal) int32 {
	if d.Exponent() < -2 {
		return d.Exponent()
	}
	return -2
}

// Dos llamadas con la misma entrada producen agregados idénticos.
func TestCalculate_Determinista(t *testing.T) {
	in := []entity.InvoiceItem{item("3", "19.995", "20"), item("1.5", "7.333", "9"), item("10", "0.005", "0")}
	_, t1, err1 := invoicing.Calculate(in, testRate)
	_, t2, err2 := invoicing.Calculate(in, testRate)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, t1, t2)
}

func TestCalculate_NoMutaLaEntrada(t *testing.T) {
	in := []entity.InvoiceItem{item("2", "25.50", "20")}
	_, _, err := invoicing.Calculate(in, testRate)
	require.NoError(t, err)
	assert.True(t, in[0].LineTotal.IsZero(), "la entrada no debe modificarse")
}

func TestCalculate_EntradasInvalidas(t *testing.T) {
	cases := map[string]entity.InvoiceItem{
		"precio negativo": item("1", "-1", "20"),
		"cantidad cero":   item("0", "10", "20"),
		"iva > 100":       item("1", "10", "101"),
	}
	for name, it := range cases {
		_, _, err := invoicing.Calculate([]entity.InvoiceItem{it}, testRate)
		assert.ErrorIs(t, err, domain.ErrCalculation, name)
	}
	_, _, err := invoicing.Calculate(nil, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrCalculation, "tipo de cambio negativo")
}

func TestCalculate_ListaVacia(t *testing.T) {
	items, totals, err := invoicing.Calculate(nil, testRate)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.True(t, totals.Total.IsZero())
}
