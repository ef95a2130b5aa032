// Package money concentra la aritmética monetaria del facturador.
//
// Todo cálculo de importes (líneas, IVA, conversión de divisa) pasa por Round2 y
// ApplyRate: no se permite aritmética ad hoc fuera de este paquete. Los valores se
// representan con shopspring/decimal, por lo que no existe deriva binaria al sumar
// muchas líneas.
package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador/internal/domain"
)

// Decimales máximos admitidos por tipo de valor; coinciden con las columnas NUMERIC.
const (
	Scale         = 2 // importes
	QuantityScale = 3
	RateScale     = 6 // tipo de cambio
)

var hundred = decimal.NewFromInt(100)

// Round2 redondea a 2 decimales con semántica half-up sobre el entero escalado
// (x*100, redondeo, /100). Para importes no negativos coincide con el redondeo
// "half away from zero" de decimal.Round.
func Round2(x decimal.Decimal) decimal.Decimal {
	return x.Round(Scale)
}

// ApplyRate devuelve Round2(amount * rate).
func ApplyRate(amount, rate decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(rate))
}

// Percent devuelve Round2(amount * pct / 100).
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(pct).Div(hundred))
}

// Sum suma en el orden recibido y redondea una sola vez al final.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Round2(total)
}

// CheckNonNegative valida que un importe, cantidad o tasa no sea negativo.
func CheckNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return &domain.CalculationError{Field: field, Value: v.String(), Reason: "must not be negative"}
	}
	return nil
}

// CheckPositive valida que una cantidad sea estrictamente positiva.
func CheckPositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return &domain.CalculationError{Field: field, Value: v.String(), Reason: "must be positive"}
	}
	return nil
}

// FitsScale informa si v se representa con a lo sumo places decimales sin redondear.
func FitsScale(v decimal.Decimal, places int32) bool {
	return v.Equal(v.Round(places))
}

// CheckScale rechaza valores con más decimales de los admitidos.
func CheckScale(field string, v decimal.Decimal, places int32) error {
	if !FitsScale(v, places) {
		return &domain.CalculationError{Field: field, Value: v.String(), Reason: fmt.Sprintf("must have at most %d decimal places", places)}
	}
	return nil
}

// CheckRatePercent valida una tasa porcentual en el rango [0, 100].
func CheckRatePercent(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return &domain.CalculationError{Field: field, Value: v.String(), Reason: "must be between 0 and 100"}
	}
	return nil
}

// FromFloat convierte un float64 de una fuente externa. NaN e Inf se rechazan:
// nunca se recortan en silencio.
func FromFloat(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &domain.CalculationError{Field: field, Value: fmt.Sprint(f), Reason: "must be finite"}
	}
	return decimal.NewFromFloat(f), nil
}

// Parse interpreta un importe textual ("25.50").
func Parse(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &domain.CalculationError{Field: field, Value: s, Reason: "not a finite decimal number"}
	}
	return d, nil
}
