package document

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha impreso (dd.mm.aaaa).
const DateLayout = "02.01.2006"

// NumberFormat separadores de un locale.
type NumberFormat struct {
	Thousands string
	Decimal   string
}

var numberFormats = map[string]NumberFormat{
	LangBG: {Thousands: " ", Decimal: ","},
	LangEN: {Thousands: ",", Decimal: "."},
}

// FormatAmount formatea un importe ya redondeado con exactamente 2 decimales.
// No redondea ni recalcula: trunca la representación a StringFixed(2), que para
// valores de la factura ya es exacta.
// Ej (bg): 1234567.5 -> "1 234 567,50"
func (f NumberFormat) FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart, f.Thousands) + f.Decimal + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatMoney importe con símbolo de divisa al final: "1 234,56 лв.".
func (f NumberFormat) FormatMoney(d decimal.Decimal, symbol string) string {
	if symbol == "" {
		return f.FormatAmount(d)
	}
	return f.FormatAmount(d) + " " + symbol
}

// FormatPlain número sin ceros de relleno (cantidades, tasas): "1,5", "20".
func (f NumberFormat) FormatPlain(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", f.Decimal, 1)
}

// FormatDate fecha en el formato del documento.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// groupThousands inserta el separador de miles en un string numérico sin signo.
// Ej: "25000" -> "25 000", "1000000" -> "1 000 000"
func groupThousands(s, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteByte(c)
	}
	return b.String()
}
