package invoicing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/invoicing"
)

func TestDueDate_TablaDeDesfases(t *testing.T) {
	issue := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	cases := map[string]int{
		"immediate": 0,
		"7_days":    7,
		"14_days":   14,
		"30_days":   30,
		"60_days":   60,
		"90_days":   90,
	}
	for code, days := range cases {
		due, err := invoicing.DueDate(issue, code)
		require.NoError(t, err, code)
		assert.Equal(t, days, int(due.Sub(issue).Hours()/24), "desfase de %s", code)
		assert.False(t, due.Before(issue))
	}
}

func TestDueDate_30Dias(t *testing.T) {
	issue := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	due, err := invoicing.DueDate(issue, invoicing.Terms30Days)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", due.Format("2006-01-02"))
}

// Un código desconocido nunca se convierte en 30 días por defecto.
func TestDueDate_CodigoDesconocido(t *testing.T) {
	for _, code := range []string{"", "30", "45_days", "net30", "30_DAYS"} {
		_, err := invoicing.DueDate(time.Now(), code)
		assert.ErrorIs(t, err, domain.ErrInvalidPaymentTerms, "código %q", code)
	}
}

func TestTermCodes_Orden(t *testing.T) {
	assert.Equal(t,
		[]string{"immediate", "7_days", "14_days", "30_days", "60_days", "90_days"},
		invoicing.TermCodes())
}
