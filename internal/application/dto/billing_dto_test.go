package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/document/doctest"
)

func TestNewInvoiceResponse_ImportesDeLinea(t *testing.T) {
	inv := doctest.Invoice(2)
	r := dto.NewInvoiceResponse(inv, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))

	require.Len(t, r.Items, 2)
	for i, it := range r.Items {
		src := inv.Items[i]
		assert.True(t, src.VATAmountSecondary.IsPositive())
		assert.True(t, it.VATAmountSecondary.Equal(src.VATAmountSecondary))
		assert.True(t, it.LineTotalSecondary.Equal(src.LineTotalSecondary))
	}

	raw, err := json.Marshal(r.Items[0])
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, inv.Items[0].VATAmountSecondary.String(), fields["vat_amount_secondary"])
	assert.Equal(t, "10.2", fields["vat_amount"])
}
