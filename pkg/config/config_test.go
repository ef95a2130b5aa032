package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	testChdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Invoice.VATRate.Equal(decimal.NewFromInt(20)))
	assert.True(t, cfg.Invoice.ExchangeRate.Equal(decimal.RequireFromString("0.51129")))
	assert.Equal(t, "BGN", cfg.Invoice.NativeCurrency)
	assert.Equal(t, "лв.", cfg.Invoice.NativeSymbol)
	assert.Equal(t, "EUR", cfg.Invoice.SecondaryCurrency)
	assert.Equal(t, "bg", cfg.Invoice.Language)
	assert.Equal(t, []string{"structured", "raster", "vector"}, cfg.Render.Fallback)
	assert.Equal(t, 30*time.Second, cfg.Render.RasterTimeout)
	assert.False(t, cfg.DB.Enabled())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("INVOICE_EXCHANGE_RATE", "0.5")
	t.Setenv("RENDER_FALLBACK", "Vector, raster")
	t.Setenv("DB_HOST", "db")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Invoice.ExchangeRate.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, []string{"vector", "raster"}, cfg.Render.Fallback)
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Contains(t, cfg.DB.ConnectionString(), "postgres://postgres:@db:5432/facturador")
}

func TestLoad_TasaInvalida(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("INVOICE_EXCHANGE_RATE", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
