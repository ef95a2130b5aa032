package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/application/billing"
	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/document"
	"github.com/jhoicas/facturador/internal/document/doctest"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/facturador/internal/interfaces/http"
	"github.com/jhoicas/facturador/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: API completa sobre almacenamiento en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubRenderer struct {
	strategy string
	err      error
}

func (s stubRenderer) Strategy() string { return s.strategy }

func (s stubRenderer) Render(context.Context, *document.Content, *document.Plan) ([]byte, error) {
	if s.err != nil {
		return nil, domain.NewRenderError(s.strategy, "test", s.err)
	}
	return []byte("%PDF-1.4 " + s.strategy), nil
}

type apiFixture struct {
	app   *fiber.App
	store *memory.InvoiceStore
}

func newAPI(t *testing.T, renderers ...billing.DocumentRenderer) apiFixture {
	t.Helper()
	log := logger.Nop()
	company := doctest.Company()
	companies := memory.NewCompanyStore(company)
	store := memory.NewInvoiceStore()
	catalog := memory.NewCatalog(entity.Product{Ref: "TILE-60", Name: "Гранитогрес 60x60", Unit: "м²"})
	assembler := billing.NewAssembler(catalog, billing.AssemblyConfig{
		VATRate:           decimal.NewFromInt(20),
		ExchangeRate:      doctest.Rate,
		Currency:          entity.Currency{Code: "BGN", Symbol: "лв."},
		SecondaryCurrency: entity.Currency{Code: "EUR", Symbol: "€"},
	})
	if len(renderers) == 0 {
		renderers = []billing.DocumentRenderer{stubRenderer{strategy: document.StrategyVector}}
	}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		IssueInvoice: billing.NewIssueInvoiceUseCase(memory.NewTxRunner(memory.NewDailySequence(), store), companies, assembler, company.ID, log),
		Invoices:     billing.NewInvoiceUseCase(store, log),
		Render:       billing.NewRenderUseCase(store, billing.RenderConfig{}, log, renderers...),
		Company:      billing.NewCompanyProfileUseCase(companies, company.ID, log),
		Log:          log,
		Tokens:       testSigner(t),
		ServiceName:  "facturador-test",
	})
	return apiFixture{app: app, store: store}
}

func (f apiFixture) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func validRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		Order: dto.OrderRequest{
			Number: "ORD-1001",
			Customer: entity.Customer{
				Name:    "Иван Петров",
				Address: entity.Address{Street: "бул. България 102", City: "Пловдив"},
			},
			Items: []dto.OrderItemRequest{{
				ProductRef: "TILE-60",
				Quantity:   decimal.NewFromInt(2),
				UnitPrice:  decimal.RequireFromString("25.50"),
			}},
		},
		PaymentTerms: "30_days",
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func issue(t *testing.T, f apiFixture) dto.InvoiceResponse {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/invoices", "vendedor", validRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.InvoiceResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateInvoice_Emite(t *testing.T) {
	f := newAPI(t)
	inv := issue(t, f)

	today := time.Now().UTC().Format("20060102")
	assert.Equal(t, today+"001", inv.Number)
	assert.Equal(t, "draft", inv.Status)
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("51.00")))
	assert.True(t, inv.VATAmount.Equal(decimal.RequireFromString("10.20")))
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("61.20")))
	assert.Equal(t, "Гранитогрес 60x60", inv.Items[0].Name)
	assert.Equal(t, testUserID, inv.CreatedBy)

	second := issue(t, f)
	assert.Equal(t, today+"002", second.Number)
}

func TestCreateInvoice_CondicionesDesconocidas422(t *testing.T) {
	f := newAPI(t)
	req := validRequest()
	req.PaymentTerms = "45_days"

	resp := f.do(t, http.MethodPost, "/api/invoices", "admin", req)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_PAYMENT_TERMS", body.Code)
}

func TestCreateInvoice_PedidoInvalidoDevuelveViolaciones(t *testing.T) {
	f := newAPI(t)
	req := validRequest()
	req.Order.Customer = entity.Customer{}
	req.Order.Items[0].Quantity = decimal.Zero

	resp := f.do(t, http.MethodPost, "/api/invoices", "admin", req)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[apphttp.ValidationErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.GreaterOrEqual(t, len(body.Violations), 4)
}

func TestCreateInvoice_ContadorNoEmite(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/invoices", "contador", validRequest())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateInvoice_SinToken401(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/invoices", "", validRequest())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPreview_NoPersiste(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/invoices/preview", "vendedor", validRequest())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list, err := f.store.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta, estado y PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestGetInvoice(t *testing.T) {
	f := newAPI(t)
	inv := issue(t, f)

	resp := f.do(t, http.MethodGet, "/api/invoices/"+inv.ID, "contador", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.InvoiceResponse](t, resp)
	assert.Equal(t, inv.Number, got.Number)

	resp = f.do(t, http.MethodGet, "/api/invoices/no-existe", "contador", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListInvoices_MasRecientesPrimero(t *testing.T) {
	f := newAPI(t)
	first := issue(t, f)
	second := issue(t, f)

	resp := f.do(t, http.MethodGet, "/api/invoices?limit=500", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.InvoiceListResponse](t, resp)
	require.Len(t, list.Items, 2)
	assert.Equal(t, second.Number, list.Items[0].Number)
	assert.Equal(t, first.Number, list.Items[1].Number)
	assert.Equal(t, 100, list.Page.Limit)
	assert.Equal(t, 2, list.Page.Count)

	resp = f.do(t, http.MethodGet, "/api/invoices", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.DefaultPageSize, decode[dto.InvoiceListResponse](t, resp).Page.Limit)

	resp = f.do(t, http.MethodGet, "/api/invoices?limit=abc", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateStatus(t *testing.T) {
	f := newAPI(t)
	inv := issue(t, f)
	path := "/api/invoices/" + inv.ID + "/status"

	resp := f.do(t, http.MethodPatch, path, "contador", dto.UpdateStatusRequest{Status: "sent"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sent", decode[dto.InvoiceResponse](t, resp).Status)

	resp = f.do(t, http.MethodPatch, path, "contador", dto.UpdateStatusRequest{Status: "draft"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = f.do(t, http.MethodPatch, path, "contador", dto.UpdateStatusRequest{Status: "archived"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = f.do(t, http.MethodPatch, path, "vendedor", dto.UpdateStatusRequest{Status: "paid"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInvoicePDF(t *testing.T) {
	f := newAPI(t)
	inv := issue(t, f)

	resp := f.do(t, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf?strategy=vector", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "invoice_"+inv.Number+".pdf")
	assert.Equal(t, "vector", resp.Header.Get("X-Render-Strategy"))
	assert.Equal(t, "1", resp.Header.Get("X-Page-Count"))
}

func TestInvoicePDF_EstrategiaDesconocida422(t *testing.T) {
	f := newAPI(t)
	inv := issue(t, f)

	resp := f.do(t, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf?strategy=docx", "vendedor", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestInvoicePDF_TodasFallan502(t *testing.T) {
	f := newAPI(t, stubRenderer{strategy: document.StrategyVector, err: errors.New("sin memoria")})
	inv := issue(t, f)

	resp := f.do(t, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", "vendedor", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "RENDER_FAILED", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil del emisor
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyProfile(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/company", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, doctest.Company().Name, decode[entity.Company](t, resp).Name)

	resp = f.do(t, http.MethodPut, "/api/company", "vendedor", dto.UpsertCompanyRequest{Name: "X"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPut, "/api/company", "admin", dto.UpsertCompanyRequest{Name: "X"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
