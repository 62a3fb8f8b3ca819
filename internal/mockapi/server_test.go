package mockapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
	"github.com/jhoicas/invorya-dashboard/internal/mockapi"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func seeded(t *testing.T) (*mockapi.Server, *fiber.App, mockapi.Demo) {
	t.Helper()
	srv := mockapi.New(mockapi.Options{BcryptCost: bcrypt.MinCost})
	demo, err := srv.Seed()
	require.NoError(t, err)
	return srv, srv.App(), demo
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, email, password string) dto.AuthData {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, status, string(body))
	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	_, app, demo := seeded(t)

	data := login(t, app, mockapi.DemoManagerEmail, mockapi.DemoManagerPassword)
	assert.NotEmpty(t, data.Token)
	assert.NotEmpty(t, data.RefreshToken)
	assert.Equal(t, entity.RoleManager, data.User.Role)
	assert.Equal(t, demo.TenantID, data.User.TenantID)

	status, body := do(t, app, http.MethodGet, "/api/auth/me", data.Token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[dto.MeResponse](t, body)
	assert.Equal(t, mockapi.DemoManagerEmail, me.Data.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	_, app, _ := seeded(t)

	status, body := do(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: mockapi.DemoAdminEmail, Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	resp := decode[dto.Envelope[json.RawMessage]](t, body)
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid_credentials", resp.Error)
}

func TestRegister_CreaTenantAdmin(t *testing.T) {
	_, app, demo := seeded(t)

	in := dto.RegisterRequest{Email: "nueva@acme.co", Password: "secreta1", FirstName: "Sara", CompanyName: "Acme"}
	status, body := do(t, app, http.MethodPost, "/api/auth/register", "", in)
	require.Equal(t, http.StatusCreated, status, string(body))
	resp := decode[dto.AuthResponse](t, body)
	assert.Equal(t, entity.RoleAdmin, resp.Data.User.Role)
	assert.NotEqual(t, demo.TenantID, resp.Data.User.TenantID)

	status, _ = do(t, app, http.MethodPost, "/api/auth/register", "", in)
	assert.Equal(t, http.StatusConflict, status)
}

func TestLogout_RevocaToken(t *testing.T) {
	_, app, _ := seeded(t)
	data := login(t, app, mockapi.DemoUserEmail, mockapi.DemoUserPassword)

	status, _ := do(t, app, http.MethodPost, "/api/auth/logout", data.Token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodGet, "/api/auth/me", data.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRefresh_EmiteNuevoToken(t *testing.T) {
	srv, app, _ := seeded(t)
	data := login(t, app, mockapi.DemoAdminEmail, mockapi.DemoAdminPassword)
	srv.RevokeAll()

	status, body := do(t, app, http.MethodPost, "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: data.RefreshToken})
	require.Equal(t, http.StatusOK, status, string(body))
	fresh := decode[dto.AuthResponse](t, body)

	status, _ = do(t, app, http.MethodGet, "/api/auth/me", fresh.Data.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodPost, "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: data.Token})
	assert.Equal(t, http.StatusUnauthorized, status, "un token de acceso no sirve como refresh")
}

func TestAuthenticate_SinToken(t *testing.T) {
	_, app, _ := seeded(t)
	status, _ := do(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_ListadoPaginadoYFiltros(t *testing.T) {
	_, app, _ := seeded(t)
	token := login(t, app, mockapi.DemoAdminEmail, mockapi.DemoAdminPassword).Token

	status, body := do(t, app, http.MethodGet, "/api/products?page=1&limit=4", token, nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[dto.Paginated[entity.Product]](t, body)
	assert.Len(t, page.Data, 4)
	assert.Equal(t, 6, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	status, body = do(t, app, http.MethodGet, "/api/products?category=Granos", token, nil)
	require.Equal(t, http.StatusOK, status)
	page = decode[dto.Paginated[entity.Product]](t, body)
	assert.Len(t, page.Data, 2)
	for _, p := range page.Data {
		assert.NotEmpty(t, p.UnitName)
	}

	status, body = do(t, app, http.MethodGet, "/api/products/search?q=leche", token, nil)
	require.Equal(t, http.StatusOK, status)
	found := decode[dto.Envelope[[]entity.Product]](t, body)
	require.Len(t, found.Data, 1)
	assert.Equal(t, "LEC-1L", found.Data[0].SKU)
}

func TestProducts_CrudConRoles(t *testing.T) {
	_, app, _ := seeded(t)
	manager := login(t, app, mockapi.DemoManagerEmail, mockapi.DemoManagerPassword).Token
	user := login(t, app, mockapi.DemoUserEmail, mockapi.DemoUserPassword).Token

	in := dto.CreateProductRequest{Name: "Sal Refisal 1kg", SKU: "SAL-1K", CostPrice: decimal.NewFromInt(1200)}
	status, _ := do(t, app, http.MethodPost, "/api/products", user, in)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := do(t, app, http.MethodPost, "/api/products", manager, in)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[dto.Envelope[entity.Product]](t, body).Data

	status, _ = do(t, app, http.MethodPost, "/api/products", manager, in)
	assert.Equal(t, http.StatusConflict, status, "sku duplicado")

	name := "Sal Refisal 500g"
	status, body = do(t, app, http.MethodPatch, "/api/products/"+created.ID, manager, dto.UpdateProductRequest{Name: &name})
	require.Equal(t, http.StatusOK, status)
	updated := decode[dto.Envelope[entity.Product]](t, body).Data
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "SAL-1K", updated.SKU, "PATCH no toca campos ausentes")

	status, _ = do(t, app, http.MethodDelete, "/api/products/"+created.ID, manager, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = do(t, app, http.MethodGet, "/api/products/"+created.ID, manager, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProducts_AisladosPorTenant(t *testing.T) {
	_, app, demo := seeded(t)
	status, body := do(t, app, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Email: "otro@acme.co", Password: "secreta1", CompanyName: "Otro"})
	require.Equal(t, http.StatusCreated, status)
	other := decode[dto.AuthResponse](t, body).Data.Token

	status, _ = do(t, app, http.MethodGet, "/api/products/"+demo.Products["LEC-1L"], other, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnits_NoSeBorraEnUso(t *testing.T) {
	_, app, _ := seeded(t)
	token := login(t, app, mockapi.DemoAdminEmail, mockapi.DemoAdminPassword).Token

	status, body := do(t, app, http.MethodGet, "/api/units", token, nil)
	require.Equal(t, http.StatusOK, status)
	units := decode[dto.Envelope[[]entity.ProductUnit]](t, body).Data
	require.Len(t, units, 3)

	var inUse string
	for _, u := range units {
		if u.Abbreviation == "und" {
			inUse = u.ID
		}
	}
	status, _ = do(t, app, http.MethodDelete, "/api/units/"+inUse, token, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, app, http.MethodPost, "/api/units", token, dto.UnitRequest{Name: "Litro"})
	assert.Equal(t, http.StatusBadRequest, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventory_AddYReduce(t *testing.T) {
	_, app, demo := seeded(t)
	token := login(t, app, mockapi.DemoUserEmail, mockapi.DemoUserPassword).Token
	mv := dto.MovementRequest{ProductID: demo.Products["ARZ-500"], BatchID: demo.Batches["L-ARZ-01"], Quantity: decimal.NewFromInt(6)}

	status, body := do(t, app, http.MethodPost, "/api/inventory/add", token, mv)
	require.Equal(t, http.StatusOK, status, string(body))
	inv := decode[dto.Envelope[entity.Inventory]](t, body).Data
	assert.True(t, decimal.NewFromInt(10).Equal(inv.Quantity))

	mv.Quantity = decimal.NewFromInt(11)
	status, body = do(t, app, http.MethodPost, "/api/inventory/reduce", token, mv)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "insufficient_stock", decode[dto.Envelope[json.RawMessage]](t, body).Error)

	mv.Quantity = decimal.NewFromInt(3)
	status, _ = do(t, app, http.MethodPost, "/api/inventory/reduce", token, mv)
	require.Equal(t, http.StatusOK, status)

	status, body = do(t, app, http.MethodGet, "/api/inventory/logs?product_id="+mv.ProductID, token, nil)
	require.Equal(t, http.StatusOK, status)
	logs := decode[dto.Paginated[entity.InventoryLog]](t, body).Data
	require.Len(t, logs, 3)
	assert.Equal(t, entity.TransactionReduce, logs[0].TransactionType, "más reciente primero")
	assert.True(t, decimal.NewFromInt(-3).Equal(logs[0].QuantityChange))
}

func TestInventory_PorProducto(t *testing.T) {
	_, app, demo := seeded(t)
	token := login(t, app, mockapi.DemoAdminEmail, mockapi.DemoAdminPassword).Token

	status, body := do(t, app, http.MethodGet, "/api/inventory/product/"+demo.Products["PAN-500"], token, nil)
	require.Equal(t, http.StatusOK, status)
	details := decode[dto.Envelope[[]dto.InventoryDetails]](t, body).Data
	require.Len(t, details, 2)
	assert.True(t, decimal.NewFromInt(21000).Equal(details[0].TotalValue))
}

func TestBatches_CrearYActualizar(t *testing.T) {
	_, app, demo := seeded(t)
	token := login(t, app, mockapi.DemoAdminEmail, mockapi.DemoAdminPassword).Token

	status, _ := do(t, app, http.MethodPost, "/api/batches", token,
		dto.CreateBatchRequest{ProductID: demo.Products["CAF-250"], BatchNumber: "L-CAF-03", ExpiryDate: "31/12/2030"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := do(t, app, http.MethodPost, "/api/batches", token,
		dto.CreateBatchRequest{ProductID: demo.Products["CAF-250"], BatchNumber: "L-CAF-03", ExpiryDate: "2030-12-31", Cost: decimal.NewFromInt(8800)})
	require.Equal(t, http.StatusCreated, status, string(body))
	b := decode[dto.Envelope[entity.Batch]](t, body).Data

	status, body = do(t, app, http.MethodPut, "/api/batches/"+b.ID, token,
		dto.UpdateBatchRequest{BatchNumber: "L-CAF-03B", ExpiryDate: "2031-01-31", Cost: decimal.NewFromInt(8900)})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "L-CAF-03B", decode[dto.Envelope[entity.Batch]](t, body).Data.BatchNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_DatosDeDemo(t *testing.T) {
	_, app, _ := seeded(t)
	token := login(t, app, mockapi.DemoManagerEmail, mockapi.DemoManagerPassword).Token

	status, body := do(t, app, http.MethodGet, "/api/reports/low-stock", token, nil)
	require.Equal(t, http.StatusOK, status)
	low := decode[dto.Envelope[[]dto.LowStockItem]](t, body).Data
	require.Len(t, low, 3)
	assert.Equal(t, "AZU-1K", low[0].ProductSKU, "orden por cantidad ascendente")

	status, body = do(t, app, http.MethodGet, "/api/reports/expiring-batches?days=30", token, nil)
	require.Equal(t, http.StatusOK, status)
	exp := decode[dto.Envelope[[]dto.ExpiringBatch]](t, body).Data
	require.Len(t, exp, 2)
	assert.Equal(t, "L-LEC-07", exp[0].BatchNumber)
	assert.Equal(t, 5, exp[0].DaysUntilExpiry)

	status, body = do(t, app, http.MethodGet, "/api/reports/inventory-value", token, nil)
	require.Equal(t, http.StatusOK, status)
	value := decode[dto.Envelope[dto.InventoryValue]](t, body).Data
	assert.True(t, decimal.NewFromInt(632950).Equal(value.TotalValue), value.TotalValue.String())
	assert.Equal(t, 5, value.ProductCount)

	status, body = do(t, app, http.MethodGet, "/api/reports/dashboard-stats", token, nil)
	require.Equal(t, http.StatusOK, status)
	stats := decode[dto.Envelope[dto.DashboardStats]](t, body).Data
	assert.Equal(t, 6, stats.TotalProducts)
	assert.Equal(t, 3, stats.LowStockCount)
	assert.Equal(t, 2, stats.ExpiringBatches)
}

func TestReports_RolUserSinAcceso(t *testing.T) {
	_, app, _ := seeded(t)
	token := login(t, app, mockapi.DemoUserEmail, mockapi.DemoUserPassword).Token
	status, _ := do(t, app, http.MethodGet, "/api/reports/dashboard-stats", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestFailNext_UnaSolaVez(t *testing.T) {
	srv, app, _ := seeded(t)
	token := login(t, app, mockapi.DemoAdminEmail, mockapi.DemoAdminPassword).Token
	srv.FailNext("/api/reports/dashboard-stats", http.StatusInternalServerError, "boom")

	status, body := do(t, app, http.MethodGet, "/api/reports/dashboard-stats", token, nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "boom", string(body))

	status, _ = do(t, app, http.MethodGet, "/api/reports/dashboard-stats", token, nil)
	assert.Equal(t, http.StatusOK, status)
}
