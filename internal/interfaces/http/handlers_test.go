package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

type testEnv struct {
	app       *fiber.App
	contador  string
	bodeguero string
}

func newTestEnv(t *testing.T, rateLimit int) *testEnv {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	authUC := auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	cont, err := authUC.RegisterUser(ctx, dto.RegisterRequest{Username: "contadora", Password: "secreto123", Role: entity.RoleContador})
	require.NoError(t, err)
	bod, err := authUC.RegisterUser(ctx, dto.RegisterRequest{Username: "bodega1", Password: "secreto123"})
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:         usecase.NewProductUseCase(s, s.Products(), s.Categories(), s.Units(), nil, nil),
		CategoryUC:        usecase.NewCategoryUseCase(s.Categories(), nil),
		UnitUC:            usecase.NewUnitUseCase(s.Units(), nil),
		UserUC:            usecase.NewUserUseCase(s.Users()),
		ReportCodeUC:      usecase.NewReportCodeUseCase(s.ReportCodes()),
		RegisterMovement:  inventory.NewRegisterMovementUseCase(s, s.Products(), s.Movements(), nil, nil),
		Report:            inventory.NewReportUseCase(s.Products(), s.Movements(), s.ReportCodes(), nil, nil),
		AuthUC:            authUC,
		JWTSecret:         testJWTSecret,
		Location:          time.UTC,
		PasswordRateLimit: rateLimit,
	})
	return &testEnv{
		app:       app,
		contador:  tokenForRole(t, cont.ID, entity.RoleContador),
		bodeguero: tokenForRole(t, bod.ID, entity.RoleBodeguero),
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) createProduct(t *testing.T, name string, price int64) dto.ProductResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/products", e.bodeguero, map[string]any{"name": name, "price": price})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

func (e *testEnv) move(t *testing.T, kind, productID string, qty any) *http.Response {
	t.Helper()
	return e.do(t, http.MethodPost, "/api/inventory/"+kind, e.bodeguero, map[string]any{"product_id": productID, "quantity": qty})
}

func TestMovements_EntradaSalidaYStockInsuficiente(t *testing.T) {
	env := newTestEnv(t, 10)
	p := env.createProduct(t, "Arroz", 2)
	assert.Len(t, p.Code, 13)
	assert.True(t, p.Quantity.IsZero())

	in := decode[dto.MovementResponse](t, env.move(t, "inputs", p.ID, 10))
	assert.Equal(t, entity.MovementTypeIN, in.Type)
	assert.True(t, decimal.NewFromInt(10).Equal(in.RunningBalance))

	resp := env.move(t, "outputs", p.ID, 15)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)

	out := decode[dto.MovementResponse](t, env.move(t, "outputs", p.ID, "4.5"))
	assert.True(t, decimal.RequireFromString("5.5").Equal(out.RunningBalance))

	got := decode[dto.ProductResponse](t, env.do(t, http.MethodGet, "/api/products/"+p.ID, env.bodeguero, nil))
	assert.True(t, decimal.RequireFromString("5.5").Equal(got.Quantity))

	history := decode[dto.MovementListResponse](t, env.do(t, http.MethodGet, "/api/inventory/movements?product_id="+p.ID, env.bodeguero, nil))
	require.Equal(t, 2, history.Total)
	assert.Equal(t, entity.MovementTypeIN, history.Items[0].Type)
	assert.Equal(t, entity.MovementTypeOUT, history.Items[1].Type)

	outputs := decode[dto.MovementListResponse](t, env.do(t, http.MethodGet, "/api/inventory/outputs?product_id="+p.ID, env.bodeguero, nil))
	assert.Equal(t, 1, outputs.Total)

	check := decode[dto.LedgerCheckResponse](t, env.do(t, http.MethodGet, "/api/inventory/verify/"+p.ID, env.contador, nil))
	assert.True(t, check.Consistent)
	assert.Equal(t, 2, check.Movements)
}

func TestMovements_Errores(t *testing.T) {
	env := newTestEnv(t, 10)
	p := env.createProduct(t, "Frijol", 3)

	cases := []struct {
		name      string
		productID string
		qty       any
		status    int
		code      string
	}{
		{"cantidad cero", p.ID, 0, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"cantidad negativa", p.ID, -2, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"tres decimales", p.ID, "1.005", http.StatusBadRequest, "INVALID_QUANTITY"},
		{"producto inexistente", "00000000-0000-0000-0000-000000000000", 1, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"id no uuid", "abc", 1, http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.move(t, "inputs", tc.productID, tc.qty)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, resp).Code)
		})
	}

	resp := env.do(t, http.MethodPost, "/api/inventory/inputs", "", map[string]any{"product_id": p.ID, "quantity": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_CRUDYEtiquetas(t *testing.T) {
	env := newTestEnv(t, 10)

	resp := env.do(t, http.MethodPost, "/api/products", env.bodeguero, map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	p := env.createProduct(t, "Azúcar", 5)

	byCode := decode[dto.ProductResponse](t, env.do(t, http.MethodGet, "/api/products?code="+p.Code, env.bodeguero, nil))
	assert.Equal(t, p.ID, byCode.ID)

	updated := decode[dto.ProductResponse](t, env.do(t, http.MethodPut, "/api/products/"+p.ID, env.bodeguero, map[string]any{"name": "Azúcar morena"}))
	assert.Equal(t, "Azúcar morena", updated.Name)
	assert.Equal(t, p.Code, updated.Code)

	resp = env.do(t, http.MethodGet, "/api/products/"+p.ID+"/label.pdf?copies=3", env.bodeguero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = env.do(t, http.MethodDelete, "/api/products/"+p.ID, env.bodeguero, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	list := decode[dto.ProductListResponse](t, env.do(t, http.MethodGet, "/api/products", env.bodeguero, nil))
	assert.Empty(t, list.Items)
	list = decode[dto.ProductListResponse](t, env.do(t, http.MethodGet, "/api/products?include_deleted=true", env.bodeguero, nil))
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].IsDeleted)

	resp = env.move(t, "inputs", p.ID, 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCategories_DuplicadoYBorrado(t *testing.T) {
	env := newTestEnv(t, 10)

	resp := env.do(t, http.MethodPost, "/api/categories", env.contador, dto.CatalogRequest{Name: "Lácteos"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decode[dto.CatalogResponse](t, resp)

	resp = env.do(t, http.MethodPost, "/api/categories", env.contador, dto.CatalogRequest{Name: "lácteos"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodPost, "/api/products", env.bodeguero, map[string]any{"name": "Queso", "category_id": cat.ID, "price": 9})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "Lácteos", p.CategoryName)

	resp = env.do(t, http.MethodDelete, "/api/categories/"+cat.ID, env.contador, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/categories/"+cat.ID, env.contador, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	got := decode[dto.ProductResponse](t, env.do(t, http.MethodGet, "/api/products/"+p.ID, env.bodeguero, nil))
	assert.Empty(t, got.CategoryID)
}

func TestReport_FormatosYFechas(t *testing.T) {
	env := newTestEnv(t, 10)
	p := env.createProduct(t, "Café", 4)
	env.move(t, "inputs", p.ID, 10).Body.Close()
	env.move(t, "outputs", p.ID, 3).Body.Close()

	report := decode[dto.ReportResponse](t, env.do(t, http.MethodGet, "/api/reports/stock", env.bodeguero, nil))
	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.True(t, row.BeginningQuantity.IsZero())
	assert.True(t, decimal.NewFromInt(10).Equal(row.GoodsInQuantity))
	assert.True(t, decimal.NewFromInt(3).Equal(row.GoodsOutQuantity))
	assert.True(t, decimal.NewFromInt(7).Equal(row.EndingQuantity))
	assert.True(t, decimal.NewFromInt(28).Equal(row.EndingPrice))

	for _, q := range []string{"start_date=2024-01-01", "date=2024-01-01&start_date=2024-01-01", "start_date=2024-02-01&end_date=2024-01-01", "date=ayer"} {
		resp := env.do(t, http.MethodGet, "/api/reports/stock?"+q, env.bodeguero, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "INVALID_DATE_RANGE", decode[dto.ErrorResponse](t, resp).Code, q)
	}

	empty := decode[dto.ReportResponse](t, env.do(t, http.MethodGet, "/api/reports/stock?date=2000-01-01", env.bodeguero, nil))
	assert.NotNil(t, empty.Rows)
	assert.Empty(t, empty.Rows)

	resp := env.do(t, http.MethodGet, "/api/reports/stock?format=csv", env.bodeguero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv"))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), p.Code)

	resp = env.do(t, http.MethodGet, "/api/reports/stock?format=xml", env.bodeguero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, resp.Header.Get(apphttp.HeaderReportDigest), 64)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/reports/stock?format=pdf", env.bodeguero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = env.do(t, http.MethodGet, "/api/reports/stock?format=docx", env.bodeguero, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSharedReport_ContraseñaYRoles(t *testing.T) {
	env := newTestEnv(t, 10)
	p := env.createProduct(t, "Harina", 1)
	env.move(t, "inputs", p.ID, 2).Body.Close()

	resp := env.do(t, http.MethodGet, "/api/reports/stock/shared", "", nil, apphttp.HeaderReportPassword, "1234")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPut, "/api/report-code", env.bodeguero, dto.ReportCodeRequest{Password: "1234"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPut, "/api/report-code", env.contador, dto.ReportCodeRequest{Password: "1234"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ReportCodeResponse](t, resp).IsSet)

	report := decode[dto.ReportResponse](t, env.do(t, http.MethodGet, "/api/reports/stock/shared", "", nil, apphttp.HeaderReportPassword, "1234"))
	require.Len(t, report.Rows, 1)
	assert.Equal(t, p.ID, report.Rows[0].ProductID)

	resp = env.do(t, http.MethodGet, "/api/reports/stock/shared", "", nil, apphttp.HeaderReportPassword, "9999")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSharedReport_RateLimit(t *testing.T) {
	env := newTestEnv(t, 2)
	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodGet, "/api/reports/stock/shared", "", nil, apphttp.HeaderReportPassword, "x")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	}
	resp := env.do(t, http.MethodGet, "/api/reports/stock/shared", "", nil, apphttp.HeaderReportPassword, "x")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_SoloContador(t *testing.T) {
	env := newTestEnv(t, 10)

	resp := env.do(t, http.MethodGet, "/api/users", env.bodeguero, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/users", env.contador, dto.CreateUserRequest{Username: "bodega2", Password: "secreto123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.UserResponse](t, resp)
	assert.Equal(t, entity.RoleBodeguero, created.Role)

	users := decode[[]dto.UserResponse](t, env.do(t, http.MethodGet, "/api/users", env.contador, nil))
	assert.Len(t, users, 2)

	resp = env.do(t, http.MethodPost, "/api/users", env.contador, dto.CreateUserRequest{Username: "bodega2", Password: "secreto123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	me := decode[dto.UserResponse](t, env.do(t, http.MethodGet, "/api/users/me", env.bodeguero, nil))
	assert.Equal(t, "bodega1", me.Username)

	resp = env.do(t, http.MethodPost, "/api/auth/register", env.bodeguero, dto.RegisterRequest{Username: "intruso", Password: "secreto123", Role: entity.RoleContador})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, 10)

	out := decode[dto.LoginResponse](t, env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "bodega1", Password: "secreto123"}))
	require.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleBodeguero, out.User.Role)

	resp := env.do(t, http.MethodGet, "/api/users/me", "Bearer "+out.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "bodega1", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
