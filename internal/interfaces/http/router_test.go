package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/operation"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/logger"
	"github.com/jhoicas/almacen-api/pkg/reference"
)

// apiClient arma la API completa sobre el store en memoria.
type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:       usecase.NewProductUseCase(repos.Products, repos.StockLevels),
		CategoryUC:      usecase.NewCategoryUseCase(store.Categories()),
		WarehouseUC:     usecase.NewWarehouseUseCase(store.Warehouses(), repos.Locations),
		OperationUC:     operation.NewUseCase(store, repos, reference.NewGenerator(), pdf.NewMarotoSlipGenerator("test"), logger.Nop(), operation.Config{}),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(repos.Products, repos.StockLevels),
		JWTSecret:       testJWTSecret,
	})
	return &apiClient{t: t, app: app, token: tokenForRole(t, "MANAGER")}
}

func (a *apiClient) as(role string) *apiClient {
	return &apiClient{t: a.t, app: a.app, token: tokenForRole(a.t, role)}
}

func (a *apiClient) do(method, path string, body any) (*http.Response, []byte) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", a.token)
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, out
}

func (a *apiClient) ok(method, path string, body any, status int, into any) {
	a.t.Helper()
	resp, raw := a.do(method, path, body)
	require.Equal(a.t, status, resp.StatusCode, "%s %s: %s", method, path, raw)
	if into != nil {
		require.NoError(a.t, json.Unmarshal(raw, into))
	}
}

// seed crea una bodega con dos ubicaciones internas y un producto.
func (a *apiClient) seed() (locA, locB, productID string) {
	var wh dto.WarehouseResponse
	a.ok(http.MethodPost, "/api/warehouses", fiber.Map{"name": "Central", "code": "WH1"}, http.StatusCreated, &wh)

	var la, lb dto.LocationResponse
	a.ok(http.MethodPost, "/api/locations", fiber.Map{"warehouse_id": wh.ID, "name": "Estante A", "code": "A"}, http.StatusCreated, &la)
	a.ok(http.MethodPost, "/api/locations", fiber.Map{"warehouse_id": wh.ID, "name": "Estante B", "code": "B"}, http.StatusCreated, &lb)

	var p dto.ProductResponse
	a.ok(http.MethodPost, "/api/products", fiber.Map{"sku": "P-001", "name": "Tornillo", "reorder_point": 20, "optimal_stock": 50}, http.StatusCreated, &p)
	return la.ID, lb.ID, p.ID
}

func TestHealth_SinToken(t *testing.T) {
	api := newAPI(t)
	resp, err := api.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_RequiereToken(t *testing.T) {
	api := newAPI(t)
	resp, err := api.app.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOperaciones_FlujoRecepcionDespacho(t *testing.T) {
	api := newAPI(t)
	locA, _, productID := api.seed()

	var receipt dto.DocumentResponse
	api.ok(http.MethodPost, "/api/operations/receipts", fiber.Map{
		"location_id": locA, "partner_name": "Proveedor SAS",
		"lines": []fiber.Map{{"product_id": productID, "quantity": 100}},
	}, http.StatusCreated, &receipt)
	assert.Equal(t, "DRAFT", receipt.Status)

	// STAFF no puede validar.
	resp, _ := api.as("STAFF").do(http.MethodPost, "/api/operations/receipts/"+receipt.ID+"/validate", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var done dto.DocumentResponse
	api.ok(http.MethodPost, "/api/operations/receipts/"+receipt.ID+"/validate", nil, http.StatusOK, &done)
	assert.Equal(t, "DONE", done.Status)
	assert.Equal(t, "100", done.Lines[0].DoneQty.String())

	// Validar dos veces → INVALID_STATE.
	resp, raw := api.do(http.MethodPost, "/api/operations/receipts/"+receipt.ID+"/validate", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "INVALID_STATE")

	// Despacho de 80 luego de consumir 30 → INSUFFICIENT_STOCK con detalle.
	var d1 dto.DocumentResponse
	api.ok(http.MethodPost, "/api/operations/deliveries", fiber.Map{
		"location_id": locA, "lines": []fiber.Map{{"product_id": productID, "quantity": 30}},
	}, http.StatusCreated, &d1)
	var d2 dto.DocumentResponse
	api.ok(http.MethodPost, "/api/operations/deliveries", fiber.Map{
		"location_id": locA, "lines": []fiber.Map{{"product_id": productID, "quantity": 80}},
	}, http.StatusCreated, &d2)
	api.ok(http.MethodPost, "/api/operations/deliveries/"+d1.ID+"/validate", nil, http.StatusOK, nil)

	resp, raw = api.do(http.MethodPost, "/api/operations/deliveries/"+d2.ID+"/validate", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var ise dto.InsufficientStockResponse
	require.NoError(t, json.Unmarshal(raw, &ise))
	assert.Equal(t, "INSUFFICIENT_STOCK", ise.Code)
	assert.Equal(t, productID, ise.ProductID)
	assert.Equal(t, locA, ise.LocationID)
	assert.Equal(t, "80", ise.Requested)
	assert.Equal(t, "70", ise.Available)

	var stock dto.ProductStockResponse
	api.ok(http.MethodGet, "/api/products/"+productID+"/stock", nil, http.StatusOK, &stock)
	require.Len(t, stock.Locations, 1)
	assert.Equal(t, "70", stock.Locations[0].Quantity.String())

	var moves []dto.StockMoveResponse
	api.ok(http.MethodGet, "/api/moves?product_id="+productID, nil, http.StatusOK, &moves)
	require.Len(t, moves, 2)
	assert.Equal(t, "DELIVERY", moves[0].MoveType)
	assert.Equal(t, "RECEIPT", moves[1].MoveType)

	var list dto.DocumentListResponse
	api.ok(http.MethodGet, "/api/operations/deliveries?status=DRAFT", nil, http.StatusOK, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, d2.ID, list.Items[0].ID)
	assert.Equal(t, 1, list.Page.Total)

	api.ok(http.MethodGet, "/api/operations/deliveries?limit=1", nil, http.StatusOK, &list)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 2, list.Page.Total, "el total cuenta todos los despachos, no solo la página")
}

func TestOperaciones_Errores(t *testing.T) {
	api := newAPI(t)
	locA, _, productID := api.seed()

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"tipo desconocido", http.MethodGet, "/api/operations/returns", nil, http.StatusNotFound, "NOT_FOUND"},
		{"documento inexistente", http.MethodGet, "/api/operations/receipts/no-existe", nil, http.StatusNotFound, "NOT_FOUND"},
		{"traslado misma ubicación", http.MethodPost, "/api/operations/transfers", fiber.Map{
			"from_location_id": locA, "to_location_id": locA,
			"lines": []fiber.Map{{"product_id": productID, "quantity": 1}},
		}, http.StatusBadRequest, "SAME_LOCATION"},
		{"sin líneas", http.MethodPost, "/api/operations/receipts", fiber.Map{"location_id": locA}, http.StatusBadRequest, "VALIDATION"},
		{"sku duplicado", http.MethodPost, "/api/products", fiber.Map{"sku": "P-001", "name": "Otro"}, http.StatusConflict, "DUPLICATE"},
		{"fecha inválida", http.MethodGet, "/api/moves?from=ayer", nil, http.StatusBadRequest, "VALIDATION"},
		{"estado inválido", http.MethodGet, "/api/operations/receipts?status=LISTO", nil, http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := api.do(tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(raw))
			assert.Contains(t, string(raw), tc.code)
		})
	}
}

func TestOperaciones_CancelarYComprobante(t *testing.T) {
	api := newAPI(t)
	locA, locB, productID := api.seed()

	var transfer dto.DocumentResponse
	api.ok(http.MethodPost, "/api/operations/receipts", fiber.Map{
		"location_id": locA, "lines": []fiber.Map{{"product_id": productID, "quantity": 10}},
	}, http.StatusCreated, &transfer)
	api.ok(http.MethodPost, "/api/operations/receipts/"+transfer.ID+"/validate", nil, http.StatusOK, nil)

	api.ok(http.MethodPost, "/api/operations/transfers", fiber.Map{
		"from_location_id": locA, "to_location_id": locB,
		"lines": []fiber.Map{{"product_id": productID, "quantity": 4}},
	}, http.StatusCreated, &transfer)

	resp, raw := api.do(http.MethodGet, "/api/operations/transfers/"+transfer.ID+"/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), transfer.Reference+".pdf")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	var cancelled dto.DocumentResponse
	api.as("STAFF").ok(http.MethodPost, "/api/operations/transfers/"+transfer.ID+"/cancel", nil, http.StatusOK, &cancelled)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	resp, raw = api.do(http.MethodPost, "/api/operations/transfers/"+transfer.ID+"/validate", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "INVALID_STATE")
}

func TestInventario_Reposicion(t *testing.T) {
	api := newAPI(t)
	locA, _, productID := api.seed()

	var receipt dto.DocumentResponse
	api.ok(http.MethodPost, "/api/operations/receipts", fiber.Map{
		"location_id": locA, "lines": []fiber.Map{{"product_id": productID, "quantity": 5}},
	}, http.StatusCreated, &receipt)
	api.ok(http.MethodPost, "/api/operations/receipts/"+receipt.ID+"/validate", nil, http.StatusOK, nil)

	var out struct {
		Total          int                              `json:"total"`
		Replenishments []dto.ReplenishmentSuggestionDTO `json:"replenishments"`
	}
	api.ok(http.MethodGet, "/api/inventory/replenishment", nil, http.StatusOK, &out)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "P-001", out.Replenishments[0].SKU)
	assert.Equal(t, "45", out.Replenishments[0].SuggestedOrderQty.String())
}

func TestProductos_BajaLogica(t *testing.T) {
	api := newAPI(t)
	_, _, productID := api.seed()

	api.ok(http.MethodDelete, "/api/products/"+productID, nil, http.StatusNoContent, nil)

	var list dto.ProductListResponse
	api.ok(http.MethodGet, "/api/products", nil, http.StatusOK, &list)
	assert.Empty(t, list.Items)
}

func TestProductos_StockAgregadoYBajoStock(t *testing.T) {
	api := newAPI(t)
	locA, _, productID := api.seed()

	var otro dto.ProductResponse
	api.ok(http.MethodPost, "/api/products", fiber.Map{"sku": "Q-001", "name": "Tuerca", "reorder_point": 5}, http.StatusCreated, &otro)

	var receipt dto.DocumentResponse
	api.ok(http.MethodPost, "/api/operations/receipts", fiber.Map{
		"location_id": locA, "lines": []fiber.Map{{"product_id": productID, "quantity": 15}, {"product_id": otro.ID, "quantity": 30}},
	}, http.StatusCreated, &receipt)
	api.ok(http.MethodPost, "/api/operations/receipts/"+receipt.ID+"/validate", nil, http.StatusOK, nil)

	var p dto.ProductResponse
	api.ok(http.MethodGet, "/api/products/"+productID, nil, http.StatusOK, &p)
	assert.Equal(t, "15", p.TotalStock.String())
	assert.Equal(t, "15", p.TotalAvailable.String())
	assert.True(t, p.IsLowStock, "15 <= punto de reorden 20")
	assert.False(t, p.IsOutOfStock)

	var list dto.ProductListResponse
	api.ok(http.MethodGet, "/api/products?lowStock=true", nil, http.StatusOK, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, productID, list.Items[0].ID)

	api.ok(http.MethodGet, "/api/products", nil, http.StatusOK, &list)
	assert.Len(t, list.Items, 2)
}

func TestCategorias_CrearYListar(t *testing.T) {
	api := newAPI(t)

	var c dto.CategoryResponse
	api.ok(http.MethodPost, "/api/categories", fiber.Map{"name": "Ferretería", "description": "tornillería"}, http.StatusCreated, &c)
	assert.Equal(t, "Ferretería", c.Name)

	resp, raw := api.do(http.MethodPost, "/api/categories", fiber.Map{"name": "Ferretería"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "DUPLICATE")

	api.ok(http.MethodPost, "/api/products", fiber.Map{"sku": "TOR-1", "name": "Tornillo", "category": "Ferretería"}, http.StatusCreated, nil)

	var list []dto.CategoryResponse
	api.ok(http.MethodGet, "/api/categories", nil, http.StatusOK, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ProductCount)
}
