package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-chatbot/internal/application/dto"
	"github.com/jhoicas/inventario-chatbot/internal/application/inventory/inventorytest"
	"github.com/jhoicas/inventario-chatbot/internal/application/knowledge"
	"github.com/jhoicas/inventario-chatbot/internal/application/tools"
	apphttp "github.com/jhoicas/inventario-chatbot/internal/interfaces/http"
	"github.com/jhoicas/inventario-chatbot/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el almacén en memoria con el catálogo sembrado.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := inventorytest.NewStore()
	uc := store.NewUseCase()
	_, err := uc.Initialize(context.Background(), true)
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Tools:       tools.NewCatalog(logger.Nop(), uc, knowledge.NewLookupUseCase(knowledge.DefaultCorpus())),
		Inventory:   uc,
		Log:         logger.Nop(),
		ServiceName: "inventario-chatbot",
	})
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request, out any) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func postTool(t *testing.T, app *fiber.App, name, body string) (int, dto.ToolResultResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/"+name, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	var out dto.ToolResultResponse
	status := do(t, app, req, &out)
	return status, out
}

// ──────────────────────────────────────────────────────────────────────────────
// /health
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)

	var out map[string]string
	status := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil), &out)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]string{"status": "ok", "service": "inventario-chatbot"}, out)
}

func TestHealth_SinNombreDeServicio(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{})

	var out map[string]string
	status := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil), &out)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", out["status"])
}

// ──────────────────────────────────────────────────────────────────────────────
// /api/tools
// ──────────────────────────────────────────────────────────────────────────────

func TestListTools(t *testing.T) {
	app := buildTestApp(t)

	var out dto.ToolListResponse
	status := do(t, app, httptest.NewRequest(http.MethodGet, "/api/tools", nil), &out)

	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, out.Items, 5)
	assert.Equal(t, tools.ToolQueryStock, out.Items[0].Name)
	assert.Equal(t, tools.ToolLookupDocuments, out.Items[4].Name)
}

func TestInvokeTool_FlujoCompleto(t *testing.T) {
	app := buildTestApp(t)

	status, out := postTool(t, app, tools.ToolUpdateStock, `{"name":"Martillo Bicolor 500g","delta":5}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, tools.ToolUpdateStock, out.Tool)
	assert.Contains(t, out.Result, "El nuevo stock es 30.")

	_, out = postTool(t, app, tools.ToolQueryStock, `{"name":"Martillo Bicolor 500g"}`)
	assert.Contains(t, out.Result, "es 30.")
}

func TestInvokeTool_MarcadoresVuelvenCon200(t *testing.T) {
	app := buildTestApp(t)

	status, out := postTool(t, app, tools.ToolQueryStock, `{"name":"Taladro"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, strings.HasPrefix(out.Result, tools.SentinelProductNotFound), out.Result)

	status, out = postTool(t, app, tools.ToolUpdateStock, `{"name":`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, strings.HasPrefix(out.Result, tools.SentinelInvalidInput), out.Result)
}

func TestInvokeTool_SinCuerpo(t *testing.T) {
	app := buildTestApp(t)

	status, out := postTool(t, app, tools.ToolLookupDocuments, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, strings.HasPrefix(out.Result, tools.SentinelInvalidInput), out.Result)
}

func TestInvokeTool_Desconocida(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tools/borrar_todo", strings.NewReader(`{}`))
	var out dto.ErrorResponse
	status := do(t, app, req, &out)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, tools.SentinelUnknownTool, out.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// /api/inventory
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStock(t *testing.T) {
	app := buildTestApp(t)

	var p dto.ProductResponse
	status := do(t, app, httptest.NewRequest(http.MethodGet, "/api/inventory/stock?name=Cinta%20M%C3%A9trica%205m", nil), &p)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 30, p.StockQuantity)
	assert.Equal(t, "C1-02", p.Location)
	assert.Equal(t, "7.9", p.UnitCost.String())
}

func TestGetStock_Errores(t *testing.T) {
	app := buildTestApp(t)

	var e dto.ErrorResponse
	status := do(t, app, httptest.NewRequest(http.MethodGet, "/api/inventory/stock?name=Taladro", nil), &e)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", e.Code)

	status = do(t, app, httptest.NewRequest(http.MethodGet, "/api/inventory/stock", nil), &e)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", e.Code)
}

func TestListMovements(t *testing.T) {
	app := buildTestApp(t)

	postTool(t, app, tools.ToolUpdateStock, `{"name":"Tornillo M4 x 10mm","delta":100}`)
	postTool(t, app, tools.ToolUpdateStock, `{"name":"Tornillo M4 x 10mm","delta":-40}`)

	var out dto.MovementListResponse
	status := do(t, app, httptest.NewRequest(http.MethodGet, "/api/inventory/movements?name=Tornillo%20M4%20x%2010mm&limit=500", nil), &out)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 560, out.Product.StockQuantity)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "SALIDA", out.Items[0].Type)
	assert.Equal(t, 40, out.Items[0].Quantity)
	assert.Equal(t, 100, out.Page.Limit)
	assert.Equal(t, 2, out.Page.Total)
}
