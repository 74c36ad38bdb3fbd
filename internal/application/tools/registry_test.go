package tools_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-chatbot/internal/application/inventory/inventorytest"
	"github.com/jhoicas/inventario-chatbot/internal/application/knowledge"
	"github.com/jhoicas/inventario-chatbot/internal/application/tools"
	"github.com/jhoicas/inventario-chatbot/internal/domain/entity"
	"github.com/jhoicas/inventario-chatbot/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newCatalog(t *testing.T) (*tools.Registry, *inventorytest.Store) {
	t.Helper()
	store := inventorytest.NewStore()
	uc := store.NewUseCase()
	_, err := uc.Initialize(context.Background(), true)
	require.NoError(t, err)
	reg := tools.NewCatalog(logger.Nop(), uc, knowledge.NewLookupUseCase(knowledge.DefaultCorpus()))
	return reg, store
}

func call(t *testing.T, reg *tools.Registry, name string, args any) string {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return reg.Invoke(context.Background(), name, raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de herramientas
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalog_DefinicionesEnOrden(t *testing.T) {
	reg, _ := newCatalog(t)

	defs := reg.Definitions()
	var got []string
	for _, d := range defs {
		got = append(got, d.Name)
		assert.NotEmpty(t, d.Description, d.Name)
		assert.Equal(t, "object", d.Parameters["type"], d.Name)
	}
	assert.Equal(t, []string{
		tools.ToolQueryStock, tools.ToolUpdateStock, tools.ToolSuggestSimilar,
		tools.ToolCreateProduct, tools.ToolLookupDocuments,
	}, got)
	assert.True(t, reg.Has(tools.ToolQueryStock))
	assert.False(t, reg.Has("borrar_producto"))
}

func TestRegistry_RechazaDuplicadosYVacios(t *testing.T) {
	reg := tools.NewRegistry(logger.Nop())
	h := func(context.Context, json.RawMessage) string { return "ok" }

	require.NoError(t, reg.Register(tools.Tool{Name: "eco", Handler: h}))
	assert.Error(t, reg.Register(tools.Tool{Name: "eco", Handler: h}))
	assert.Error(t, reg.Register(tools.Tool{Name: "", Handler: h}))
	assert.Error(t, reg.Register(tools.Tool{Name: "sin_handler"}))
	assert.Panics(t, func() { reg.MustRegister(tools.Tool{Name: "eco", Handler: h}) })
}

func TestInvoke_HerramientaDesconocida(t *testing.T) {
	reg, _ := newCatalog(t)

	got := reg.Invoke(context.Background(), "borrar_producto", nil)
	assert.True(t, strings.HasPrefix(got, tools.SentinelUnknownTool))
}

func TestInvoke_RegistraResultadoEnLog(t *testing.T) {
	var buf bytes.Buffer
	store := inventorytest.NewStore()
	reg := tools.NewCatalog(logger.NewWithWriter(&buf, "info"), store.NewUseCase(),
		knowledge.NewLookupUseCase(knowledge.DefaultCorpus()))

	reg.Invoke(context.Background(), tools.ToolQueryStock, json.RawMessage(`{"name":"Taladro"}`))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, tools.ToolQueryStock, entry["tool"])
	assert.Equal(t, tools.SentinelProductNotFound, entry["outcome"])
	assert.Equal(t, "tools", entry["component"])
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, tools.SentinelProductNotFound, tools.Outcome("PRODUCT_NOT_FOUND: x"))
	assert.Equal(t, tools.OutcomeOK, tools.Outcome("El stock actual de 'x' es 3. Se encuentra en: A."))
	assert.Equal(t, tools.OutcomeOK, tools.Outcome("Inventario actualizado: Se han añadido 3 unidades"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de argumentos
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoke_ArgumentosInvalidos(t *testing.T) {
	reg, store := newCatalog(t)
	ctx := context.Background()

	cases := []struct {
		label string
		tool  string
		raw   string
	}{
		{"json roto", tools.ToolQueryStock, `{"name":`},
		{"sin nombre", tools.ToolQueryStock, `{}`},
		{"null", tools.ToolQueryStock, `null`},
		{"delta no entero", tools.ToolUpdateStock, `{"name":"Martillo Bicolor 500g","delta":"diez"}`},
		{"stock negativo", tools.ToolCreateProduct, `{"name":"Nuevo","initial_stock":-3}`},
	}
	for _, tc := range cases {
		got := reg.Invoke(ctx, tc.tool, json.RawMessage(tc.raw))
		assert.True(t, strings.HasPrefix(got, tools.SentinelInvalidInput), "%s: %s", tc.label, got)
	}
	assert.Zero(t, store.MovementCount())
	assert.Nil(t, store.Snapshot("Nuevo"))
}

func TestInvoke_ValidacionUsaNombreJSON(t *testing.T) {
	reg, _ := newCatalog(t)

	got := reg.Invoke(context.Background(), tools.ToolLookupDocuments, json.RawMessage(`{}`))
	assert.Contains(t, got, "question no cumple required")
}

// ──────────────────────────────────────────────────────────────────────────────
// query_stock / update_stock
// ──────────────────────────────────────────────────────────────────────────────

func TestQueryStock_ProductoSembrado(t *testing.T) {
	reg, _ := newCatalog(t)

	got := call(t, reg, tools.ToolQueryStock, map[string]any{"name": "Martillo Bicolor 500g"})
	assert.Equal(t, "El stock actual de 'Martillo Bicolor 500g' es 25. Se encuentra en: B2-01. El costo unitario es $18.50.", got)
}

func TestQueryStockYUpdateStock_NoEncontrado(t *testing.T) {
	reg, store := newCatalog(t)

	for _, got := range []string{
		call(t, reg, tools.ToolQueryStock, map[string]any{"name": "Taladro"}),
		call(t, reg, tools.ToolUpdateStock, map[string]any{"name": "Taladro", "delta": 4}),
	} {
		assert.True(t, strings.HasPrefix(got, tools.SentinelProductNotFound+":"), got)
		assert.Contains(t, got, "'Taladro'")
	}
	assert.Zero(t, store.MovementCount())
}

func TestUpdateStock_EntradaYSalida(t *testing.T) {
	reg, store := newCatalog(t)

	got := call(t, reg, tools.ToolUpdateStock, map[string]any{"name": "Tornillo M4 x 10mm", "delta": 80})
	assert.Equal(t, "Inventario actualizado: Se han añadido 80 unidades de 'Tornillo M4 x 10mm'. El nuevo stock es 580.", got)

	got = call(t, reg, tools.ToolUpdateStock, map[string]any{"name": "Tornillo M4 x 10mm", "delta": -80})
	assert.Equal(t, "Inventario actualizado: Se han reducido 80 unidades de 'Tornillo M4 x 10mm'. El nuevo stock es 500.", got)

	p := store.Snapshot("Tornillo M4 x 10mm")
	movs := store.MovementsOf(p.ID)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, entity.MovementTypeOUT, movs[1].Type)
	assert.Equal(t, 80, movs[1].Quantity)
}

func TestUpdateStock_DeltaCero(t *testing.T) {
	reg, store := newCatalog(t)

	got := call(t, reg, tools.ToolUpdateStock, map[string]any{"name": "Martillo Bicolor 500g", "delta": 0})
	assert.True(t, strings.HasPrefix(got, tools.SentinelNoOp+":"), got)
	assert.Zero(t, store.MovementCount())
	assert.Equal(t, 25, store.Snapshot("Martillo Bicolor 500g").StockQuantity)
}

func TestUpdateStock_DeltaFueraDeRango(t *testing.T) {
	reg, store := newCatalog(t)

	got := call(t, reg, tools.ToolUpdateStock, map[string]any{"name": "Martillo Bicolor 500g", "delta": int64(1) << 40})
	assert.True(t, strings.HasPrefix(got, tools.SentinelInvalidInput+":"), got)
	assert.Contains(t, got, "1099511627776")
	assert.Zero(t, store.MovementCount())
	assert.Equal(t, 25, store.Snapshot("Martillo Bicolor 500g").StockQuantity)
}

func TestUpdateStock_FalloDeAlmacen(t *testing.T) {
	reg, store := newCatalog(t)
	store.FailAddStock = errors.New("timeout de red")

	got := call(t, reg, tools.ToolUpdateStock, map[string]any{"name": "Martillo Bicolor 500g", "delta": 3})
	assert.True(t, strings.HasPrefix(got, tools.SentinelStorageFailure+":"), got)
	assert.Contains(t, got, "timeout de red")
}

// ──────────────────────────────────────────────────────────────────────────────
// create_product
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_ExitoYConsulta(t *testing.T) {
	reg, _ := newCatalog(t)

	got := call(t, reg, tools.ToolCreateProduct, map[string]any{
		"name": "Taladro Percutor 650W", "initial_stock": 7, "unit_cost": 89.9, "location": "D1-01",
	})
	assert.Equal(t, "CREATION_SUCCESS: Producto 'Taladro Percutor 650W' creado con stock inicial de 7, costo unitario de $89.90 y ubicación D1-01.", got)

	got = call(t, reg, tools.ToolQueryStock, map[string]any{"name": "Taladro Percutor 650W"})
	assert.Equal(t, "El stock actual de 'Taladro Percutor 650W' es 7. Se encuentra en: D1-01. El costo unitario es $89.90.", got)
}

func TestCreateProduct_UbicacionPorDefecto(t *testing.T) {
	reg, _ := newCatalog(t)

	got := call(t, reg, tools.ToolCreateProduct, map[string]any{"name": "Lija Grano 120"})
	assert.Contains(t, got, "ubicación "+entity.LocationUnassigned)
	assert.Contains(t, got, "$0.00")
}

func TestCreateProduct_Duplicado(t *testing.T) {
	reg, store := newCatalog(t)

	got := call(t, reg, tools.ToolCreateProduct, map[string]any{"name": "Martillo Bicolor 500g", "initial_stock": 1})
	assert.True(t, strings.HasPrefix(got, tools.SentinelDuplicateName+":"), got)
	assert.Equal(t, 25, store.Snapshot("Martillo Bicolor 500g").StockQuantity)
}

func TestCreateProduct_NombreEnBlanco(t *testing.T) {
	reg, _ := newCatalog(t)

	got := call(t, reg, tools.ToolCreateProduct, map[string]any{"name": "   "})
	assert.True(t, strings.HasPrefix(got, tools.SentinelInvalidInput+":"), got)
}

func TestCreateProduct_FalloDeAlmacen(t *testing.T) {
	reg, store := newCatalog(t)
	store.FailCreateProduct = errors.New("too many connections")

	got := call(t, reg, tools.ToolCreateProduct, map[string]any{"name": "Clavos 2in"})
	assert.True(t, strings.HasPrefix(got, tools.SentinelStorageFailure+":"), got)
	assert.Contains(t, got, "too many connections")
}

// ──────────────────────────────────────────────────────────────────────────────
// suggest_similar / lookup_documents
// ──────────────────────────────────────────────────────────────────────────────

func TestSuggestSimilar_Encontradas(t *testing.T) {
	reg, store := newCatalog(t)
	store.Put(entity.Product{Name: "Manzanas Rojas"})
	store.Put(entity.Product{Name: "Manzanas Verdes"})

	got := call(t, reg, tools.ToolSuggestSimilar, map[string]any{"name": "Manzanas"})
	assert.True(t, strings.HasPrefix(got, `SUGGESTIONS_FOUND: "Manzanas Rojas, Manzanas Verdes".`), got)
}

func TestSuggestSimilar_NoEncontradas(t *testing.T) {
	reg, _ := newCatalog(t)

	got := call(t, reg, tools.ToolSuggestSimilar, map[string]any{"name": "Zzz"})
	assert.True(t, strings.HasPrefix(got, tools.SentinelSuggestionsNotFound+":"), got)
}

func TestLookupDocuments(t *testing.T) {
	reg, _ := newCatalog(t)

	got := call(t, reg, tools.ToolLookupDocuments, map[string]any{"question": "¿Cuál es la política de devoluciones?"})
	assert.Equal(t, "RETRIEVED_CONTEXT: La política de devoluciones establece un plazo de 30 días con el embalaje original.", got)

	got = call(t, reg, tools.ToolLookupDocuments, map[string]any{"question": "¿Qué hago con mercancía con daños?"})
	assert.True(t, strings.HasPrefix(got, tools.SentinelRetrievedContext+": "), got)
	assert.Contains(t, got, "Formulario 34B")

	for i := 0; i < 2; i++ {
		got = call(t, reg, tools.ToolLookupDocuments, map[string]any{"question": "¿Quién ganó el partido?"})
		assert.True(t, strings.HasPrefix(got, tools.SentinelKnowledgeNotFound+":"), got)
	}

	got = call(t, reg, tools.ToolLookupDocuments, map[string]any{"question": "¿Puedes averiguar a qué hora abre la tienda?"})
	assert.True(t, strings.HasPrefix(got, tools.SentinelKnowledgeNotFound+":"), got)
}
