package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/inventario-chatbot/internal/application/dto"
	"github.com/jhoicas/inventario-chatbot/internal/application/inventory"
	"github.com/jhoicas/inventario-chatbot/internal/domain"
)

// Nombres de las herramientas de inventario.
const (
	ToolQueryStock     = "query_stock"
	ToolUpdateStock    = "update_stock"
	ToolSuggestSimilar = "suggest_similar"
	ToolCreateProduct  = "create_product"
)

// InventoryTools expone el almacén como herramientas de texto para el agente.
type InventoryTools struct {
	uc *inventory.UseCase
}

// NewInventoryTools construye el adaptador.
func NewInventoryTools(uc *inventory.UseCase) *InventoryTools {
	return &InventoryTools{uc: uc}
}

// Tools devuelve las cuatro herramientas de inventario con sus esquemas.
func (h *InventoryTools) Tools(v *validator.Validate) []Tool {
	nameProp := map[string]any{
		"type":        "string",
		"description": "Nombre exacto del producto tal como lo escribió el usuario.",
	}
	return []Tool{
		{
			Name: ToolQueryStock,
			Description: "CONSULTA. Úsala cuando el usuario pregunte por la cantidad, ubicación o costo de un producto existente. " +
				"Devuelve stock, ubicación y costo unitario, o PRODUCT_NOT_FOUND si el nombre no existe.",
			Parameters: objectSchema(map[string]any{"name": nameProp}, "name"),
			Handler:    Bind(v, h.QueryStock),
		},
		{
			Name: ToolUpdateStock,
			Description: "ACTUALIZACIÓN. Úsala para registrar entradas (delta positivo) o salidas (delta negativo) de un producto existente. " +
				"Devuelve el nuevo stock, o PRODUCT_NOT_FOUND si el nombre no existe; en ese caso usa suggest_similar.",
			Parameters: objectSchema(map[string]any{
				"name": nameProp,
				"delta": map[string]any{
					"type":        "integer",
					"description": "Unidades a sumar (positivo) o restar (negativo). No puede ser cero.",
				},
			}, "name", "delta"),
			Handler: Bind(v, h.UpdateStock),
		},
		{
			Name: ToolSuggestSimilar,
			Description: "DIAGNÓSTICO. Úsala solo cuando query_stock o update_stock devolvieron PRODUCT_NOT_FOUND. " +
				"Busca nombres parecidos para sugerir correcciones: SUGGESTIONS_FOUND o SUGGESTIONS_NOT_FOUND.",
			Parameters: objectSchema(map[string]any{"name": nameProp}, "name"),
			Handler:    Bind(v, h.SuggestSimilar),
		},
		{
			Name: ToolCreateProduct,
			Description: "CREACIÓN. Úsala solo para un producto totalmente nuevo, después de que suggest_similar no encontró nada " +
				"o el usuario rechazó las sugerencias. Devuelve CREATION_SUCCESS o DUPLICATE_NAME.",
			Parameters: objectSchema(map[string]any{
				"name": nameProp,
				"initial_stock": map[string]any{
					"type":        "integer",
					"minimum":     0,
					"description": "Unidades recibidas inicialmente. Por defecto 0.",
				},
				"unit_cost": map[string]any{
					"type":        "number",
					"minimum":     0,
					"description": "Costo de compra por unidad. Por defecto 0.",
				},
				"location": map[string]any{
					"type":        "string",
					"description": "Ubicación física en bodega. Omitir si el usuario no la menciona (queda PENDIENTE).",
				},
			}, "name"),
			Handler: Bind(v, h.CreateProduct),
		},
	}
}

// QueryStock informa stock, ubicación y costo de un producto.
func (h *InventoryTools) QueryStock(ctx context.Context, args dto.QueryStockArgs) string {
	p, err := h.uc.GetStock(ctx, args.Name)
	switch {
	case err == nil:
		return fmt.Sprintf("El stock actual de '%s' es %d. Se encuentra en: %s. El costo unitario es $%s.",
			p.Name, p.StockQuantity, p.Location, p.UnitCost.StringFixed(2))
	case errors.Is(err, domain.ErrNotFound):
		return productNotFound(args.Name)
	case errors.Is(err, domain.ErrInvalidInput):
		return invalidInput("el nombre del producto es obligatorio.")
	default:
		return storageFailure("consultar el stock", err)
	}
}

// UpdateStock aplica un delta de stock y confirma el nuevo saldo.
func (h *InventoryTools) UpdateStock(ctx context.Context, args dto.UpdateStockArgs) string {
	out, err := h.uc.UpdateStock(ctx, args.Name, args.Delta)
	switch {
	case err == nil:
		action, units := "añadido", out.Delta
		if units < 0 {
			action, units = "reducido", -units
		}
		return fmt.Sprintf("Inventario actualizado: Se han %s %d unidades de '%s'. El nuevo stock es %d.",
			action, units, out.Product.Name, out.Product.StockQuantity)
	case errors.Is(err, domain.ErrNoOp):
		return SentinelNoOp + ": Advertencia: La cantidad de actualización es cero. No se realizó ningún cambio."
	case errors.Is(err, domain.ErrNotFound):
		return productNotFound(args.Name)
	case errors.Is(err, domain.ErrInvalidInput):
		if strings.TrimSpace(args.Name) == "" {
			return invalidInput("el nombre del producto es obligatorio.")
		}
		return invalidInput(fmt.Sprintf("el delta %d no cabe en un entero de 32 bits.", args.Delta))
	default:
		return storageFailure("actualizar el stock", err)
	}
}

// SuggestSimilar lista hasta cinco nombres parecidos.
func (h *InventoryTools) SuggestSimilar(ctx context.Context, args dto.SuggestSimilarArgs) string {
	matches, err := h.uc.SuggestSimilar(ctx, args.Name)
	if err != nil {
		return storageFailure("buscar productos similares", err)
	}
	if len(matches) == 0 {
		return SentinelSuggestionsNotFound + ": No se encontraron productos similares. La única opción es crear uno nuevo."
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Name)
	}
	return fmt.Sprintf("%s: \"%s\". Pregúntale al usuario si se refiere a alguno de estos productos.",
		SentinelSuggestionsFound, strings.Join(names, ", "))
}

// CreateProduct da de alta un producto nuevo.
func (h *InventoryTools) CreateProduct(ctx context.Context, args dto.CreateProductArgs) string {
	p, err := h.uc.CreateProduct(ctx, inventory.CreateProductInput{
		Name:         args.Name,
		InitialStock: args.InitialStock,
		UnitCost:     args.UnitCost,
		Location:     args.Location,
	})
	switch {
	case err == nil:
		return fmt.Sprintf("%s: Producto '%s' creado con stock inicial de %d, costo unitario de $%s y ubicación %s.",
			SentinelCreationSuccess, p.Name, p.StockQuantity, p.UnitCost.StringFixed(2), p.Location)
	case errors.Is(err, domain.ErrInvalidInput):
		return invalidInput("no se puede crear un producto sin un nombre válido; stock inicial y costo unitario no pueden ser negativos.")
	case errors.Is(err, domain.ErrDuplicate):
		return fmt.Sprintf("%s: Error: El producto '%s' ya existe. Usa update_stock para modificar su stock.",
			SentinelDuplicateName, strings.TrimSpace(args.Name))
	default:
		return storageFailure("crear el producto", err)
	}
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}
