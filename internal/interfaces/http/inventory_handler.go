package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-chatbot/internal/application/dto"
	"github.com/jhoicas/inventario-chatbot/internal/application/inventory"
	"github.com/jhoicas/inventario-chatbot/internal/domain"
	"github.com/jhoicas/inventario-chatbot/internal/domain/entity"
)

// InventoryHandler consultas de solo lectura sobre el almacén.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetStock godoc
// @Summary      Consultar stock
// @Tags         inventory
// @Produce      json
// @Param        name  query  string  true  "Nombre exacto del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	p, err := h.uc.GetStock(c.UserContext(), c.Query("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toProductResponse(p))
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Produce      json
// @Param        name    query  string  true   "Nombre exacto del producto"
// @Param        limit   query  int     false  "Máximo de movimientos (defecto 20, tope 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200     {object}  dto.MovementListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	p, movs, err := h.uc.ListMovements(c.UserContext(), c.Query("name"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, dto.MovementResponse{ID: m.ID, Type: m.Type, Quantity: m.Quantity, CreatedAt: m.CreatedAt})
	}
	total, err := h.uc.CountMovements(c.UserContext(), p.ID)
	if err != nil {
		return writeError(c, err)
	}
	limit, offset = inventory.NormalizePage(limit, offset)
	return c.JSON(dto.MovementListResponse{
		Product: toProductResponse(p),
		Items:   items,
		Page:    dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		Location:      p.Location,
		UnitCost:      p.UnitCost,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el parámetro name es obligatorio"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
