package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-chatbot/internal/application/dto"
	"github.com/jhoicas/inventario-chatbot/internal/application/tools"
)

// ToolHandler expone la tabla de herramientas por HTTP para el despachador del agente.
type ToolHandler struct {
	box tools.Toolbox
}

// NewToolHandler construye el handler.
func NewToolHandler(box tools.Toolbox) *ToolHandler {
	return &ToolHandler{box: box}
}

// List godoc
// @Summary      Listar herramientas
// @Description  Nombre, descripción y esquema JSON de argumentos de cada herramienta, en orden de registro.
// @Tags         tools
// @Produce      json
// @Success      200  {object}  dto.ToolListResponse
// @Router       /api/tools [get]
func (h *ToolHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.ToolListResponse{Items: h.box.Definitions()})
}

// Invoke godoc
// @Summary      Invocar herramienta
// @Description  Ejecuta la herramienta con los argumentos del cuerpo. Los fallos de dominio llegan como texto
// @Description  con marcador (PRODUCT_NOT_FOUND, NO_OP, ...) y estado 200; solo un nombre desconocido da 404.
// @Tags         tools
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Nombre de la herramienta"
// @Param        body  body  object  false "Argumentos JSON de la herramienta"
// @Success      200   {object}  dto.ToolResultResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tools/{name} [post]
func (h *ToolHandler) Invoke(c *fiber.Ctx) error {
	name := c.Params("name")
	if !h.box.Has(name) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    tools.SentinelUnknownTool,
			Message: "herramienta no registrada: " + name,
		})
	}
	// El cuerpo se copia: fiber reutiliza el buffer al terminar la petición.
	args := json.RawMessage(append([]byte(nil), c.Body()...))
	result := h.box.Invoke(c.UserContext(), name, args)
	return c.JSON(dto.ToolResultResponse{Tool: name, Result: result})
}
