package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-chatbot/internal/application/inventory"
	"github.com/jhoicas/inventario-chatbot/internal/application/tools"
	"github.com/jhoicas/inventario-chatbot/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Tools       tools.Toolbox
	Inventory   *inventory.UseCase
	Log         *logger.Logger
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", health(deps.ServiceName))

	api := app.Group("/api", RequestLogger(log.Named("http")))

	// Herramientas del agente
	toolHandler := NewToolHandler(deps.Tools)
	api.Get("/tools", toolHandler.List)
	api.Post("/tools/:name", toolHandler.Invoke)

	// Consultas de inventario (lectura)
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	invGroup.Get("/stock", inventoryHandler.GetStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
}

// health godoc
// @Summary  Estado del servicio
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func health(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("petición atendida")
		return err
	}
}
