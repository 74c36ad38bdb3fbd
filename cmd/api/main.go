package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/inventario-chatbot/docs"
	"github.com/jhoicas/inventario-chatbot/internal/application/inventory"
	"github.com/jhoicas/inventario-chatbot/internal/application/knowledge"
	"github.com/jhoicas/inventario-chatbot/internal/application/tools"
	"github.com/jhoicas/inventario-chatbot/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-chatbot/internal/interfaces/http"
	"github.com/jhoicas/inventario-chatbot/pkg/config"
	"github.com/jhoicas/inventario-chatbot/pkg/logger"
	"github.com/jhoicas/inventario-chatbot/pkg/telemetry"
)

// @title        Inventario Chatbot API
// @version      1.0
// @description  Herramientas de inventario y base de conocimiento para un agente conversacional.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar telemetría")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", postgres.RedactDSN(cfg.DB.ConnectionString())).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	inventoryUC := inventory.NewUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewProductRepository(pool),
		postgres.NewMovementRepository(pool),
		postgres.NewSchema(pool),
	)
	seeded, err := inventoryUC.Initialize(ctx, cfg.Inventory.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén")
	}
	log.Info().Int("seeded", seeded).Bool("seed", cfg.Inventory.Seed).Msg("almacén listo")

	knowledgeUC := knowledge.NewLookupUseCase(knowledge.DefaultCorpus())
	catalog := tools.NewCatalog(log, inventoryUC, knowledgeUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Chatbot API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Tools:       catalog,
		Inventory:   inventoryUC,
		Log:         log,
		ServiceName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre de exportadores OTel")
	}

	log.Info().Msg("aplicación detenida")
}
