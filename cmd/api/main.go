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

	"github.com/donaflor/panaderia-api/internal/application/alerts"
	"github.com/donaflor/panaderia-api/internal/application/production"
	"github.com/donaflor/panaderia-api/internal/application/usecase"
	"github.com/donaflor/panaderia-api/internal/infrastructure/postgres"
	httpRouter "github.com/donaflor/panaderia-api/internal/interfaces/http"
	"github.com/donaflor/panaderia-api/pkg/config"
	"github.com/donaflor/panaderia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewBatchMovementRepository(pool)
	materialRepo := postgres.NewRawMaterialRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rawMaterialUC := usecase.NewRawMaterialUseCase(materialRepo, batchRepo)
	receiveBatchUC := usecase.NewReceiveBatchUseCase(txRunner, materialRepo)
	finalizeUC := production.NewFinalizeOrderUseCase(txRunner, orderRepo, recipeRepo, production.Config{
		RecalcCostOnFinalize: cfg.Production.RecalcCostOnFinalize,
	})
	availabilityUC := production.NewCheckAvailabilityUseCase(orderRepo, recipeRepo, batchRepo)

	// Job de alertas de vencimiento y stock mínimo (opcional)
	var notifier *alerts.ExpiryNotifier
	if cfg.Alerts.Enabled {
		notifier = alerts.NewExpiryNotifier(batchRepo, materialRepo, log.Component("alerts"), alerts.Config{
			Schedule:         cfg.Alerts.Schedule,
			ExpiryWindowDays: cfg.Alerts.ExpiryWindowDays,
			CompanyIDs:       cfg.Alerts.CompanyIDs,
		})
		if err := notifier.Start(); err != nil {
			log.Fatal().Err(err).Msg("arranque del job de alertas")
		}
	}

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
		Title:    "Panadería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RawMaterialUC: rawMaterialUC,
		ReceiveBatch:  receiveBatchUC,
		FinalizeOrder: finalizeUC,
		Availability:  availabilityUC,
		OrderRepo:     orderRepo,
		MovementRepo:  movementRepo,
		BatchRepo:     batchRepo,
		MaterialRepo:  materialRepo,
		JWTSecret:     cfg.JWT.Secret,
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
	if notifier != nil {
		notifier.Stop()
	}

	log.Info().Msg("aplicación detenida")
}
