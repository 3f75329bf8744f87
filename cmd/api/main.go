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

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/operation"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
	"github.com/jhoicas/almacen-api/pkg/reference"
)

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
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner   operation.TxRunner
		repos      operation.Repos
		warehouses repository.WarehouseRepository
		categories repository.CategoryRepository
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewStore()
		txRunner, repos, warehouses = store, store.Repos(), store.Warehouses()
		categories = store.Categories()
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos, warehouses = postgres.NewTxRunner(pool), postgres.NewRepos(pool), postgres.NewWarehouseRepository(pool)
		categories = postgres.NewCategoryRepository(pool)
	}

	productUC := usecase.NewProductUseCase(repos.Products, repos.StockLevels)
	categoryUC := usecase.NewCategoryUseCase(categories)
	warehouseUC := usecase.NewWarehouseUseCase(warehouses, repos.Locations)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Products, repos.StockLevels)

	// PDF: comprobante imprimible de cada documento
	slips := infrapdf.NewMarotoSlipGenerator(cfg.App.Name)
	operationUC := operation.NewUseCase(txRunner, repos, reference.NewGenerator(), slips, log,
		operation.Config{MovesPageCap: cfg.Inventory.MovesPageCap})

	jobs := scheduler.New(cfg.Inventory.ReplenishmentCron, replenishmentUC, log)
	if err := jobs.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler de reposición")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Almacén API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       productUC,
		CategoryUC:      categoryUC,
		WarehouseUC:     warehouseUC,
		OperationUC:     operationUC,
		ReplenishmentUC: replenishmentUC,
		JWTSecret:       cfg.JWT.Secret,
		Logger:          log,
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
	jobs.Stop()

	log.Info().Msg("aplicación detenida")
}
