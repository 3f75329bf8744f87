package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/operation"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	CategoryUC      *usecase.CategoryUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	OperationUC     *operation.UseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	JWTSecret       string
	Logger          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	errs := errorMapper{log: log.Component("http")}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, errs)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/stock", productHandler.GetStock)

	categoryHandler := NewCategoryHandler(deps.CategoryUC, errs)
	categories := api.Group("/categories")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, errs)
	warehouses := api.Group("/warehouses")
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	locations := api.Group("/locations")
	locations.Post("/", warehouseHandler.CreateLocation)
	locations.Get("/", warehouseHandler.ListLocations)

	// Operaciones: receipts | deliveries | transfers | adjustments
	ops := api.Group("/operations/:type")
	opHandler := NewOperationHandler(deps.OperationUC, errs)
	ops.Post("/", opHandler.Create)
	ops.Get("/", opHandler.List)
	ops.Get("/:id", opHandler.GetByID)
	ops.Get("/:id/pdf", opHandler.PDF)
	ops.Post("/:id/validate", RequireRole(entity.RoleAdmin, entity.RoleManager), opHandler.Validate)
	ops.Post("/:id/cancel", opHandler.Cancel)

	invHandler := NewInventoryHandler(deps.OperationUC, deps.ReplenishmentUC, errs)
	api.Get("/moves", invHandler.ListMoves)
	api.Get("/inventory/replenishment", invHandler.GetReplenishmentList)
}
