package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/donaflor/panaderia-api/internal/application/production"
	"github.com/donaflor/panaderia-api/internal/application/usecase"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RawMaterialUC *usecase.RawMaterialUseCase
	ReceiveBatch  *usecase.ReceiveBatchUseCase
	FinalizeOrder *production.FinalizeOrderUseCase
	Availability  *production.CheckAvailabilityUseCase
	OrderRepo     repository.ProductionOrderRepository
	MovementRepo  repository.BatchMovementRepository
	BatchRepo     repository.BatchRepository
	MaterialRepo  repository.RawMaterialRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Raw materials (protegido). La escritura queda para admin y panadero;
	// la lectura la comparten los tres roles.
	materials := protected.Group("/raw-materials")
	materialHandler := NewRawMaterialHandler(deps.RawMaterialUC, deps.ReceiveBatch)
	materials.Post("/", RequireRole(RoleAdmin, RolePanadero), materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/low-stock", materialHandler.LowStock)
	materials.Get("/:id", materialHandler.Get)
	materials.Post("/:id/batches", RequireRole(RoleAdmin, RolePanadero), materialHandler.ReceiveBatch)
	materials.Get("/:id/batches", materialHandler.ListBatches)

	// Production orders (protegido)
	orders := protected.Group("/production-orders")
	productionHandler := NewProductionHandler(deps.FinalizeOrder, deps.Availability, deps.OrderRepo)
	movementHandler := NewMovementHandler(deps.MovementRepo, deps.BatchRepo, deps.MaterialRepo, deps.OrderRepo)
	orders.Get("/", productionHandler.ListOrders)
	orders.Get("/:id/availability", productionHandler.CheckAvailability)
	orders.Get("/:id/movements", movementHandler.ListByOrder)
	orders.Post("/:id/finalize", RequireRole(RoleAdmin, RolePanadero), productionHandler.Finalize)

	// Movements por lote (protegido)
	batches := protected.Group("/batches")
	batches.Get("/:id/movements", movementHandler.ListByBatch)
}
