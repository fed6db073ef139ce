package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EngSivaldo/stock-master-uninter/internal/application/auth"
	"github.com/EngSivaldo/stock-master-uninter/internal/application/ledger"
	"github.com/EngSivaldo/stock-master-uninter/internal/application/receiving"
	"github.com/EngSivaldo/stock-master-uninter/internal/application/usecase"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	CategoryUC  *usecase.CategoryUseCase
	InventoryUC *ledger.UseCase
	ReceivingUC *receiving.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// Reglas de acceso: login es público; el catálogo se muta solo como admin;
// movimientos y recepción los ejecuta cualquier usuario autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleOperador)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Administración de usuarios (solo admin)
	protected.Post("/auth/register", adminOnly, authHandler.Register)
	users := protected.Group("/users", adminOnly)
	users.Get("/", authHandler.ListUsers)
	users.Delete("/:id", authHandler.DeleteUser)

	// Products: lectura para todos, mutación solo admin
	products := protected.Group("/products", anyRole)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Deactivate)
	products.Post("/:id/activate", adminOnly, productHandler.Activate)

	// Suppliers
	suppliers := protected.Group("/suppliers", anyRole)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)

	// Categories
	categories := protected.Group("/categories", anyRole)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)

	// Inventory movements (cualquier usuario autenticado)
	inventory := protected.Group("/inventory", anyRole)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Post("/movements", inventoryHandler.ApplyMovement)
	inventory.Get("/movements", inventoryHandler.Report)
	products.Get("/:id/movements", inventoryHandler.MovementsFor)

	// Purchase orders / recepción. La orden la arma y borra un admin; la
	// reconciliación es del segundo actor, que cuenta lo que llegó.
	orders := protected.Group("/orders", anyRole)
	orderHandler := NewOrderHandler(deps.ReceivingUC)
	orders.Post("/", adminOnly, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Delete("/:id", adminOnly, orderHandler.Delete)
	orders.Post("/:id/lines", adminOnly, orderHandler.AddLine)
	orders.Post("/:id/reconcile", orderHandler.Reconcile)
	orders.Post("/:id/discard", adminOnly, orderHandler.Discard)
}
