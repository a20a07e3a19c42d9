package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mercafresh/backoffice-api/internal/application/auth"
	"github.com/mercafresh/backoffice-api/internal/application/stock"
	"github.com/mercafresh/backoffice-api/internal/application/usecase"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	SupplierUC  *usecase.SupplierUseCase
	MarginUC    *usecase.MarginUseCase
	RecipeUC    *usecase.RecipeUseCase
	WarehouseUC *usecase.WarehouseUseCase
	InventoryUC *stock.InventoryUseCase
	MovementUC  *stock.MovementEngine
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/save", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/update/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/save", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/update/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/save", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/update/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Margins
	margins := protected.Group("/margins")
	marginHandler := NewMarginHandler(deps.MarginUC)
	margins.Post("/save", marginHandler.Create)
	margins.Get("/", marginHandler.List)
	margins.Get("/effective/:productId", marginHandler.EffectiveForProduct)
	margins.Get("/:id", marginHandler.GetByID)
	margins.Put("/update/:id", marginHandler.Update)
	margins.Delete("/:id", marginHandler.Delete)

	// Recipes
	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/save", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/update/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)

	// Subsistema de bodegas e inventario: solo admin y bodeguero.
	warehouseSystem := protected.Group(
		"/warehouse-system",
		RequireRole(entity.RoleAdmin, entity.RoleBodeguero),
	)

	warehouses := warehouseSystem.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/save", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/update/:id", warehouseHandler.Update)

	inventory := warehouseSystem.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Post("/save", inventoryHandler.Save)
	inventory.Get("/summary", inventoryHandler.Summary)
	inventory.Get("/summary/pdf", inventoryHandler.SummaryPDF)
	inventory.Get("/replenishment", inventoryHandler.Replenishment)
	inventory.Put("/update/:modelId", inventoryHandler.Update)
	inventory.Patch("/update-quantity/:modelId", inventoryHandler.UpdateQuantity)
	inventory.Get("/get/:modelId", inventoryHandler.Get)

	movements := warehouseSystem.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/save", movementHandler.Save)
	movements.Get("/recent", movementHandler.Recent)
	movements.Get("/:modelId", movementHandler.Get)
	movements.Patch("/:modelId/process", movementHandler.Process)
}
