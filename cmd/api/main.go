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
	"github.com/mercafresh/backoffice-api/internal/application/auth"
	appstock "github.com/mercafresh/backoffice-api/internal/application/stock"
	"github.com/mercafresh/backoffice-api/internal/application/usecase"
	infrapdf "github.com/mercafresh/backoffice-api/internal/infrastructure/pdf"
	"github.com/mercafresh/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/mercafresh/backoffice-api/internal/interfaces/http"
	"github.com/mercafresh/backoffice-api/pkg/config"
	"github.com/mercafresh/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	marginRepo := postgres.NewMarginRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	marginUC := usecase.NewMarginUseCase(marginRepo, productRepo)
	recipeUC := usecase.NewRecipeUseCase(recipeRepo, productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)

	refGen := appstock.NewReferenceGenerator(movementRepo, log)
	pdfGen := infrapdf.NewMarotoSummaryGenerator()
	inventoryUC := appstock.NewInventoryUseCase(
		txRunner, inventoryRepo, productRepo, warehouseRepo, refGen, pdfGen,
		appstock.Defaults{
			Valuation:        cfg.Inventory.DefaultValuation,
			ReorderThreshold: cfg.Inventory.ReorderThreshold,
			ReorderQuantity:  cfg.Inventory.ReorderQuantity,
			AllowBackorder:   cfg.Inventory.AllowBackorder,
		},
	)
	movementUC := appstock.NewMovementEngine(txRunner, movementRepo, inventoryRepo, refGen, log)

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
		Title:    "MercaFresh Back-Office API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		SupplierUC:  supplierUC,
		MarginUC:    marginUC,
		RecipeUC:    recipeUC,
		WarehouseUC: warehouseUC,
		InventoryUC: inventoryUC,
		MovementUC:  movementUC,
		JWTSecret:   cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
