package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/stocks"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SubmitBatch *stocks.SubmitBatchUseCase
	BatchQuery  *stocks.BatchQueryUseCase
	Documents   *stocks.DocumentUseCase
	ProductUC   *usecase.ProductUseCase
	UnitUC      *usecase.UnitUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stocks: envío de lotes y consultas del libro (protegido)
	stocksGroup := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.SubmitBatch, deps.BatchQuery, deps.Documents)
	stocksGroup.Post("/in", stockHandler.SubmitIn)
	stocksGroup.Post("/out", stockHandler.SubmitOut)
	stocksGroup.Get("/batches", stockHandler.ListBatches)
	stocksGroup.Get("/batches/unreconciled", stockHandler.ListUnreconciled)
	stocksGroup.Get("/batches/:id", stockHandler.GetBatch)
	stocksGroup.Get("/batches/:id/labels", stockHandler.BatchLabels)
	stocksGroup.Get("/batches/:id/pdf", stockHandler.BatchVoucher)
	stocksGroup.Get("/batches/:id/xml", stockHandler.BatchXML)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Units: catálogo de unidades de medida (protegido; sólo admin muta)
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Post("/", RequireRole(entity.RoleAdmin), unitHandler.Create)
	units.Put("/:id", RequireRole(entity.RoleAdmin), unitHandler.Update)
	units.Delete("/:id", RequireRole(entity.RoleAdmin), unitHandler.Delete)
}
