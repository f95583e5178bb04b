package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analysis"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC     *ledger.StockLedgerUseCase
	StockQueryUC *catalog.StockQueryUseCase
	ProductUC    *catalog.ProductUseCase
	LocationUC   *catalog.LocationUseCase
	CategoryUC   *catalog.CategoryUseCase
	AnalysisUC   *analysis.StrategicAnalysisUseCase
	ReportsUC    *reports.ReportsUseCase
	AnalysisCfg  config.AnalysisConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Stock (movimientos y consultas)
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.StockQueryUC)
	stock.Post("/add", stockHandler.Add)
	stock.Post("/remove", stockHandler.Remove)
	stock.Post("/transfer", stockHandler.Transfer)
	stock.Get("/", stockHandler.List)
	stock.Get("/history", stockHandler.History)
	stock.Get("/barcode/:code", stockHandler.SearchBarcode)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", stockHandler.ProductMovements)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Locations y categorías
	locationHandler := NewLocationHandler(deps.LocationUC, deps.CategoryUC)
	locations := api.Group("/locations")
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	categories := api.Group("/location-categories")
	categories.Post("/", locationHandler.CreateCategory)
	categories.Get("/", locationHandler.ListCategories)
	categories.Put("/:id", locationHandler.UpdateCategory)
	categories.Delete("/:id", locationHandler.DeleteCategory)

	// Análisis estratégico y reportes
	analysisHandler := NewAnalysisHandler(deps.AnalysisUC, deps.ReportsUC, deps.AnalysisCfg)
	analysisGroup := api.Group("/analysis")
	analysisGroup.Post("/run", analysisHandler.RunNow)
	analysisGroup.Get("/panel", analysisHandler.StrategicPanel)

	api.Get("/dashboard", analysisHandler.Dashboard)
}
