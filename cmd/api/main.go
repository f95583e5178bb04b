package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/almacen-api/internal/application/analysis"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/internal/scheduler"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
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

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	categoryRepo := postgres.NewLocationCategoryRepository(pool)
	itemRepo := postgres.NewStockItemRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	prodAnalysisRepo := postgres.NewProductAnalysisRepository(pool)
	locAnalysisRepo := postgres.NewLocationAnalysisRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewStockLedgerUseCase(txRunner, productRepo, locationRepo)
	stockQueryUC := catalog.NewStockQueryUseCase(itemRepo, movRepo, productRepo, locationRepo)
	productUC := catalog.NewProductUseCase(productRepo, ledgerUC)
	locationUC := catalog.NewLocationUseCase(locationRepo, categoryRepo, ledgerUC)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	analysisUC := analysis.NewStrategicAnalysisUseCase(txRunner, log)
	reportsUC := reports.NewReportsUseCase(
		prodAnalysisRepo, locAnalysisRepo,
		productRepo, locationRepo, itemRepo, movRepo,
	)

	sched := scheduler.New(analysisUC, cfg.Analysis, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("arranque del scheduler de análisis")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:     ledgerUC,
		StockQueryUC: stockQueryUC,
		ProductUC:    productUC,
		LocationUC:   locationUC,
		CategoryUC:   categoryUC,
		AnalysisUC:   analysisUC,
		ReportsUC:    reportsUC,
		AnalysisCfg:  cfg.Analysis,
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

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
