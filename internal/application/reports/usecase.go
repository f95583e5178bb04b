package reports

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StrategicPanel agrupa las filas de análisis de productos y locaciones con
// sus datos de catálogo (lo que la corrida nocturna dejó en las tablas).
type StrategicPanel struct {
	Products  []repository.ProductAnalysisRow
	Locations []repository.LocationAnalysisRow
}

// DashboardSummary métricas generales para la pantalla de inicio.
type DashboardSummary struct {
	ProductCount    int
	LocationCount   int
	TotalOnHand     int64
	MovementsLast24 int
	ReorderNowCount int
}

// ReportsUseCase consultas de solo lectura sobre las tablas de análisis.
// Las filas de análisis solo las escribe el motor; aquí únicamente se leen.
type ReportsUseCase struct {
	prodAnalysisRepo repository.ProductAnalysisRepository
	locAnalysisRepo  repository.LocationAnalysisRepository
	productRepo      repository.ProductRepository
	locationRepo     repository.LocationRepository
	itemRepo         repository.StockItemRepository
	movRepo          repository.StockMovementRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(
	prodAnalysisRepo repository.ProductAnalysisRepository,
	locAnalysisRepo repository.LocationAnalysisRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
) *ReportsUseCase {
	return &ReportsUseCase{
		prodAnalysisRepo: prodAnalysisRepo,
		locAnalysisRepo:  locAnalysisRepo,
		productRepo:      productRepo,
		locationRepo:     locationRepo,
		itemRepo:         itemRepo,
		movRepo:          movRepo,
	}
}

// GetStrategicPanel devuelve el panel de análisis estratégico completo.
func (uc *ReportsUseCase) GetStrategicPanel(ctx context.Context) (*StrategicPanel, error) {
	products, err := uc.prodAnalysisRepo.ListWithProduct()
	if err != nil {
		return nil, err
	}
	locations, err := uc.locAnalysisRepo.ListWithLocation()
	if err != nil {
		return nil, err
	}
	return &StrategicPanel{Products: products, Locations: locations}, nil
}

// GetDashboardSummary devuelve las métricas de la pantalla principal.
func (uc *ReportsUseCase) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	productCount, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}
	locationCount, err := uc.locationRepo.Count()
	if err != nil {
		return nil, err
	}
	totalOnHand, err := uc.itemRepo.TotalOnHand()
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.CountSince(time.Now().UTC().Add(-24 * time.Hour))
	if err != nil {
		return nil, err
	}
	reorderNow, err := uc.prodAnalysisRepo.CountByStatus(entity.ProductStatusReorderNow)
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{
		ProductCount:    productCount,
		LocationCount:   locationCount,
		TotalOnHand:     totalOnHand,
		MovementsLast24: movements,
		ReorderNowCount: reorderNow,
	}, nil
}
