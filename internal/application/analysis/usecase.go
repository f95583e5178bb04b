package analysis

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// TxRunner abre una transacción de solo-análisis: lee un snapshot consistente
// del libro de movimientos y escribe únicamente las filas de análisis.
// Cualquier error hace rollback de la corrida completa.
type TxRunner interface {
	RunAnalysis(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		prodAnalysisRepo repository.ProductAnalysisRepository,
		locAnalysisRepo repository.LocationAnalysisRepository,
	) error) error
}

// Params parámetros de una corrida de análisis. La corrida es una función pura
// de (snapshot del libro, Now, umbrales): repetirla con los mismos datos
// produce exactamente las mismas filas.
type Params struct {
	Now                time.Time
	WindowDays         int
	ReorderHorizonDays int
	StagnationDays     int
	HotThreshold       int
	ColdThreshold      int
}

// ParamsFromConfig arma los parámetros de una corrida con el instante dado.
func ParamsFromConfig(cfg config.AnalysisConfig, now time.Time) Params {
	return Params{
		Now:                now,
		WindowDays:         cfg.WindowDays,
		ReorderHorizonDays: cfg.ReorderHorizonDays,
		StagnationDays:     cfg.StagnationDays,
		HotThreshold:       cfg.HotThreshold,
		ColdThreshold:      cfg.ColdThreshold,
	}
}

func (p Params) withDefaults() Params {
	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}
	if p.WindowDays <= 0 {
		p.WindowDays = 30
	}
	if p.ReorderHorizonDays <= 0 {
		p.ReorderHorizonDays = 15
	}
	if p.StagnationDays <= 0 {
		p.StagnationDays = 90
	}
	if p.HotThreshold <= 0 {
		p.HotThreshold = 50
	}
	if p.ColdThreshold <= 0 {
		p.ColdThreshold = 5
	}
	return p
}

// StrategicAnalysisUseCase recalcula, en una sola transacción, la foto
// estratégica de cada producto (velocidad de salida, días de cobertura,
// estado de reorden) y de cada locación (zona caliente/fría) a partir del
// libro de movimientos. No muta el libro ni el stock.
type StrategicAnalysisUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewStrategicAnalysisUseCase construye el caso de uso.
func NewStrategicAnalysisUseCase(txRunner TxRunner, log *logger.Logger) *StrategicAnalysisUseCase {
	return &StrategicAnalysisUseCase{txRunner: txRunner, log: log}
}

// Run ejecuta la corrida completa. Un error en cualquier entidad aborta todo:
// datos de análisis parciales son peores que reintentar el ciclo siguiente.
func (uc *StrategicAnalysisUseCase) Run(ctx context.Context, params Params) error {
	params = params.withDefaults()
	windowStart := params.Now.AddDate(0, 0, -params.WindowDays)
	started := time.Now()

	var products, locations int
	err := uc.txRunner.RunAnalysis(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.StockItemRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		prodAnalysisRepo repository.ProductAnalysisRepository,
		locAnalysisRepo repository.LocationAnalysisRepository,
	) error {
		productIDs, err := productRepo.ListIDs()
		if err != nil {
			return err
		}
		for _, pid := range productIDs {
			if err := uc.analyzeProduct(movRepo, itemRepo, prodAnalysisRepo, pid, windowStart, params); err != nil {
				uc.log.Error().Err(err).Str("product_id", pid).Str("phase", "product").
					Msg("análisis de producto falló, se revierte la corrida")
				return err
			}
		}
		products = len(productIDs)

		locationIDs, err := locationRepo.ListIDs()
		if err != nil {
			return err
		}
		for _, lid := range locationIDs {
			if err := uc.analyzeLocation(movRepo, locAnalysisRepo, lid, windowStart, params); err != nil {
				uc.log.Error().Err(err).Str("location_id", lid).Str("phase", "location").
					Msg("análisis de locación falló, se revierte la corrida")
				return err
			}
		}
		locations = len(locationIDs)
		return nil
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Int("products", products).
		Int("locations", locations).
		Dur("took", time.Since(started)).
		Time("analysis_date", params.Now).
		Msg("análisis estratégico completado")
	return nil
}

func (uc *StrategicAnalysisUseCase) analyzeProduct(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
	prodAnalysisRepo repository.ProductAnalysisRepository,
	productID string,
	windowStart time.Time,
	params Params,
) error {
	// Stock actual: suma del materializado en todas las locaciones
	onHand, err := itemRepo.SumByProduct(productID)
	if err != nil {
		return err
	}
	// Salidas dentro de la ventana (valor absoluto de los deltas negativos)
	outbound, err := movRepo.OutboundTotalSince(productID, windowStart)
	if err != nil {
		return err
	}
	lastMovement, err := movRepo.LastMovementDate(productID)
	if err != nil {
		return err
	}

	velocity, daysOfSupply, status := ComputeProductMetrics(onHand, outbound, lastMovement, params)
	return prodAnalysisRepo.Upsert(&entity.ProductAnalysis{
		ProductID:        productID,
		AnalysisDate:     params.Now,
		DailyVelocity:    velocity,
		DaysOfSupply:     daysOfSupply,
		LastMovementDate: lastMovement,
		Status:           status,
	})
}

func (uc *StrategicAnalysisUseCase) analyzeLocation(
	movRepo repository.StockMovementRepository,
	locAnalysisRepo repository.LocationAnalysisRepository,
	locationID string,
	windowStart time.Time,
	params Params,
) error {
	pick, place, err := movRepo.PickPlaceCounts(locationID, windowStart)
	if err != nil {
		return err
	}
	total := pick + place
	return locAnalysisRepo.Upsert(&entity.LocationAnalysis{
		LocationID:     locationID,
		AnalysisDate:   params.Now,
		TotalMovements: total,
		PickCount:      pick,
		PlaceCount:     place,
		Status:         ClassifyLocation(total, params),
	})
}

// ComputeProductMetrics calcula velocidad diaria, días de cobertura y estado
// a partir del stock actual, las salidas de la ventana y el último movimiento.
// El estado se evalúa en orden de prioridad: REORDER_NOW, SLOW_MOVING, HEALTHY.
func ComputeProductMetrics(onHand, outbound int64, lastMovement *time.Time, params Params) (decimal.Decimal, int, string) {
	velocity := decimal.Zero
	if outbound > 0 {
		velocity = decimal.NewFromInt(outbound).Div(decimal.NewFromInt(int64(params.WindowDays)))
	}

	daysOfSupply := entity.DaysOfSupplySentinel
	if velocity.IsPositive() {
		daysOfSupply = int(decimal.NewFromInt(onHand).Div(velocity).IntPart())
	}

	status := entity.ProductStatusHealthy
	stagnationCutoff := params.Now.AddDate(0, 0, -params.StagnationDays)
	switch {
	case velocity.IsPositive() && daysOfSupply < params.ReorderHorizonDays:
		status = entity.ProductStatusReorderNow
	case lastMovement != nil && lastMovement.Before(stagnationCutoff):
		status = entity.ProductStatusSlowMoving
	}
	return velocity, daysOfSupply, status
}

// ClassifyLocation clasifica la actividad de una locación por el total de
// movimientos en la ventana.
func ClassifyLocation(totalMovements int, params Params) string {
	switch {
	case totalMovements > params.HotThreshold:
		return entity.LocationStatusHotZone
	case totalMovements < params.ColdThreshold:
		return entity.LocationStatusColdZone
	default:
		return entity.LocationStatusNormal
	}
}
