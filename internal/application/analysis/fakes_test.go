package analysis_test

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para la corrida de análisis
//
// El almacén guarda un libro de movimientos y stock fijos (la corrida no los
// muta) y recibe las filas de análisis. El runner fake replica la semántica
// transaccional: si el callback falla, las filas escritas se descartan.
// ──────────────────────────────────────────────────────────────────────────────

type analysisStore struct {
	productIDs  []string
	locationIDs []string
	items       []entity.StockItem
	movements   []entity.StockMovement

	prodAnalyses map[string]*entity.ProductAnalysis
	locAnalyses  map[string]*entity.LocationAnalysis

	// failProductID hace fallar el Upsert del análisis de ese producto.
	failProductID string
}

func newAnalysisStore() *analysisStore {
	return &analysisStore{
		prodAnalyses: map[string]*entity.ProductAnalysis{},
		locAnalyses:  map[string]*entity.LocationAnalysis{},
	}
}

type stubMovementRepo struct{ s *analysisStore }

func (r *stubMovementRepo) Create(*entity.StockMovement) error { return nil }
func (r *stubMovementRepo) ListByProduct(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *stubMovementRepo) ListHistory(string, int, int) ([]repository.MovementHistoryRow, error) {
	return nil, nil
}

func (r *stubMovementRepo) OutboundTotalSince(productID string, since time.Time) (int64, error) {
	var total int64
	for _, m := range r.s.movements {
		if m.ProductID == productID && m.Quantity < 0 && !m.CreatedAt.Before(since) {
			total += -m.Quantity
		}
	}
	return total, nil
}

func (r *stubMovementRepo) LastMovementDate(productID string) (*time.Time, error) {
	var last *time.Time
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if last == nil || m.CreatedAt.After(*last) {
			t := m.CreatedAt
			last = &t
		}
	}
	return last, nil
}

func (r *stubMovementRepo) PickPlaceCounts(locationID string, since time.Time) (int, int, error) {
	var pick, place int
	for _, m := range r.s.movements {
		if m.LocationID != locationID || m.CreatedAt.Before(since) {
			continue
		}
		if m.Quantity < 0 {
			pick++
		} else {
			place++
		}
	}
	return pick, place, nil
}

func (r *stubMovementRepo) CountSince(time.Time) (int, error)    { return 0, nil }
func (r *stubMovementRepo) DeleteByProducts([]string) error      { return nil }
func (r *stubMovementRepo) DeleteByLocations([]string) error     { return nil }

type stubStockItemRepo struct{ s *analysisStore }

func (r *stubStockItemRepo) GetForUpdate(productID, locationID string) (*entity.StockItem, error) {
	return &entity.StockItem{ProductID: productID, LocationID: locationID}, nil
}
func (r *stubStockItemRepo) ApplyDelta(string, string, int64) error { return nil }

func (r *stubStockItemRepo) SumByProduct(productID string) (int64, error) {
	var total int64
	for _, item := range r.s.items {
		if item.ProductID == productID {
			total += item.Quantity
		}
	}
	return total, nil
}

func (r *stubStockItemRepo) TotalOnHand() (int64, error) { return 0, nil }
func (r *stubStockItemRepo) List(string, int, int) ([]repository.StockListRow, error) {
	return nil, nil
}
func (r *stubStockItemRepo) DeleteByProducts([]string) error  { return nil }
func (r *stubStockItemRepo) DeleteByLocations([]string) error { return nil }

type stubProductRepo struct{ s *analysisStore }

func (r *stubProductRepo) Create(*entity.Product) error                  { return nil }
func (r *stubProductRepo) GetByID(string) (*entity.Product, error)       { return nil, nil }
func (r *stubProductRepo) GetByBarcode(string) (*entity.Product, error)  { return nil, nil }
func (r *stubProductRepo) Update(*entity.Product) error                  { return nil }
func (r *stubProductRepo) Delete([]string) error                         { return nil }
func (r *stubProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) ListIDs() ([]string, error)                    { return r.s.productIDs, nil }
func (r *stubProductRepo) Count() (int, error)                           { return len(r.s.productIDs), nil }

type stubLocationRepo struct{ s *analysisStore }

func (r *stubLocationRepo) Create(*entity.Location) error                    { return nil }
func (r *stubLocationRepo) GetByID(string) (*entity.Location, error)         { return nil, nil }
func (r *stubLocationRepo) GetByBarcode(string) (*entity.Location, error)    { return nil, nil }
func (r *stubLocationRepo) Update(*entity.Location) error                    { return nil }
func (r *stubLocationRepo) Delete([]string) error                            { return nil }
func (r *stubLocationRepo) List(string, int, int) ([]*entity.Location, error) { return nil, nil }
func (r *stubLocationRepo) ListIDs() ([]string, error)                       { return r.s.locationIDs, nil }
func (r *stubLocationRepo) Count() (int, error)                              { return len(r.s.locationIDs), nil }

type stubProdAnalysisRepo struct {
	s       *analysisStore
	written map[string]*entity.ProductAnalysis
}

func (r *stubProdAnalysisRepo) Upsert(a *entity.ProductAnalysis) error {
	if r.s.failProductID != "" && a.ProductID == r.s.failProductID {
		return errInjected
	}
	cp := *a
	r.written[a.ProductID] = &cp
	return nil
}
func (r *stubProdAnalysisRepo) ListWithProduct() ([]repository.ProductAnalysisRow, error) {
	return nil, nil
}
func (r *stubProdAnalysisRepo) CountByStatus(string) (int, error) { return 0, nil }
func (r *stubProdAnalysisRepo) DeleteByProducts([]string) error   { return nil }

type stubLocAnalysisRepo struct {
	s       *analysisStore
	written map[string]*entity.LocationAnalysis
}

func (r *stubLocAnalysisRepo) Upsert(a *entity.LocationAnalysis) error {
	cp := *a
	r.written[a.LocationID] = &cp
	return nil
}
func (r *stubLocAnalysisRepo) ListWithLocation() ([]repository.LocationAnalysisRow, error) {
	return nil, nil
}
func (r *stubLocAnalysisRepo) DeleteByLocations([]string) error { return nil }

// analysisTxRunner escribe en buffers y solo los vuelca al store si el
// callback termina sin error (commit); si falla, se descartan (rollback).
type analysisTxRunner struct{ s *analysisStore }

func (r *analysisTxRunner) RunAnalysis(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	prodAnalysisRepo repository.ProductAnalysisRepository,
	locAnalysisRepo repository.LocationAnalysisRepository,
) error) error {
	prodBuf := &stubProdAnalysisRepo{s: r.s, written: map[string]*entity.ProductAnalysis{}}
	locBuf := &stubLocAnalysisRepo{s: r.s, written: map[string]*entity.LocationAnalysis{}}
	err := fn(
		&stubMovementRepo{r.s},
		&stubStockItemRepo{r.s},
		&stubProductRepo{r.s},
		&stubLocationRepo{r.s},
		prodBuf,
		locBuf,
	)
	if err != nil {
		return err
	}
	for pid, a := range prodBuf.written {
		r.s.prodAnalyses[pid] = a
	}
	for lid, a := range locBuf.written {
		r.s.locAnalyses[lid] = a
	}
	return nil
}
