package ledger_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore concentra todo el estado; los repos fake operan sobre él. El
// fakeTxRunner clona el estado al abrir la "transacción" y lo restaura si el
// callback falla, replicando la semántica Commit/Rollback de la base real.
// ──────────────────────────────────────────────────────────────────────────────

var errInjected = errors.New("fallo inyectado")

type memStore struct {
	products     map[string]*entity.Product
	locations    map[string]*entity.Location
	items        map[string]*entity.StockItem // clave productID|locationID
	movements    []entity.StockMovement
	prodAnalyses map[string]*entity.ProductAnalysis
	locAnalyses  map[string]*entity.LocationAnalysis

	// Inyección de fallos: la n-ésima llamada (base 1) falla; 0 deshabilita.
	failOnApply    int
	applyCalls     int
	failOnMovement int
	movementCalls  int

	// beforeApplyDelta se dispara justo antes de aplicar un delta, simulando
	// a otro escritor que alcanzó a confirmar primero sobre el mismo par.
	beforeApplyDelta func(productID, locationID string)
}

func newMemStore() *memStore {
	return &memStore{
		products:     map[string]*entity.Product{},
		locations:    map[string]*entity.Location{},
		items:        map[string]*entity.StockItem{},
		prodAnalyses: map[string]*entity.ProductAnalysis{},
		locAnalyses:  map[string]*entity.LocationAnalysis{},
	}
}

func itemKey(productID, locationID string) string {
	return productID + "|" + locationID
}

func (s *memStore) addProduct(id, barcode string) {
	s.products[id] = &entity.Product{ID: id, Barcode: barcode, Name: "producto " + barcode}
}

func (s *memStore) addLocation(id, barcode string) {
	s.locations[id] = &entity.Location{ID: id, Barcode: barcode, CategoryID: "cat-1"}
}

func (s *memStore) quantity(productID, locationID string) int64 {
	if item, ok := s.items[itemKey(productID, locationID)]; ok {
		return item.Quantity
	}
	return 0
}

// applyDirect escribe un movimiento y su delta directamente sobre el estado,
// como lo haría otra transacción ya confirmada.
func (s *memStore) applyDirect(productID, locationID string, qty int64) {
	key := itemKey(productID, locationID)
	item, ok := s.items[key]
	if !ok {
		item = &entity.StockItem{ID: uuid.New().String(), ProductID: productID, LocationID: locationID}
		s.items[key] = item
	}
	item.Quantity += qty
	s.movements = append(s.movements, entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   qty,
		UserID:     "otro-escritor",
		CreatedAt:  time.Now().UTC(),
	})
}

// ledgerSum suma los deltas del libro para un par (producto, locación).
func (s *memStore) ledgerSum(productID, locationID string) int64 {
	var sum int64
	for _, m := range s.movements {
		if m.ProductID == productID && m.LocationID == locationID {
			sum += m.Quantity
		}
	}
	return sum
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range s.locations {
		l := *v
		c.locations[k] = &l
	}
	for k, v := range s.items {
		i := *v
		c.items[k] = &i
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	for k, v := range s.prodAnalyses {
		a := *v
		c.prodAnalyses[k] = &a
	}
	for k, v := range s.locAnalyses {
		a := *v
		c.locAnalyses[k] = &a
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.locations = snap.locations
	s.items = snap.items
	s.movements = snap.movements
	s.prodAnalyses = snap.prodAnalyses
	s.locAnalyses = snap.locAnalyses
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(ids []string) error {
	for _, id := range ids {
		delete(r.s.products, id)
	}
	return nil
}
func (r *fakeProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListIDs() ([]string, error) {
	ids := make([]string, 0, len(r.s.products))
	for id := range r.s.products {
		ids = append(ids, id)
	}
	return ids, nil
}
func (r *fakeProductRepo) Count() (int, error) { return len(r.s.products), nil }

type fakeLocationRepo struct{ s *memStore }

func (r *fakeLocationRepo) Create(l *entity.Location) error { r.s.locations[l.ID] = l; return nil }
func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	if l, ok := r.s.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeLocationRepo) GetByBarcode(barcode string) (*entity.Location, error) {
	for _, l := range r.s.locations {
		if l.Barcode == barcode {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeLocationRepo) Update(l *entity.Location) error { r.s.locations[l.ID] = l; return nil }
func (r *fakeLocationRepo) Delete(ids []string) error {
	for _, id := range ids {
		delete(r.s.locations, id)
	}
	return nil
}
func (r *fakeLocationRepo) List(string, int, int) ([]*entity.Location, error) { return nil, nil }
func (r *fakeLocationRepo) ListIDs() ([]string, error) {
	ids := make([]string, 0, len(r.s.locations))
	for id := range r.s.locations {
		ids = append(ids, id)
	}
	return ids, nil
}
func (r *fakeLocationRepo) Count() (int, error) { return len(r.s.locations), nil }

type fakeStockItemRepo struct{ s *memStore }

func (r *fakeStockItemRepo) GetForUpdate(productID, locationID string) (*entity.StockItem, error) {
	if item, ok := r.s.items[itemKey(productID, locationID)]; ok {
		cp := *item
		return &cp, nil
	}
	// Sin fila: item en cero, igual que el adaptador de PostgreSQL
	return &entity.StockItem{ProductID: productID, LocationID: locationID}, nil
}

// ApplyDelta suma sobre la cantidad vigente en el estado, igual que el upsert
// por delta del adaptador real: lo que otro escritor dejó antes no se pisa.
func (r *fakeStockItemRepo) ApplyDelta(productID, locationID string, delta int64) error {
	r.s.applyCalls++
	if r.s.failOnApply > 0 && r.s.applyCalls == r.s.failOnApply {
		return errInjected
	}
	if r.s.beforeApplyDelta != nil {
		r.s.beforeApplyDelta(productID, locationID)
	}
	key := itemKey(productID, locationID)
	item, ok := r.s.items[key]
	if !ok {
		item = &entity.StockItem{ID: uuid.New().String(), ProductID: productID, LocationID: locationID}
	}
	if item.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	item.Quantity += delta
	r.s.items[key] = item
	return nil
}

func (r *fakeStockItemRepo) SumByProduct(productID string) (int64, error) {
	var total int64
	for _, item := range r.s.items {
		if item.ProductID == productID {
			total += item.Quantity
		}
	}
	return total, nil
}

func (r *fakeStockItemRepo) TotalOnHand() (int64, error) {
	var total int64
	for _, item := range r.s.items {
		total += item.Quantity
	}
	return total, nil
}

func (r *fakeStockItemRepo) List(string, int, int) ([]repository.StockListRow, error) {
	return nil, nil
}

func (r *fakeStockItemRepo) DeleteByProducts(productIDs []string) error {
	for _, pid := range productIDs {
		for k, item := range r.s.items {
			if item.ProductID == pid {
				delete(r.s.items, k)
			}
		}
	}
	return nil
}

func (r *fakeStockItemRepo) DeleteByLocations(locationIDs []string) error {
	for _, lid := range locationIDs {
		for k, item := range r.s.items {
			if item.LocationID == lid {
				delete(r.s.items, k)
			}
		}
	}
	return nil
}

type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movementCalls++
	if r.s.failOnMovement > 0 && r.s.movementCalls == r.s.failOnMovement {
		return errInjected
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.s.movements {
		m := r.s.movements[i]
		if m.ProductID == productID {
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListHistory(string, int, int) ([]repository.MovementHistoryRow, error) {
	return nil, nil
}

func (r *fakeMovementRepo) OutboundTotalSince(productID string, since time.Time) (int64, error) {
	var total int64
	for _, m := range r.s.movements {
		if m.ProductID == productID && m.Quantity < 0 && !m.CreatedAt.Before(since) {
			total += -m.Quantity
		}
	}
	return total, nil
}

func (r *fakeMovementRepo) LastMovementDate(productID string) (*time.Time, error) {
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

func (r *fakeMovementRepo) PickPlaceCounts(locationID string, since time.Time) (int, int, error) {
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

func (r *fakeMovementRepo) CountSince(since time.Time) (int, error) {
	var count int
	for _, m := range r.s.movements {
		if !m.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeMovementRepo) DeleteByProducts(productIDs []string) error {
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if !contains(productIDs, m.ProductID) {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

func (r *fakeMovementRepo) DeleteByLocations(locationIDs []string) error {
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if !contains(locationIDs, m.LocationID) {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

type fakeProductAnalysisRepo struct{ s *memStore }

func (r *fakeProductAnalysisRepo) Upsert(a *entity.ProductAnalysis) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	cp := *a
	r.s.prodAnalyses[a.ProductID] = &cp
	return nil
}

func (r *fakeProductAnalysisRepo) ListWithProduct() ([]repository.ProductAnalysisRow, error) {
	return nil, nil
}

func (r *fakeProductAnalysisRepo) CountByStatus(status string) (int, error) {
	var count int
	for _, a := range r.s.prodAnalyses {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeProductAnalysisRepo) DeleteByProducts(productIDs []string) error {
	for _, pid := range productIDs {
		delete(r.s.prodAnalyses, pid)
	}
	return nil
}

type fakeLocationAnalysisRepo struct{ s *memStore }

func (r *fakeLocationAnalysisRepo) Upsert(a *entity.LocationAnalysis) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	cp := *a
	r.s.locAnalyses[a.LocationID] = &cp
	return nil
}

func (r *fakeLocationAnalysisRepo) ListWithLocation() ([]repository.LocationAnalysisRow, error) {
	return nil, nil
}

func (r *fakeLocationAnalysisRepo) DeleteByLocations(locationIDs []string) error {
	for _, lid := range locationIDs {
		delete(r.s.locAnalyses, lid)
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner fake con semántica Commit/Rollback
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&fakeMovementRepo{r.s}, &fakeStockItemRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunRetire(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.StockItemRepository,
	prodAnalysisRepo repository.ProductAnalysisRepository,
	locAnalysisRepo repository.LocationAnalysisRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(
		&fakeMovementRepo{r.s},
		&fakeStockItemRepo{r.s},
		&fakeProductAnalysisRepo{r.s},
		&fakeLocationAnalysisRepo{r.s},
		&fakeProductRepo{r.s},
		&fakeLocationRepo{r.s},
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
