package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	queryProductID = "7be43baf-9fbe-4a87-9ab0-aab18fa577dd"
	queryGhostID   = "00000000-0000-4000-8000-0000000000ff"
)

// listProductRepo repo mínimo: un solo producto conocido.
type listProductRepo struct{ product *entity.Product }

func (r *listProductRepo) Create(*entity.Product) error { return nil }
func (r *listProductRepo) GetByID(id string) (*entity.Product, error) {
	if r.product != nil && r.product.ID == id {
		cp := *r.product
		return &cp, nil
	}
	return nil, nil
}
func (r *listProductRepo) GetByBarcode(string) (*entity.Product, error)     { return nil, nil }
func (r *listProductRepo) Update(*entity.Product) error                     { return nil }
func (r *listProductRepo) Delete([]string) error                            { return nil }
func (r *listProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *listProductRepo) ListIDs() ([]string, error)                       { return nil, nil }
func (r *listProductRepo) Count() (int, error)                              { return 0, nil }

// listMovementRepo captura los argumentos con los que se consulta el libro.
type listMovementRepo struct {
	movements []*entity.StockMovement

	gotProductID string
	gotFrom      *time.Time
	gotTo        *time.Time
	gotLimit     int
}

func (r *listMovementRepo) Create(*entity.StockMovement) error { return nil }
func (r *listMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.gotProductID = productID
	r.gotFrom = from
	r.gotTo = to
	r.gotLimit = limit
	return r.movements, nil
}
func (r *listMovementRepo) ListHistory(string, int, int) ([]repository.MovementHistoryRow, error) {
	return nil, nil
}
func (r *listMovementRepo) OutboundTotalSince(string, time.Time) (int64, error) { return 0, nil }
func (r *listMovementRepo) LastMovementDate(string) (*time.Time, error)         { return nil, nil }
func (r *listMovementRepo) PickPlaceCounts(string, time.Time) (int, int, error) { return 0, 0, nil }
func (r *listMovementRepo) CountSince(time.Time) (int, error)                   { return 0, nil }
func (r *listMovementRepo) DeleteByProducts([]string) error                     { return nil }
func (r *listMovementRepo) DeleteByLocations([]string) error                    { return nil }

func buildStockQuery(t *testing.T) (*catalog.StockQueryUseCase, *listMovementRepo) {
	t.Helper()
	movRepo := &listMovementRepo{movements: []*entity.StockMovement{
		{ID: "m1", ProductID: queryProductID, Quantity: 10},
		{ID: "m2", ProductID: queryProductID, Quantity: -4},
	}}
	uc := catalog.NewStockQueryUseCase(
		nil,
		movRepo,
		&listProductRepo{product: &entity.Product{ID: queryProductID, Barcode: "PRD-001", Name: "tornillos"}},
		nil,
	)
	return uc, movRepo
}

func TestListProductMovements_DevuelveElLibroDelProducto(t *testing.T) {
	uc, movRepo := buildStockQuery(t)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	movements, err := uc.ListProductMovements(context.Background(), queryProductID, &from, nil, 0, 0)
	require.NoError(t, err)

	require.Len(t, movements, 2)
	assert.Equal(t, queryProductID, movRepo.gotProductID)
	require.NotNil(t, movRepo.gotFrom)
	assert.True(t, movRepo.gotFrom.Equal(from))
	assert.Nil(t, movRepo.gotTo)
	assert.Equal(t, 50, movRepo.gotLimit, "un límite fuera de rango cae al default")
}

func TestListProductMovements_ProductoInexistente(t *testing.T) {
	uc, _ := buildStockQuery(t)

	_, err := uc.ListProductMovements(context.Background(), queryGhostID, nil, nil, 50, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProductMovements_IDMalformadoEsNoEncontrado(t *testing.T) {
	uc, movRepo := buildStockQuery(t)

	_, err := uc.ListProductMovements(context.Background(), "garbage", nil, nil, 50, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movRepo.gotProductID, "un id malformado no debe llegar al repositorio")
}
