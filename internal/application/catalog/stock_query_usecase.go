package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// BarcodeResult resultado de resolver un barcode escaneado: o es un producto
// o es una locación, nunca ambos (los barcodes son únicos por tabla y el
// flujo de escaneo prueba producto primero, como el mostrador original).
type BarcodeResult struct {
	Kind     string // "product" | "location"
	Product  *entity.Product
	Location *entity.Location
}

// StockQueryUseCase consultas de solo lectura sobre stock e historial.
type StockQueryUseCase struct {
	itemRepo     repository.StockItemRepository
	movRepo      repository.StockMovementRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		itemRepo:     itemRepo,
		movRepo:      movRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// ListStock lista el stock actual (cantidad > 0) con datos de catálogo.
func (uc *StockQueryUseCase) ListStock(ctx context.Context, query string, limit, offset int) ([]repository.StockListRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.itemRepo.List(query, limit, offset)
}

// ListHistory lista el historial de movimientos, más reciente primero.
func (uc *StockQueryUseCase) ListHistory(ctx context.Context, query string, limit, offset int) ([]repository.MovementHistoryRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.ListHistory(query, limit, offset)
}

// ListProductMovements lista el libro de un producto, opcionalmente acotado
// por fechas. El producto debe existir.
func (uc *StockQueryUseCase) ListProductMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if !validID(productID) {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}

// ResolveBarcode resuelve un barcode escaneado a producto o locación.
func (uc *StockQueryUseCase) ResolveBarcode(ctx context.Context, barcode string) (*BarcodeResult, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return &BarcodeResult{Kind: "product", Product: product}, nil
	}
	location, err := uc.locationRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if location != nil {
		return &BarcodeResult{Kind: "location", Location: location}, nil
	}
	return nil, domain.ErrNotFound
}
