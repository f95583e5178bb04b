package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// validID reporta si id es un UUID bien formado. Un id malformado jamás
// referencia una fila existente, así que se trata igual que un no-encontrado
// sin llegar a la base.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// ProductUseCase CRUD de productos del catálogo. El borrado delega en el
// ledger para retirar en cascada movimientos y stock de forma atómica.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	ledgerUC    *ledger.StockLedgerUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, ledgerUC *ledger.StockLedgerUseCase) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, ledgerUC: ledgerUC}
}

// CreateProductInput datos para crear un producto.
type CreateProductInput struct {
	Barcode           string
	Name              string
	Description       string
	MinimumStockLevel int
}

// Create valida y persiste un producto nuevo. El barcode debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	barcode := strings.TrimSpace(input.Barcode)
	name := strings.TrimSpace(input.Name)
	if barcode == "" || name == "" || input.MinimumStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Barcode:           barcode,
		Name:              name,
		Description:       input.Description,
		MinimumStockLevel: input.MinimumStockLevel,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput campos mutables de un producto (el barcode es inmutable).
type UpdateProductInput struct {
	Name              string
	Description       string
	MinimumStockLevel int
}

// Update modifica nombre, descripción y stock mínimo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, input UpdateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.MinimumStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = name
	product.Description = input.Description
	product.MinimumStockLevel = input.MinimumStockLevel
	product.UpdatedAt = time.Now().UTC()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete retira el producto y todo lo que lo referencia (movimientos, stock,
// análisis) en una sola transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if !validID(id) {
			return domain.ErrNotFound
		}
		product, err := uc.productRepo.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
	}
	return uc.ledgerUC.BulkRetire(ctx, ledger.RetireProducts, ids)
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista productos con búsqueda por nombre o barcode.
func (uc *ProductUseCase) List(ctx context.Context, query string, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.productRepo.List(query, limit, offset)
}
