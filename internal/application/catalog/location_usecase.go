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

// LocationUseCase CRUD de locaciones. Una locación siempre pertenece a una
// categoría existente; el borrado retira en cascada vía ledger.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
	categoryRepo repository.LocationCategoryRepository
	ledgerUC     *ledger.StockLedgerUseCase
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	locationRepo repository.LocationRepository,
	categoryRepo repository.LocationCategoryRepository,
	ledgerUC *ledger.StockLedgerUseCase,
) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo, categoryRepo: categoryRepo, ledgerUC: ledgerUC}
}

// CreateLocationInput datos para crear una locación.
type CreateLocationInput struct {
	Barcode     string
	Description string
	CategoryID  string
}

// Create valida y persiste una locación nueva.
func (uc *LocationUseCase) Create(ctx context.Context, input CreateLocationInput) (*entity.Location, error) {
	barcode := strings.TrimSpace(input.Barcode)
	if barcode == "" || input.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validID(input.CategoryID) {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.locationRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	location := &entity.Location{
		ID:          uuid.New().String(),
		Barcode:     barcode,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

// UpdateLocationInput campos mutables de una locación.
type UpdateLocationInput struct {
	Description string
	CategoryID  string
}

// Update cambia descripción y categoría (la nueva categoría debe existir).
func (uc *LocationUseCase) Update(ctx context.Context, id string, input UpdateLocationInput) (*entity.Location, error) {
	if input.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validID(id) || !validID(input.CategoryID) {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	location.Description = input.Description
	location.CategoryID = input.CategoryID
	if err := uc.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete retira una o más locaciones con todo lo que las referencia.
func (uc *LocationUseCase) Delete(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if !validID(id) {
			return domain.ErrNotFound
		}
		location, err := uc.locationRepo.GetByID(id)
		if err != nil {
			return err
		}
		if location == nil {
			return domain.ErrNotFound
		}
	}
	return uc.ledgerUC.BulkRetire(ctx, ledger.RetireLocations, ids)
}

// Get obtiene una locación por ID.
func (uc *LocationUseCase) Get(ctx context.Context, id string) (*entity.Location, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return location, nil
}

// List lista locaciones con búsqueda por barcode o descripción.
func (uc *LocationUseCase) List(ctx context.Context, query string, limit, offset int) ([]*entity.Location, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.locationRepo.List(query, limit, offset)
}
