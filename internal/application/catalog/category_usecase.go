package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías de locación.
type CategoryUseCase struct {
	categoryRepo repository.LocationCategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.LocationCategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// Create valida y persiste una categoría nueva (nombre único).
func (uc *CategoryUseCase) Create(ctx context.Context, name string) (*entity.LocationCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := &entity.LocationCategory{ID: uuid.New().String(), Name: name}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renombra una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id, name string) (*entity.LocationCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.Name = name
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete borra una categoría sin locaciones. Con locaciones asociadas
// devuelve ErrConflict: primero hay que mover o retirar las locaciones.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	inUse, err := uc.categoryRepo.CountLocations(id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return domain.ErrConflict
	}
	return uc.categoryRepo.Delete(id)
}

// List devuelve todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]*entity.LocationCategory, error) {
	return uc.categoryRepo.List()
}
