package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para locaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByBarcode(barcode string) (*entity.Location, error)
	Update(location *entity.Location) error
	Delete(ids []string) error
	List(query string, limit, offset int) ([]*entity.Location, error)
	ListIDs() ([]string, error)
	Count() (int, error)
}

// LocationCategoryRepository define el puerto para categorías de locación.
type LocationCategoryRepository interface {
	Create(category *entity.LocationCategory) error
	GetByID(id string) (*entity.LocationCategory, error)
	GetByName(name string) (*entity.LocationCategory, error)
	Update(category *entity.LocationCategory) error
	Delete(id string) error
	List() ([]*entity.LocationCategory, error)
	// CountLocations devuelve cuántas locaciones referencian la categoría
	// (una categoría en uso no puede borrarse).
	CountLocations(categoryID string) (int, error)
}
