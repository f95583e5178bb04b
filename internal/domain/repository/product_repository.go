package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	// Delete borra la fila del producto. Los movimientos y stock dependientes
	// deben retirarse antes, en la misma transacción (ledger.BulkRetire).
	Delete(ids []string) error
	List(query string, limit, offset int) ([]*entity.Product, error)
	ListIDs() ([]string, error)
	Count() (int, error)
}
