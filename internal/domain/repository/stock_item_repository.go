package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// StockListRow resultado crudo del listado de stock con datos de catálogo.
// Lo produce la DB; el use case lo convierte en DTO.
type StockListRow struct {
	ProductID       string
	ProductBarcode  string
	ProductName     string
	LocationID      string
	LocationBarcode string
	Quantity        int64
}

// StockItemRepository define el puerto para consultar/actualizar el stock
// materializado por (producto, locación). Usado dentro de transacciones
// para garantizar consistencia con el libro de movimientos.
type StockItemRepository interface {
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si el par
	// aún no tiene fila devuelve un item en cero.
	GetForUpdate(productID, locationID string) (*entity.StockItem, error)
	// ApplyDelta suma delta a la cantidad del par, creando la fila si no
	// existe. La suma ocurre en la base de datos: escrituras concurrentes
	// sobre el mismo par nunca se pisan entre sí.
	ApplyDelta(productID, locationID string, delta int64) error
	SumByProduct(productID string) (int64, error)
	TotalOnHand() (int64, error)
	List(query string, limit, offset int) ([]StockListRow, error)
	DeleteByProducts(productIDs []string) error
	DeleteByLocations(locationIDs []string) error
}
