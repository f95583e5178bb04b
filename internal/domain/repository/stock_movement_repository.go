package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementHistoryRow resultado crudo del historial de movimientos con datos
// de catálogo para el listado.
type MovementHistoryRow struct {
	MovementID      string
	ProductBarcode  string
	ProductName     string
	LocationBarcode string
	Quantity        int64
	UserID          string
	CreatedAt       time.Time
}

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos. El libro es append-only: no existe Update.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListHistory(query string, limit, offset int) ([]MovementHistoryRow, error)
	// OutboundTotalSince devuelve la suma de valores absolutos de los deltas
	// negativos del producto desde la fecha dada.
	OutboundTotalSince(productID string, since time.Time) (int64, error)
	LastMovementDate(productID string) (*time.Time, error)
	// PickPlaceCounts cuenta movimientos negativos (pick) y positivos (place)
	// de la locación desde la fecha dada.
	PickPlaceCounts(locationID string, since time.Time) (pick int, place int, err error)
	CountSince(since time.Time) (int, error)
	DeleteByProducts(productIDs []string) error
	DeleteByLocations(locationIDs []string) error
}
