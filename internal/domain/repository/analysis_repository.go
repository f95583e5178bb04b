package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductAnalysisRow fila del panel estratégico con datos del producto.
type ProductAnalysisRow struct {
	ProductID        string
	Barcode          string
	Name             string
	AnalysisDate     time.Time
	DailyVelocity    decimal.Decimal
	DaysOfSupply     int
	LastMovementDate *time.Time
	Status           string
}

// LocationAnalysisRow fila del panel estratégico con datos de la locación.
type LocationAnalysisRow struct {
	LocationID     string
	Barcode        string
	AnalysisDate   time.Time
	TotalMovements int
	PickCount      int
	PlaceCount     int
	Status         string
}

// ProductAnalysisRepository puerto de persistencia de análisis de productos.
// Las filas solo las escribe el motor de análisis; el resto del sistema las lee.
type ProductAnalysisRepository interface {
	Upsert(analysis *entity.ProductAnalysis) error
	ListWithProduct() ([]ProductAnalysisRow, error)
	CountByStatus(status string) (int, error)
	DeleteByProducts(productIDs []string) error
}

// LocationAnalysisRepository puerto de persistencia de análisis de locaciones.
type LocationAnalysisRepository interface {
	Upsert(analysis *entity.LocationAnalysis) error
	ListWithLocation() ([]LocationAnalysisRow, error)
	DeleteByLocations(locationIDs []string) error
}
