package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados posibles del análisis de producto.
const (
	ProductStatusHealthy    = "HEALTHY"
	ProductStatusReorderNow = "REORDER_NOW"
	ProductStatusSlowMoving = "SLOW_MOVING"
)

// DaysOfSupplySentinel indica que no hay salidas medibles en la ventana.
const DaysOfSupplySentinel = 9999

// ProductAnalysis es la foto estratégica de un producto, recalculada en cada
// corrida del análisis (una fila por producto, sobrescrita in place).
type ProductAnalysis struct {
	ID               string
	ProductID        string
	AnalysisDate     time.Time
	DailyVelocity    decimal.Decimal
	DaysOfSupply     int
	LastMovementDate *time.Time
	Status           string
}
