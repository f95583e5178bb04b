package entity

import "time"

// StockItem representa el stock actual de un producto en una locación
// (tabla materializada sobre los movimientos). Existe a lo sumo una fila
// por (ProductID, LocationID) y Quantity nunca es negativa.
type StockItem struct {
	ID         string
	ProductID  string
	LocationID string
	Quantity   int64
	UpdatedAt  time.Time
}
