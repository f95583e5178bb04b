package entity

import "time"

// StockMovement representa un hecho inmutable del libro de movimientos:
// positivo = entrada, negativo = salida. Nunca se actualiza ni se borra,
// salvo al retirar en cascada el producto o la locación referenciada.
// El libro es la fuente de verdad; StockItem es una vista materializada.
type StockMovement struct {
	ID         string
	ProductID  string
	LocationID string
	Quantity   int64
	UserID     string
	CreatedAt  time.Time
}
