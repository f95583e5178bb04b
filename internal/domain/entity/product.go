package entity

import "time"

// Product representa un producto del catálogo. El barcode es inmutable y único;
// MinimumStockLevel es un umbral informativo (no bloquea movimientos).
type Product struct {
	ID                string
	Barcode           string
	Name              string
	Description       string
	MinimumStockLevel int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
