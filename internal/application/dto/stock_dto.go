package dto

import "time"

// StockMovementRequest cuerpo para agregar o retirar stock.
type StockMovementRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"`
}

// StockTransferRequest cuerpo para transferir stock entre locaciones.
type StockTransferRequest struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"`
}

// StockRowResponse una fila del listado de stock.
type StockRowResponse struct {
	ProductID       string `json:"product_id"`
	ProductBarcode  string `json:"product_barcode"`
	ProductName     string `json:"product_name"`
	LocationID      string `json:"location_id"`
	LocationBarcode string `json:"location_barcode"`
	Quantity        int64  `json:"quantity"`
}

// ProductMovementResponse un movimiento del libro de un producto.
type ProductMovementResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	Quantity   int64     `json:"quantity"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// MovementRowResponse una fila del historial de movimientos.
type MovementRowResponse struct {
	MovementID      string    `json:"movement_id"`
	ProductBarcode  string    `json:"product_barcode"`
	ProductName     string    `json:"product_name"`
	LocationBarcode string    `json:"location_barcode"`
	Quantity        int64     `json:"quantity"`
	UserID          string    `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
}
