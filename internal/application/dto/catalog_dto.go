package dto

import "time"

// ProductRequest cuerpo para crear o actualizar un producto.
type ProductRequest struct {
	Barcode           string `json:"barcode"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	MinimumStockLevel int    `json:"minimum_stock_level"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID                string    `json:"id"`
	Barcode           string    `json:"barcode"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	MinimumStockLevel int       `json:"minimum_stock_level"`
	CreatedAt         time.Time `json:"created_at"`
}

// LocationRequest cuerpo para crear o actualizar una locación.
type LocationRequest struct {
	Barcode     string `json:"barcode"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
}

// LocationResponse locación del catálogo.
type LocationResponse struct {
	ID          string `json:"id"`
	Barcode     string `json:"barcode"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
}

// CategoryRequest cuerpo para crear o renombrar una categoría.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse categoría de locación.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
