package entity

import "time"

// LocationCategory agrupa lugares físicos (estantería, muelle, cuarentena, etc.).
type LocationCategory struct {
	ID   string
	Name string
}

// Location representa un lugar físico de almacenamiento. Pertenece siempre a una
// categoría (CategoryID no puede estar vacío).
type Location struct {
	ID          string
	Barcode     string
	Description string
	CategoryID  string
	CreatedAt   time.Time
}
