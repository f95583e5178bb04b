package dto

import "time"

// ProductAnalysisResponse fila del panel estratégico de productos.
type ProductAnalysisResponse struct {
	ProductID        string     `json:"product_id"`
	Barcode          string     `json:"barcode"`
	Name             string     `json:"name"`
	AnalysisDate     time.Time  `json:"analysis_date"`
	DailyVelocity    string     `json:"daily_velocity"`
	DaysOfSupply     int        `json:"days_of_supply"`
	LastMovementDate *time.Time `json:"last_movement_date,omitempty"`
	Status           string     `json:"status"`
}

// LocationAnalysisResponse fila del panel estratégico de locaciones.
type LocationAnalysisResponse struct {
	LocationID     string    `json:"location_id"`
	Barcode        string    `json:"barcode"`
	AnalysisDate   time.Time `json:"analysis_date"`
	TotalMovements int       `json:"total_movements"`
	PickCount      int       `json:"pick_count"`
	PlaceCount     int       `json:"place_count"`
	Status         string    `json:"status"`
}

// DashboardResponse métricas de la pantalla principal.
type DashboardResponse struct {
	ProductCount    int   `json:"product_count"`
	LocationCount   int   `json:"location_count"`
	TotalOnHand     int64 `json:"total_on_hand"`
	MovementsLast24 int   `json:"movements_last_24h"`
	ReorderNowCount int   `json:"reorder_now_count"`
}
