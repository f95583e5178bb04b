package entity

import "time"

// Estados posibles del análisis de locación.
const (
	LocationStatusNormal   = "NORMAL"
	LocationStatusHotZone  = "HOT_ZONE"
	LocationStatusColdZone = "COLD_ZONE"
)

// LocationAnalysis clasifica la actividad de una locación según los movimientos
// de la ventana de análisis (una fila por locación, sobrescrita in place).
type LocationAnalysis struct {
	ID             string
	LocationID     string
	AnalysisDate   time.Time
	TotalMovements int
	PickCount      int
	PlaceCount     int
	Status         string
}
