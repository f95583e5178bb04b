package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.LocationAnalysisRepository = (*LocationAnalysisRepo)(nil)

// LocationAnalysisRepo implementación de LocationAnalysisRepository sobre PostgreSQL.
type LocationAnalysisRepo struct {
	q Querier
}

// NewLocationAnalysisRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationAnalysisRepository(q Querier) *LocationAnalysisRepo {
	return &LocationAnalysisRepo{q: q}
}

// Upsert escribe la fila de análisis de la locación (una por locación,
// sobrescrita en cada corrida gracias al UNIQUE sobre location_id).
func (r *LocationAnalysisRepo) Upsert(analysis *entity.LocationAnalysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	query := `
		INSERT INTO location_analysis (id, location_id, analysis_date, total_movements, pick_count, place_count, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (location_id)
		DO UPDATE SET analysis_date = EXCLUDED.analysis_date,
		              total_movements = EXCLUDED.total_movements,
		              pick_count = EXCLUDED.pick_count,
		              place_count = EXCLUDED.place_count,
		              status = EXCLUDED.status`
	_, err := r.q.Exec(context.Background(), query,
		analysis.ID, analysis.LocationID, analysis.AnalysisDate,
		analysis.TotalMovements, analysis.PickCount, analysis.PlaceCount, analysis.Status,
	)
	if err != nil {
		return fmt.Errorf("upsert location analysis: %w", err)
	}
	return nil
}

// ListWithLocation devuelve el panel de locaciones con barcode.
func (r *LocationAnalysisRepo) ListWithLocation() ([]repository.LocationAnalysisRow, error) {
	query := `
		SELECT a.location_id, l.barcode, a.analysis_date, a.total_movements,
		       a.pick_count, a.place_count, a.status
		FROM location_analysis a
		JOIN locations l ON l.id = a.location_id
		ORDER BY a.total_movements DESC, l.barcode`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list location analysis: %w", err)
	}
	defer rows.Close()
	var list []repository.LocationAnalysisRow
	for rows.Next() {
		var row repository.LocationAnalysisRow
		if err := rows.Scan(&row.LocationID, &row.Barcode, &row.AnalysisDate,
			&row.TotalMovements, &row.PickCount, &row.PlaceCount, &row.Status); err != nil {
			return nil, fmt.Errorf("scan location analysis row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// DeleteByLocations borra las filas de análisis de las locaciones dadas.
func (r *LocationAnalysisRepo) DeleteByLocations(locationIDs []string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM location_analysis WHERE location_id = ANY($1)`, locationIDs)
	if err != nil {
		return fmt.Errorf("delete location analysis: %w", err)
	}
	return nil
}
