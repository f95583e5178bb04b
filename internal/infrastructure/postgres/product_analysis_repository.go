package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductAnalysisRepository = (*ProductAnalysisRepo)(nil)

// ProductAnalysisRepo implementación de ProductAnalysisRepository sobre PostgreSQL.
type ProductAnalysisRepo struct {
	q Querier
}

// NewProductAnalysisRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductAnalysisRepository(q Querier) *ProductAnalysisRepo {
	return &ProductAnalysisRepo{q: q}
}

// Upsert escribe la fila de análisis del producto (una por producto,
// sobrescrita en cada corrida gracias al UNIQUE sobre product_id).
func (r *ProductAnalysisRepo) Upsert(analysis *entity.ProductAnalysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_analysis (id, product_id, analysis_date, daily_velocity, days_of_supply, last_movement_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id)
		DO UPDATE SET analysis_date = EXCLUDED.analysis_date,
		              daily_velocity = EXCLUDED.daily_velocity,
		              days_of_supply = EXCLUDED.days_of_supply,
		              last_movement_date = EXCLUDED.last_movement_date,
		              status = EXCLUDED.status`
	_, err := r.q.Exec(context.Background(), query,
		analysis.ID, analysis.ProductID, analysis.AnalysisDate,
		analysis.DailyVelocity, analysis.DaysOfSupply, analysis.LastMovementDate, analysis.Status,
	)
	if err != nil {
		return fmt.Errorf("upsert product analysis: %w", err)
	}
	return nil
}

// ListWithProduct devuelve el panel de productos con barcode y nombre.
func (r *ProductAnalysisRepo) ListWithProduct() ([]repository.ProductAnalysisRow, error) {
	query := `
		SELECT a.product_id, p.barcode, p.name, a.analysis_date, a.daily_velocity,
		       a.days_of_supply, a.last_movement_date, a.status
		FROM product_analysis a
		JOIN products p ON p.id = a.product_id
		ORDER BY a.days_of_supply, p.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list product analysis: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductAnalysisRow
	for rows.Next() {
		var row repository.ProductAnalysisRow
		if err := rows.Scan(&row.ProductID, &row.Barcode, &row.Name, &row.AnalysisDate,
			&row.DailyVelocity, &row.DaysOfSupply, &row.LastMovementDate, &row.Status); err != nil {
			return nil, fmt.Errorf("scan product analysis row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CountByStatus cuenta productos con el estado dado.
func (r *ProductAnalysisRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM product_analysis WHERE status = $1`, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count product analysis by status: %w", err)
	}
	return n, nil
}

// DeleteByProducts borra las filas de análisis de los productos dados.
func (r *ProductAnalysisRepo) DeleteByProducts(productIDs []string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM product_analysis WHERE product_id = ANY($1)`, productIDs)
	if err != nil {
		return fmt.Errorf("delete product analysis: %w", err)
	}
	return nil
}
