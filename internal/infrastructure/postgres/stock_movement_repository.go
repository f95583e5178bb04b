package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). El libro es append-only: solo INSERT, consultas y el
// DELETE del retiro en cascada.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, location_id, quantity, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.LocationID,
		movement.Quantity, movement.UserID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, location_id, quantity, user_id, created_at
		FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.LocationID, &m.Quantity, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListHistory lista el historial con datos de catálogo, más reciente primero.
func (r *StockMovementRepo) ListHistory(search string, limit, offset int) ([]repository.MovementHistoryRow, error) {
	query := `
		SELECT m.id, p.barcode, p.name, l.barcode, m.quantity, m.user_id, m.created_at
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		JOIN locations l ON l.id = m.location_id`
	args := []any{}
	if search != "" {
		query += ` WHERE p.name ILIKE $1 OR p.barcode ILIKE $1 OR l.barcode ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(` ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movement history: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementHistoryRow
	for rows.Next() {
		var row repository.MovementHistoryRow
		if err := rows.Scan(&row.MovementID, &row.ProductBarcode, &row.ProductName,
			&row.LocationBarcode, &row.Quantity, &row.UserID, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// OutboundTotalSince suma el valor absoluto de los deltas negativos del
// producto desde la fecha dada.
func (r *StockMovementRepo) OutboundTotalSince(productID string, since time.Time) (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(-quantity), 0)
		FROM stock_movements
		WHERE product_id = $1 AND quantity < 0 AND created_at >= $2`,
		productID, since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("outbound total: %w", err)
	}
	return total, nil
}

// LastMovementDate devuelve la fecha del movimiento más reciente del producto,
// o nil si nunca tuvo movimientos.
func (r *StockMovementRepo) LastMovementDate(productID string) (*time.Time, error) {
	var last time.Time
	err := r.q.QueryRow(context.Background(), `
		SELECT created_at FROM stock_movements
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT 1`,
		productID,
	).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last movement date: %w", err)
	}
	return &last, nil
}

// PickPlaceCounts cuenta movimientos negativos (pick) y positivos (place) de
// la locación desde la fecha dada.
func (r *StockMovementRepo) PickPlaceCounts(locationID string, since time.Time) (int, int, error) {
	var pick, place int
	err := r.q.QueryRow(context.Background(), `
		SELECT
			COUNT(*) FILTER (WHERE quantity < 0),
			COUNT(*) FILTER (WHERE quantity > 0)
		FROM stock_movements
		WHERE location_id = $1 AND created_at >= $2`,
		locationID, since,
	).Scan(&pick, &place)
	if err != nil {
		return 0, 0, fmt.Errorf("pick/place counts: %w", err)
	}
	return pick, place, nil
}

// CountSince cuenta movimientos desde la fecha dada (todas las locaciones).
func (r *StockMovementRepo) CountSince(since time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock_movements WHERE created_at >= $1`, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// DeleteByProducts borra los movimientos de los productos dados (retiro en cascada).
func (r *StockMovementRepo) DeleteByProducts(productIDs []string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE product_id = ANY($1)`, productIDs)
	if err != nil {
		return fmt.Errorf("delete movements by products: %w", err)
	}
	return nil
}

// DeleteByLocations borra los movimientos de las locaciones dadas (retiro en cascada).
func (r *StockMovementRepo) DeleteByLocations(locationIDs []string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE location_id = ANY($1)`, locationIDs)
	if err != nil {
		return fmt.Errorf("delete movements by locations: %w", err)
	}
	return nil
}
