package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Si no hay fila devuelve un item en cero (el par aún no tiene stock).
func (r *StockItemRepo) GetForUpdate(productID, locationID string) (*entity.StockItem, error) {
	query := `
		SELECT id, product_id, location_id, quantity, updated_at
		FROM stock_items WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.StockItem
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ID, &s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockItem{ProductID: productID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return &s, nil
}

// ApplyDelta suma delta a la cantidad del par, creando la fila si no existe.
// La suma la hace la base (quantity = quantity + delta), no el cliente: dos
// escritores concurrentes del mismo par acumulan ambos deltas en vez de que
// el segundo pise la cantidad calculada por el primero. El CHECK de la tabla
// corta cualquier delta que dejara la cantidad negativa.
func (r *StockItemRepo) ApplyDelta(productID, locationID string, delta int64) error {
	query := `
		INSERT INTO stock_items (id, product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = stock_items.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, uuid.New().String(), productID, locationID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// SumByProduct suma el stock de un producto en todas las locaciones.
func (r *StockItemRepo) SumByProduct(productID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_items WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum stock by product: %w", err)
	}
	return total, nil
}

// TotalOnHand suma todo el stock del almacén.
func (r *StockItemRepo) TotalOnHand() (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_items`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total on hand: %w", err)
	}
	return total, nil
}

// List lista el stock con cantidad positiva junto con datos del catálogo.
func (r *StockItemRepo) List(search string, limit, offset int) ([]repository.StockListRow, error) {
	query := `
		SELECT s.product_id, p.barcode, p.name, s.location_id, l.barcode, s.quantity
		FROM stock_items s
		JOIN products p ON p.id = s.product_id
		JOIN locations l ON l.id = s.location_id
		WHERE s.quantity > 0`
	args := []any{}
	if search != "" {
		query += ` AND (p.name ILIKE $1 OR p.barcode ILIKE $1 OR l.barcode ILIKE $1 OR l.description ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(` ORDER BY p.name, l.barcode LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []repository.StockListRow
	for rows.Next() {
		var row repository.StockListRow
		if err := rows.Scan(&row.ProductID, &row.ProductBarcode, &row.ProductName,
			&row.LocationID, &row.LocationBarcode, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// DeleteByProducts borra el stock materializado de los productos dados.
func (r *StockItemRepo) DeleteByProducts(productIDs []string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_items WHERE product_id = ANY($1)`, productIDs)
	if err != nil {
		return fmt.Errorf("delete stock items by products: %w", err)
	}
	return nil
}

// DeleteByLocations borra el stock materializado de las locaciones dadas.
func (r *StockItemRepo) DeleteByLocations(locationIDs []string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_items WHERE location_id = ANY($1)`, locationIDs)
	if err != nil {
		return fmt.Errorf("delete stock items by locations: %w", err)
	}
	return nil
}
