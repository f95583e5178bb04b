package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de locaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, barcode, description, category_id, created_at`

// Create persiste una locación nueva.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, barcode, description, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Barcode, location.Description, location.CategoryID, location.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una locación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.getBy("id", id)
}

// GetByBarcode obtiene una locación por barcode.
func (r *LocationRepo) GetByBarcode(barcode string) (*entity.Location, error) {
	return r.getBy("barcode", barcode)
}

func (r *LocationRepo) getBy(column, value string) (*entity.Location, error) {
	query := fmt.Sprintf(`SELECT %s FROM locations WHERE %s = $1`, locationColumns, column)
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&l.ID, &l.Barcode, &l.Description, &l.CategoryID, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update actualiza descripción y categoría.
func (r *LocationRepo) Update(location *entity.Location) error {
	query := `UPDATE locations SET description = $2, category_id = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Description, location.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// Delete borra locaciones por ID. Los dependientes deben retirarse antes en la misma tx.
func (r *LocationRepo) Delete(ids []string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("delete locations: %w", err)
	}
	return nil
}

// List lista locaciones con búsqueda por barcode o descripción y paginación.
func (r *LocationRepo) List(search string, limit, offset int) ([]*entity.Location, error) {
	query := fmt.Sprintf(`SELECT %s FROM locations`, locationColumns)
	args := []any{}
	if search != "" {
		query += ` WHERE barcode ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(` ORDER BY barcode LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Barcode, &l.Description, &l.CategoryID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListIDs devuelve los IDs de todas las locaciones (para la corrida de análisis).
func (r *LocationRepo) ListIDs() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id FROM locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list location ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan location id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count devuelve el total de locaciones.
func (r *LocationRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM locations`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}
