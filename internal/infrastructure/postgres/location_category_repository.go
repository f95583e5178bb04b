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

var _ repository.LocationCategoryRepository = (*LocationCategoryRepo)(nil)

// LocationCategoryRepo implementación de LocationCategoryRepository sobre PostgreSQL.
type LocationCategoryRepo struct {
	q Querier
}

// NewLocationCategoryRepository construye el adaptador de categorías. Pasar pool o tx (Querier).
func NewLocationCategoryRepository(q Querier) *LocationCategoryRepo {
	return &LocationCategoryRepo{q: q}
}

// Create persiste una categoría nueva.
func (r *LocationCategoryRepo) Create(category *entity.LocationCategory) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO location_categories (id, name) VALUES ($1, $2)`,
		category.ID, category.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *LocationCategoryRepo) GetByID(id string) (*entity.LocationCategory, error) {
	return r.getBy("id", id)
}

// GetByName obtiene una categoría por nombre.
func (r *LocationCategoryRepo) GetByName(name string) (*entity.LocationCategory, error) {
	return r.getBy("name", name)
}

func (r *LocationCategoryRepo) getBy(column, value string) (*entity.LocationCategory, error) {
	query := fmt.Sprintf(`SELECT id, name FROM location_categories WHERE %s = $1`, column)
	var c entity.LocationCategory
	err := r.q.QueryRow(context.Background(), query, value).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location category: %w", err)
	}
	return &c, nil
}

// Update renombra una categoría.
func (r *LocationCategoryRepo) Update(category *entity.LocationCategory) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE location_categories SET name = $2 WHERE id = $1`,
		category.ID, category.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update location category: %w", err)
	}
	return nil
}

// Delete borra una categoría por ID.
func (r *LocationCategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM location_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location category: %w", err)
	}
	return nil
}

// List devuelve todas las categorías ordenadas por nombre.
func (r *LocationCategoryRepo) List() ([]*entity.LocationCategory, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name FROM location_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list location categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.LocationCategory
	for rows.Next() {
		var c entity.LocationCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan location category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CountLocations devuelve cuántas locaciones referencian la categoría.
func (r *LocationCategoryRepo) CountLocations(categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM locations WHERE category_id = $1`, categoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count locations by category: %w", err)
	}
	return n, nil
}
