package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, name, description, created_at, updated_at`

// Create persiste una categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt); err != nil {
		return writeErr(err, "create category", "categoría "+c.Name)
	}
	return nil
}

// GetByName obtiene una categoría por nombre.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "get category", "categoría "+name)
	}
	return &c, nil
}

// ListWithProductCount lista categorías por nombre con el conteo de productos activos.
func (r *CategoryRepo) ListWithProductCount(ctx context.Context) ([]*entity.CategorySummary, error) {
	query := `
		SELECT c.id, c.name, c.description, c.created_at, c.updated_at, count(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category = c.name AND p.is_active
		GROUP BY c.id
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.CategorySummary
	for rows.Next() {
		var s entity.CategorySummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt, &s.ProductCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
