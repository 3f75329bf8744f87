package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, category, unit_of_measure, reorder_point, optimal_stock, is_active, created_at, updated_at`

func scanProduct(row pgxScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.UnitOfMeasure,
		&p.ReorderPoint, &p.OptimalStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.UnitOfMeasure,
		p.ReorderPoint, p.OptimalStock, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeErr(err, "create product", "sku "+p.SKU)
	}
	return nil
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "get product", "producto "+id)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		return nil, notFound(err, "get product by sku", "sku "+sku)
	}
	return p, nil
}

// Update actualiza los datos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $2, name = $3, description = $4, category = $5, unit_of_measure = $6,
		    reorder_point = $7, optimal_stock = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.UnitOfMeasure,
		p.ReorderPoint, p.OptimalStock, p.UpdatedAt,
	)
	if err != nil {
		return writeErr(err, "update product", "sku "+p.SKU)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// List lista productos activos con búsqueda por nombre/SKU y categoría; devuelve también el total.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := ` WHERE is_active = true`
	args := []any{}
	pos := 1
	if f.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", pos, pos)
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	if f.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, f.Category)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY name, sku`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, f.Limit)
		pos++
	}
	query += fmt.Sprintf(" OFFSET $%d", pos)
	args = append(args, f.Offset)
	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListActive devuelve todos los productos activos.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE is_active = true ORDER BY sku`)
}

// Deactivate hace la baja lógica del producto.
func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
