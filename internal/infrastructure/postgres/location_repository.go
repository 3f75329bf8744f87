package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, warehouse_id, name, code, type, is_active, created_at, updated_at`

func scanLocation(row pgxScanner) (*entity.Location, error) {
	var l entity.Location
	var locType string
	if err := row.Scan(&l.ID, &l.WarehouseID, &l.Name, &l.Code, &locType, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Type = entity.LocationType(locType)
	return &l, nil
}

// Create persiste una ubicación. Bodega inexistente → ErrNotFound; código repetido → ErrDuplicate.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `INSERT INTO locations (` + locationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, l.ID, l.WarehouseID, l.Name, l.Code, string(l.Type), l.IsActive, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return writeErr(err, "create location", "ubicación "+l.Code)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "get location", "ubicación "+id)
	}
	return l, nil
}

// GetByWarehouseAndCode obtiene una ubicación por bodega y código.
func (r *LocationRepo) GetByWarehouseAndCode(ctx context.Context, warehouseID, code string) (*entity.Location, error) {
	l, err := scanLocation(r.q.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE warehouse_id = $1 AND code = $2`, warehouseID, code))
	if err != nil {
		return nil, notFound(err, "get location by code", "ubicación "+code)
	}
	return l, nil
}

// ListActive lista ubicaciones activas; warehouseID vacío = todas.
func (r *LocationRepo) ListActive(ctx context.Context, warehouseID string) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE is_active = true`
	args := []any{}
	if warehouseID != "" {
		query += ` AND warehouse_id = $1`
		args = append(args, warehouseID)
	}
	query += ` ORDER BY code`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
