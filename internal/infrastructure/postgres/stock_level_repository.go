package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo ledger de stock por (producto, ubicación) sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockLevelColumns = `product_id, location_id, quantity, reserved, available, updated_at`

func scanStockLevel(row pgxScanner) (*entity.StockLevel, error) {
	var s entity.StockLevel
	if err := row.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.Reserved, &s.Available, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StockLevelRepo) get(ctx context.Context, query, op, productID, locationID string) (*entity.StockLevel, error) {
	s, err := scanStockLevel(r.q.QueryRow(ctx, query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.ZeroStockLevel(productID, locationID), nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Get obtiene el stock de un producto en una ubicación; ceros si no hay fila.
func (r *StockLevelRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels WHERE product_id = $1 AND location_id = $2`
	return r.get(ctx, query, "get stock level", productID, locationID)
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE). Si la fila aún no existe
// toma un advisory lock de transacción sobre el par (producto, ubicación) y vuelve a leer: así una
// creación concurrente del mismo par espera al commit en lugar de pisarse con esta transacción.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels WHERE product_id = $1 AND location_id = $2 FOR UPDATE`
	s, err := scanStockLevel(r.q.QueryRow(ctx, query, productID, locationID))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	if _, err := r.q.Exec(ctx, stockKeyLockQuery, productID, locationID); err != nil {
		return nil, fmt.Errorf("lock stock key: %w", err)
	}
	return r.get(ctx, query, "get stock level for update", productID, locationID)
}

// stockKeyLockQuery serializa a quienes encuentran ausente el mismo par; se libera al terminar la tx.
const stockKeyLockQuery = `SELECT pg_advisory_xact_lock(hashtext($1::text || '/' || $2::text))`

// AddDelta suma los deltas a quantity y available, creando la fila si no existe.
func (r *StockLevelRepo) AddDelta(ctx context.Context, productID, locationID string, qtyDelta, availDelta decimal.Decimal) (*entity.StockLevel, error) {
	query := `
		INSERT INTO stock_levels (product_id, location_id, quantity, reserved, available, updated_at)
		VALUES ($1, $2, $3, 0, $4, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = stock_levels.quantity + EXCLUDED.quantity,
		              available = stock_levels.available + EXCLUDED.available,
		              updated_at = now()
		RETURNING ` + stockLevelColumns
	s, err := scanStockLevel(r.q.QueryRow(ctx, query, productID, locationID, qtyDelta, availDelta))
	if err != nil {
		return nil, writeErr(err, "add stock delta", "stock "+productID+"@"+locationID)
	}
	return s, nil
}

// SetQuantity fija quantity de forma absoluta; available = quantity - reserved.
func (r *StockLevelRepo) SetQuantity(ctx context.Context, productID, locationID string, quantity decimal.Decimal) (*entity.StockLevel, error) {
	query := `
		INSERT INTO stock_levels (product_id, location_id, quantity, reserved, available, updated_at)
		VALUES ($1, $2, $3, 0, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              available = EXCLUDED.quantity - stock_levels.reserved,
		              updated_at = now()
		RETURNING ` + stockLevelColumns
	s, err := scanStockLevel(r.q.QueryRow(ctx, query, productID, locationID, quantity))
	if err != nil {
		return nil, writeErr(err, "set stock quantity", "stock "+productID+"@"+locationID)
	}
	return s, nil
}

// ListByProduct devuelve el stock del producto por ubicación con nombres, mayor cantidad primero.
func (r *StockLevelRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLocation, error) {
	query := `
		SELECT s.product_id, s.location_id, s.quantity, s.reserved, s.available, s.updated_at,
		       l.name, l.code, w.id, w.name
		FROM stock_levels s
		JOIN locations l ON l.id = s.location_id
		JOIN warehouses w ON w.id = l.warehouse_id
		WHERE s.product_id = $1
		ORDER BY s.quantity DESC, l.code`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLocation
	for rows.Next() {
		var sl entity.StockLocation
		if err := rows.Scan(&sl.ProductID, &sl.LocationID, &sl.Quantity, &sl.Reserved, &sl.Available, &sl.UpdatedAt,
			&sl.LocationName, &sl.LocationCode, &sl.WarehouseID, &sl.WarehouseName); err != nil {
			return nil, fmt.Errorf("scan stock location: %w", err)
		}
		list = append(list, &sl)
	}
	return list, rows.Err()
}

// TotalsByProduct suma cantidad en mano y disponible por producto.
func (r *StockLevelRepo) TotalsByProduct(ctx context.Context) (map[string]entity.StockTotals, error) {
	rows, err := r.q.Query(ctx, `SELECT product_id, SUM(quantity), SUM(available) FROM stock_levels GROUP BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("stock totals: %w", err)
	}
	defer rows.Close()
	out := make(map[string]entity.StockTotals)
	for rows.Next() {
		var id string
		var t entity.StockTotals
		if err := rows.Scan(&id, &t.Quantity, &t.Available); err != nil {
			return nil, fmt.Errorf("scan stock total: %w", err)
		}
		out[id] = t
	}
	return out, rows.Err()
}
