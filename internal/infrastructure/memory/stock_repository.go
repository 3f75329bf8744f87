package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.StockLevelRepository = (*StockLevelRepo)(nil)
	_ repository.StockMoveRepository  = (*StockMoveRepo)(nil)
)

// StockLevelRepo implementación en memoria del ledger.
type StockLevelRepo struct{ b *binding }

func (r *StockLevelRepo) get(productID, locationID string) *entity.StockLevel {
	var out *entity.StockLevel
	r.b.read(func(st *state) {
		if lvl, ok := st.levels[stockKey{productID, locationID}]; ok {
			c := *lvl
			out = &c
		}
	})
	if out == nil {
		return entity.ZeroStockLevel(productID, locationID)
	}
	return out
}

// Get devuelve el nivel; ceros si no existe.
func (r *StockLevelRepo) Get(_ context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return r.get(productID, locationID), nil
}

// GetForUpdate equivale a Get: la transacción ya tiene acceso exclusivo al estado.
func (r *StockLevelRepo) GetForUpdate(_ context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return r.get(productID, locationID), nil
}

// AddDelta suma los deltas creando la fila si no existe.
func (r *StockLevelRepo) AddDelta(_ context.Context, productID, locationID string, qtyDelta, availDelta decimal.Decimal) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.b.write("stock_levels.add", func(st *state) error {
		k := stockKey{productID, locationID}
		cur, ok := st.levels[k]
		if !ok {
			cur = entity.ZeroStockLevel(productID, locationID)
		}
		next := *cur
		next.Quantity = cur.Quantity.Add(qtyDelta)
		next.Available = cur.Available.Add(availDelta)
		next.UpdatedAt = r.b.now()
		st.levels[k] = &next
		c := next
		out = &c
		return nil
	})
	return out, err
}

// SetQuantity fija quantity y recalcula available preservando reserved.
func (r *StockLevelRepo) SetQuantity(_ context.Context, productID, locationID string, quantity decimal.Decimal) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.b.write("stock_levels.set", func(st *state) error {
		k := stockKey{productID, locationID}
		cur, ok := st.levels[k]
		if !ok {
			cur = entity.ZeroStockLevel(productID, locationID)
		}
		next := *cur
		next.Quantity = quantity
		next.Available = quantity.Sub(cur.Reserved)
		next.UpdatedAt = r.b.now()
		st.levels[k] = &next
		c := next
		out = &c
		return nil
	})
	return out, err
}

// ListByProduct devuelve el stock por ubicación, mayor cantidad primero.
func (r *StockLevelRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockLocation, error) {
	var out []*entity.StockLocation
	r.b.read(func(st *state) {
		for k, lvl := range st.levels {
			if k.productID != productID {
				continue
			}
			sl := &entity.StockLocation{StockLevel: *lvl}
			if loc, ok := st.locations[k.locationID]; ok {
				sl.LocationName, sl.LocationCode, sl.WarehouseID = loc.Name, loc.Code, loc.WarehouseID
				if w, ok := st.warehouses[loc.WarehouseID]; ok {
					sl.WarehouseName = w.Name
				}
			}
			out = append(out, sl)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Quantity.Cmp(out[j].Quantity); c != 0 {
			return c > 0
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}

// TotalsByProduct suma cantidad y disponible de cada producto en todas sus ubicaciones.
func (r *StockLevelRepo) TotalsByProduct(_ context.Context) (map[string]entity.StockTotals, error) {
	out := make(map[string]entity.StockTotals)
	r.b.read(func(st *state) {
		for k, lvl := range st.levels {
			t := out[k.productID]
			out[k.productID] = entity.StockTotals{
				Quantity:  t.Quantity.Add(lvl.Quantity),
				Available: t.Available.Add(lvl.Available),
			}
		}
	})
	return out, nil
}

// StockMoveRepo implementación en memoria del historial de movimientos.
type StockMoveRepo struct{ b *binding }

// Create agrega el movimiento.
func (r *StockMoveRepo) Create(_ context.Context, m *entity.StockMove) error {
	return r.b.write("stock_moves.create", func(st *state) error {
		for _, existing := range st.moves {
			if existing.ID == m.ID {
				return fmt.Errorf("movimiento %s: %w", m.ID, domain.ErrDuplicate)
			}
		}
		c := *m
		st.moves = append(st.moves, &c)
		return nil
	})
}

// List filtra y devuelve los movimientos más recientes primero.
func (r *StockMoveRepo) List(_ context.Context, f repository.MoveFilter) ([]*entity.StockMove, error) {
	var out []*entity.StockMove
	r.b.read(func(st *state) {
		// recorrer al revés conserva el orden de inserción como desempate
		for i := len(st.moves) - 1; i >= 0; i-- {
			m := st.moves[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.LocationID != "" && m.FromLocationID != f.LocationID && m.ToLocationID != f.LocationID {
				continue
			}
			if f.MoveType != "" && m.MoveType != f.MoveType {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			c := *m
			out = append(out, &c)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, 0, f.Limit), nil
}

// ListByDocument devuelve los movimientos generados por un documento, en orden de registro.
func (r *StockMoveRepo) ListByDocument(_ context.Context, docType entity.DocumentType, documentID string) ([]*entity.StockMove, error) {
	var out []*entity.StockMove
	r.b.read(func(st *state) {
		for _, m := range st.moves {
			if m.DocumentType == docType && m.DocumentID == documentID {
				c := *m
				out = append(out, &c)
			}
		}
	})
	return out, nil
}
