package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockLevelRepository es el ledger de stock por (producto, ubicación).
// Una fila ausente se devuelve como nivel en cero; las escrituras solo ocurren dentro de transacciones.
type StockLevelRepository interface {
	Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockLevel, error)
	// AddDelta suma los deltas a quantity y available, creando la fila si no existe.
	AddDelta(ctx context.Context, productID, locationID string, qtyDelta, availDelta decimal.Decimal) (*entity.StockLevel, error)
	// SetQuantity fija quantity de forma absoluta y recalcula available = quantity - reserved.
	SetQuantity(ctx context.Context, productID, locationID string, quantity decimal.Decimal) (*entity.StockLevel, error)
	// ListByProduct devuelve el stock del producto por ubicación, mayor cantidad primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockLocation, error)
	// TotalsByProduct devuelve cantidad en mano y disponible sumadas por producto.
	TotalsByProduct(ctx context.Context) (map[string]entity.StockTotals, error)
}
