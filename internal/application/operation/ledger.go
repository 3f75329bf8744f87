package operation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ledger es la única vía de escritura sobre los niveles de stock.
// Debe construirse con un repositorio atado a la transacción en curso.
type Ledger struct {
	repo repository.StockLevelRepository
}

// NewLedger construye el ledger sobre el repositorio de la transacción.
func NewLedger(repo repository.StockLevelRepository) *Ledger {
	return &Ledger{repo: repo}
}

// GetLevel devuelve el nivel actual; ceros si la fila no existe.
func (l *Ledger) GetLevel(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return l.repo.Get(ctx, productID, locationID)
}

// Lock bloquea la fila hasta el fin de la transacción y devuelve su valor.
func (l *Ledger) Lock(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return l.repo.GetForUpdate(ctx, productID, locationID)
}

// ApplyDelta suma los deltas al nivel. Solo crea la fila cuando el efecto neto es un aumento;
// un resultado negativo se rechaza con InsufficientStockError.
func (l *Ledger) ApplyDelta(ctx context.Context, productID, locationID string, qtyDelta, availDelta decimal.Decimal) (*entity.StockLevel, error) {
	cur, err := l.repo.Get(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if qtyDelta.IsZero() && availDelta.IsZero() {
		return cur, nil
	}
	if cur.Quantity.Add(qtyDelta).IsNegative() || cur.Available.Add(availDelta).IsNegative() {
		return nil, &domain.InsufficientStockError{
			ProductID:  productID,
			LocationID: locationID,
			Requested:  availDelta.Neg(),
			Available:  cur.Available,
		}
	}
	return l.repo.AddDelta(ctx, productID, locationID, qtyDelta, availDelta)
}

// SetCounted fija la cantidad contada: quantity = counted, available = counted - reserved.
func (l *Ledger) SetCounted(ctx context.Context, productID, locationID string, counted decimal.Decimal) (*entity.StockLevel, error) {
	if counted.IsNegative() {
		return nil, fmt.Errorf("%w: conteo negativo", domain.ErrInvalidInput)
	}
	return l.repo.SetQuantity(ctx, productID, locationID, counted)
}
