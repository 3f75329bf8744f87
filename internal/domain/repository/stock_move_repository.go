package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MoveFilter criterios del historial de movimientos. LocationID coincide con origen o destino.
type MoveFilter struct {
	ProductID  string
	LocationID string
	MoveType   entity.MoveType
	From       *time.Time
	To         *time.Time
	Limit      int
}

// StockMoveRepository persiste movimientos. Solo se insertan; nunca se modifican ni borran.
type StockMoveRepository interface {
	Create(ctx context.Context, move *entity.StockMove) error
	// List devuelve los movimientos más recientes primero.
	List(ctx context.Context, filter MoveFilter) ([]*entity.StockMove, error)
	ListByDocument(ctx context.Context, docType entity.DocumentType, documentID string) ([]*entity.StockMove, error)
}
