package operation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MoveInput datos de un movimiento a registrar.
type MoveInput struct {
	Reference      string
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	MoveType       entity.MoveType
	UserID         string
	DocumentType   entity.DocumentType
	DocumentID     string
}

// MoveRecorder registra movimientos inmutables dentro de la transacción en curso.
type MoveRecorder struct {
	repo repository.StockMoveRepository
	now  func() time.Time
}

// NewMoveRecorder construye el registrador sobre el repositorio de la transacción.
func NewMoveRecorder(repo repository.StockMoveRepository, now func() time.Time) *MoveRecorder {
	return &MoveRecorder{repo: repo, now: now}
}

// Record inserta el movimiento con estado DONE. Cantidades no positivas se rechazan:
// los llamadores omiten las líneas sin efecto.
func (r *MoveRecorder) Record(ctx context.Context, in MoveInput) (*entity.StockMove, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: movimiento sin cantidad", domain.ErrInvalidInput)
	}
	if in.FromLocationID == "" && in.ToLocationID == "" {
		return nil, fmt.Errorf("%w: movimiento sin ubicación", domain.ErrInvalidInput)
	}
	m := &entity.StockMove{
		ID:             uuid.New().String(),
		Reference:      in.Reference,
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		MoveType:       in.MoveType,
		Status:         entity.MoveStatusDone,
		UserID:         in.UserID,
		DocumentType:   in.DocumentType,
		DocumentID:     in.DocumentID,
		CreatedAt:      r.now(),
	}
	if err := r.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
