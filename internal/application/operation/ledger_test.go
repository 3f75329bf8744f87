package operation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/operation"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

func TestLedger_ApplyDelta(t *testing.T) {
	s := memory.NewStore()
	ledger := operation.NewLedger(s.Repos().StockLevels)

	lvl, err := ledger.ApplyDelta(ctx, "P", "L", q(10), q(10))
	require.NoError(t, err)
	assertLevel(t, lvl, 10, 10, 0)

	lvl, err = ledger.ApplyDelta(ctx, "P", "L", q(-4), q(-4))
	require.NoError(t, err)
	assertLevel(t, lvl, 6, 6, 0)

	_, err = ledger.ApplyDelta(ctx, "P", "L", q(-7), q(-7))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	got, _ := ledger.GetLevel(ctx, "P", "L")
	assertLevel(t, got, 6, 6, 0)
}

func TestLedger_DebitoSobreFilaAusente(t *testing.T) {
	s := memory.NewStore()
	ledger := operation.NewLedger(s.Repos().StockLevels)

	_, err := ledger.ApplyDelta(ctx, "P", "L", q(-1), q(-1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	totals, _ := s.Repos().StockLevels.TotalsByProduct(ctx)
	assert.Empty(t, totals, "no se crea fila para un decremento")
}

func TestLedger_SetCounted(t *testing.T) {
	s := memory.NewStore()
	ledger := operation.NewLedger(s.Repos().StockLevels)

	lvl, err := ledger.SetCounted(ctx, "P", "L", q(45))
	require.NoError(t, err)
	assertLevel(t, lvl, 45, 45, 0)

	_, err = ledger.SetCounted(ctx, "P", "L", q(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMoveRecorder_RechazaCantidadCero(t *testing.T) {
	s := memory.NewStore()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := operation.NewMoveRecorder(s.Repos().StockMoves, func() time.Time { return now })

	_, err := rec.Record(ctx, operation.MoveInput{ProductID: "P", ToLocationID: "L", Quantity: q(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	m, err := rec.Record(ctx, operation.MoveInput{
		Reference: "RCP-1", ProductID: "P", ToLocationID: "L", Quantity: q(3),
		MoveType: entity.MoveReceipt, DocumentType: entity.DocReceipt, DocumentID: "d1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, entity.MoveStatusDone, m.Status)
	assert.Equal(t, now, m.CreatedAt)
}
