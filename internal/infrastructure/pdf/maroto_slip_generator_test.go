package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/operation"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestRenderSlip_Transferencia(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	slip := &operation.Slip{
		Document: &entity.Document{
			ID: "d1", Type: entity.DocTransfer, Reference: "TRF-20260302-0A1B2C3D",
			Status: entity.StatusDone, FromLocationID: "a", ToLocationID: "b",
			CreatedAt: now, ValidatedAt: &now,
		},
		Lines: []operation.SlipLine{{
			DocumentLine: entity.DocumentLine{ProductID: "p", Quantity: decimal.NewFromInt(4), DoneQty: decimal.NewFromInt(4)},
			SKU:          "SKU-1", ProductName: "Tornillo", Unit: "Unit",
		}},
		FromLocationName: "Estante A (A1)",
		ToLocationName:   "Estante B (B1)",
	}

	out, err := NewMarotoSlipGenerator("Bodega Central").RenderSlip(context.Background(), slip)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderSlip_AjusteMuestraConteo(t *testing.T) {
	slip := &operation.Slip{
		Document: &entity.Document{ID: "d2", Type: entity.DocAdjustment, Reference: "ADJ-20260302-00000001", Status: entity.StatusDraft},
		Lines: []operation.SlipLine{{
			DocumentLine: entity.DocumentLine{
				ProductID: "p", SystemQty: decimal.NewFromInt(10),
				CountedQty: decimal.NewFromInt(7), Difference: decimal.NewFromInt(-3),
			},
			SKU: "SKU-1", ProductName: "Tornillo",
		}},
		LocationName: "Estante A (A1)",
	}

	out, err := NewMarotoSlipGenerator("").RenderSlip(context.Background(), slip)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderSlip_SinDocumento(t *testing.T) {
	_, err := NewMarotoSlipGenerator("").RenderSlip(context.Background(), &operation.Slip{})
	assert.Error(t, err)
}
