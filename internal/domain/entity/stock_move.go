package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoveType tipo de movimiento de stock; coincide con el tipo de documento que lo origina.
type MoveType string

const (
	MoveReceipt    MoveType = "RECEIPT"
	MoveDelivery   MoveType = "DELIVERY"
	MoveTransfer   MoveType = "TRANSFER"
	MoveAdjustment MoveType = "ADJUSTMENT"
)

// MoveStatusDone es el único estado con el que se registran movimientos.
const MoveStatusDone = "DONE"

// StockMove es el registro inmutable de una mutación del ledger.
// FromLocationID vacío = entrada; ToLocationID vacío = salida. Quantity es siempre una magnitud >= 0.
type StockMove struct {
	ID             string
	Reference      string
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	MoveType       MoveType
	Status         string
	UserID         string
	DocumentType   DocumentType
	DocumentID     string
	CreatedAt      time.Time
}
