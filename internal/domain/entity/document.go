package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType distingue las cuatro operaciones que afectan stock.
type DocumentType string

const (
	DocReceipt    DocumentType = "RECEIPT"
	DocDelivery   DocumentType = "DELIVERY"
	DocTransfer   DocumentType = "TRANSFER"
	DocAdjustment DocumentType = "ADJUSTMENT"
)

// Valid indica si el tipo es conocido.
func (t DocumentType) Valid() bool {
	switch t {
	case DocReceipt, DocDelivery, DocTransfer, DocAdjustment:
		return true
	}
	return false
}

// MoveType tipo de movimiento que genera el documento al validarse.
func (t DocumentType) MoveType() MoveType { return MoveType(t) }

// DocumentStatus estado del ciclo de vida de un documento.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusWaiting   DocumentStatus = "WAITING"
	StatusReady     DocumentStatus = "READY"
	StatusDone      DocumentStatus = "DONE"
	StatusCancelled DocumentStatus = "CANCELLED"
)

// Valid indica si el estado es conocido.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Document es un documento de operación (recepción, despacho, traslado o ajuste).
// LocationID aplica a recepción, despacho y ajuste; FromLocationID/ToLocationID a traslados.
// PartnerName es el proveedor en recepciones y el cliente en despachos.
// En ajustes ValidatedAt es la fecha del ajuste.
type Document struct {
	ID             string
	Type           DocumentType
	Reference      string
	Status         DocumentStatus
	LocationID     string
	FromLocationID string
	ToLocationID   string
	PartnerName    string
	Notes          string
	Reason         string
	UserID         string
	ScheduledDate  *time.Time
	ValidatedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Lines          []DocumentLine
}

// DocumentLine es una línea del documento. Quantity/DoneQty aplican a recepción, despacho y traslado;
// SystemQty/CountedQty/Difference a ajustes.
type DocumentLine struct {
	ID         string
	DocumentID string
	LineNo     int
	ProductID  string
	Quantity   decimal.Decimal
	DoneQty    decimal.Decimal
	SystemQty  decimal.Decimal
	CountedQty decimal.Decimal
	Difference decimal.Decimal
}

// Clone devuelve una copia profunda (las líneas no se comparten).
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Lines = append([]DocumentLine(nil), d.Lines...)
	if d.ScheduledDate != nil {
		t := *d.ScheduledDate
		c.ScheduledDate = &t
	}
	if d.ValidatedAt != nil {
		t := *d.ValidatedAt
		c.ValidatedAt = &t
	}
	return &c
}
