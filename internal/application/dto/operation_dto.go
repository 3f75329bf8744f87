package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest línea de entrada. quantity para recepción/despacho/traslado,
// counted_qty para ajustes.
type DocumentLineRequest struct {
	ProductID  string          `json:"product_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
	CountedQty decimal.Decimal `json:"counted_qty"`
}

// CreateDocumentRequest entrada para crear un documento de operación.
type CreateDocumentRequest struct {
	LocationID     string                `json:"location_id"`
	FromLocationID string                `json:"from_location_id"`
	ToLocationID   string                `json:"to_location_id"`
	PartnerName    string                `json:"partner_name"`
	Notes          string                `json:"notes"`
	Reason         string                `json:"reason"`
	ScheduledDate  *time.Time            `json:"scheduled_date"`
	Lines          []DocumentLineRequest `json:"lines" validate:"required,min=1"`
}

// DocumentLineResponse línea de salida.
type DocumentLineResponse struct {
	ID         string          `json:"id"`
	LineNo     int             `json:"line_no"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	DoneQty    decimal.Decimal `json:"done_qty"`
	SystemQty  decimal.Decimal `json:"system_qty"`
	CountedQty decimal.Decimal `json:"counted_qty"`
	Difference decimal.Decimal `json:"difference"`
}

// DocumentResponse salida de un documento.
type DocumentResponse struct {
	ID             string                 `json:"id"`
	Type           string                 `json:"type"`
	Reference      string                 `json:"reference"`
	Status         string                 `json:"status"`
	LocationID     string                 `json:"location_id,omitempty"`
	FromLocationID string                 `json:"from_location_id,omitempty"`
	ToLocationID   string                 `json:"to_location_id,omitempty"`
	PartnerName    string                 `json:"partner_name,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	Reason         string                 `json:"reason,omitempty"`
	UserID         string                 `json:"user_id"`
	ScheduledDate  *time.Time             `json:"scheduled_date,omitempty"`
	ValidatedAt    *time.Time             `json:"validated_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	Lines          []DocumentLineResponse `json:"lines"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
