package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMoveResponse salida de un movimiento de stock.
type StockMoveResponse struct {
	ID             string          `json:"id"`
	Reference      string          `json:"reference"`
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id,omitempty"`
	ToLocationID   string          `json:"to_location_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	MoveType       string          `json:"move_type"`
	Status         string          `json:"status"`
	UserID         string          `json:"user_id"`
	DocumentType   string          `json:"document_type"`
	DocumentID     string          `json:"document_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ReplenishmentSuggestionDTO un producto bajo su punto de reorden y la cantidad sugerida.
type ReplenishmentSuggestionDTO struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	OptimalStock      decimal.Decimal `json:"optimal_stock"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"`
	Priority          int             `json:"priority"`
}
