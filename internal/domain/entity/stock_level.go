package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel es el stock de un producto en una ubicación. Una fila ausente equivale a ceros.
// Toda escritura mantiene Available = Quantity - Reserved.
type StockLevel struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	Reserved   decimal.Decimal
	Available  decimal.Decimal
	UpdatedAt  time.Time
}

// ZeroStockLevel devuelve el nivel implícito de una combinación sin fila.
func ZeroStockLevel(productID, locationID string) *StockLevel {
	return &StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   decimal.Zero,
		Reserved:   decimal.Zero,
		Available:  decimal.Zero,
	}
}

// StockLocation es el stock de un producto en una ubicación, enriquecido con nombres para consulta.
type StockLocation struct {
	StockLevel
	LocationName  string
	LocationCode  string
	WarehouseID   string
	WarehouseName string
}

// StockTotals suma el stock de un producto en todas sus ubicaciones.
type StockTotals struct {
	Quantity  decimal.Decimal
	Available decimal.Decimal
}
