package entity

import "time"

// LocationType clasifica una ubicación. Es informativo: no restringe qué operaciones la usan.
type LocationType string

const (
	LocationInternal   LocationType = "INTERNAL"
	LocationSupplier   LocationType = "SUPPLIER"
	LocationCustomer   LocationType = "CUSTOMER"
	LocationProduction LocationType = "PRODUCTION"
	LocationScrap      LocationType = "SCRAP"
)

// Valid indica si el tipo es uno de los conocidos.
func (t LocationType) Valid() bool {
	switch t {
	case LocationInternal, LocationSupplier, LocationCustomer, LocationProduction, LocationScrap:
		return true
	}
	return false
}

// Location es una ubicación dentro de una bodega (estante, zona, muelle).
type Location struct {
	ID          string
	WarehouseID string
	Name        string
	Code        string
	Type        LocationType
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
