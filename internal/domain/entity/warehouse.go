package entity

import "time"

// Warehouse representa una bodega física; el stock vive en sus ubicaciones (Location).
type Warehouse struct {
	ID        string
	Name      string
	Code      string // único
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
