package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnitOfMeasure unidad por defecto cuando no se indica otra.
const DefaultUnitOfMeasure = "Unit"

// Product representa un producto del catálogo. El SKU es único global e inmutable
// salvo por edición explícita; la baja es lógica (IsActive=false).
type Product struct {
	ID            string
	SKU           string
	Name          string
	Description   string
	Category      string
	UnitOfMeasure string
	ReorderPoint  decimal.Decimal // umbral para sugerir reposición
	OptimalStock  decimal.Decimal // nivel objetivo tras reponer
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
