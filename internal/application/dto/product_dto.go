package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	OptimalStock  decimal.Decimal `json:"optimal_stock"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nil no cambian.
type UpdateProductRequest struct {
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	UnitOfMeasure *string          `json:"unit_of_measure"`
	ReorderPoint  *decimal.Decimal `json:"reorder_point"`
	OptimalStock  *decimal.Decimal `json:"optimal_stock"`
}

// ProductResponse salida de un producto con su stock sumado en todas las ubicaciones.
// IsLowStock: TotalStock <= ReorderPoint.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	UnitOfMeasure  string          `json:"unit_of_measure"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	OptimalStock   decimal.Decimal `json:"optimal_stock"`
	IsActive       bool            `json:"is_active"`
	TotalStock     decimal.Decimal `json:"total_stock"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	IsLowStock     bool            `json:"is_low_stock"`
	IsOutOfStock   bool            `json:"is_out_of_stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListQuery filtros del listado de productos.
type ProductListQuery struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	LowStock bool   `query:"lowStock"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductStockLocation stock de un producto en una ubicación.
type ProductStockLocation struct {
	LocationID    string          `json:"location_id"`
	LocationName  string          `json:"location_name"`
	LocationCode  string          `json:"location_code"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reserved      decimal.Decimal `json:"reserved"`
	Available     decimal.Decimal `json:"available"`
}

// ProductStockResponse stock de un producto por ubicación, mayor cantidad primero.
type ProductStockResponse struct {
	ProductID string                 `json:"product_id"`
	SKU       string                 `json:"sku"`
	Total     decimal.Decimal        `json:"total"`
	Locations []ProductStockLocation `json:"locations"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría con su conteo de productos activos.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}
