package entity

import "time"

// Category agrupa productos del catálogo. Product.Category guarda el nombre de la categoría.
type Category struct {
	ID          string
	Name        string // único
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategorySummary es una categoría con la cantidad de productos activos que la usan.
type CategorySummary struct {
	Category
	ProductCount int
}
