package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductFilter criterios de listado del catálogo. Solo se listan productos activos.
type ProductFilter struct {
	Search   string // coincide con nombre o SKU (sin distinguir mayúsculas)
	Category string
	Limit    int // 0 = sin límite
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	ListActive(ctx context.Context) ([]*entity.Product, error)
	Deactivate(ctx context.Context, id string) error
}
