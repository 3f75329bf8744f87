package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// ListWithProductCount lista las categorías por nombre con su conteo de productos activos.
	ListWithProductCount(ctx context.Context) ([]*entity.CategorySummary, error)
}
