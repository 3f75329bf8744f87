package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetByWarehouseAndCode(ctx context.Context, warehouseID, code string) (*entity.Location, error)
	// ListActive lista ubicaciones activas; warehouseID vacío = todas.
	ListActive(ctx context.Context, warehouseID string) ([]*entity.Location, error)
}
