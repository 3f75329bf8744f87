package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	GetByCode(ctx context.Context, code string) (*entity.Warehouse, error)
	ListActive(ctx context.Context) ([]*entity.Warehouse, error)
}
