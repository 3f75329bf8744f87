package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso de bodegas y sus ubicaciones.
type WarehouseUseCase struct {
	repo      repository.WarehouseRepository
	locations repository.LocationRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, locations repository.LocationRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, locations: locations}
}

// Create crea una bodega. Código repetido → ErrDuplicate.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if in.Name == "" || in.Code == "" {
		return nil, fmt.Errorf("%w: nombre y código son obligatorios", domain.ErrInvalidInput)
	}
	if _, err := uc.repo.GetByCode(ctx, in.Code); err == nil {
		return nil, fmt.Errorf("bodega %s: %w", in.Code, domain.ErrDuplicate)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := time.Now().UTC()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista las bodegas activas.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items, nil
}

// CreateLocation crea una ubicación dentro de una bodega existente. Tipo por defecto INTERNAL.
func (uc *WarehouseUseCase) CreateLocation(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if in.WarehouseID == "" || in.Name == "" || in.Code == "" {
		return nil, fmt.Errorf("%w: bodega, nombre y código son obligatorios", domain.ErrInvalidInput)
	}
	locType := entity.LocationType(strings.ToUpper(in.Type))
	if locType == "" {
		locType = entity.LocationInternal
	}
	if !locType.Valid() {
		return nil, fmt.Errorf("%w: tipo de ubicación %q", domain.ErrInvalidInput, in.Type)
	}
	if _, err := uc.repo.GetByID(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	if _, err := uc.locations.GetByWarehouseAndCode(ctx, in.WarehouseID, in.Code); err == nil {
		return nil, fmt.Errorf("ubicación %s: %w", in.Code, domain.ErrDuplicate)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := time.Now().UTC()
	loc := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: in.WarehouseID,
		Name:        in.Name,
		Code:        in.Code,
		Type:        locType,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.locations.Create(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// ListLocations lista ubicaciones activas; warehouseID vacío = todas.
func (uc *WarehouseUseCase) ListLocations(ctx context.Context, warehouseID string) ([]dto.LocationResponse, error) {
	list, err := uc.locations.ListActive(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Code:      w.Code,
		Address:   w.Address,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Name:        l.Name,
		Code:        l.Code,
		Type:        string(l.Type),
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt,
	}
}
