package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. El stock se modifica solo vía documentos de operación.
type ProductUseCase struct {
	repo   repository.ProductRepository
	levels repository.StockLevelRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, levels repository.StockLevelRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, levels: levels}
}

// Create crea un producto. SKU repetido → ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if in.ReorderPoint.IsNegative() || in.OptimalStock.IsNegative() {
		return nil, fmt.Errorf("%w: punto de reorden y stock óptimo no pueden ser negativos", domain.ErrInvalidInput)
	}
	if _, err := uc.repo.GetBySKU(ctx, in.SKU); err == nil {
		return nil, fmt.Errorf("sku %s: %w", in.SKU, domain.ErrDuplicate)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if in.UnitOfMeasure == "" {
		in.UnitOfMeasure = entity.DefaultUnitOfMeasure
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		UnitOfMeasure: in.UnitOfMeasure,
		ReorderPoint:  in.ReorderPoint,
		OptimalStock:  in.OptimalStock,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return withTotals(toProductResponse(product), entity.StockTotals{}), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withStock(ctx, product)
}

// Update actualiza un producto. Si cambia el SKU se vuelve a verificar la unicidad.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, fmt.Errorf("%w: sku vacío", domain.ErrInvalidInput)
		}
		if sku != product.SKU {
			if _, err := uc.repo.GetBySKU(ctx, sku); err == nil {
				return nil, fmt.Errorf("sku %s: %w", sku, domain.ErrDuplicate)
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			product.SKU = sku
		}
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.UnitOfMeasure != nil && *in.UnitOfMeasure != "" {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.ReorderPoint != nil {
		if in.ReorderPoint.IsNegative() {
			return nil, fmt.Errorf("%w: punto de reorden negativo", domain.ErrInvalidInput)
		}
		product.ReorderPoint = *in.ReorderPoint
	}
	if in.OptimalStock != nil {
		if in.OptimalStock.IsNegative() {
			return nil, fmt.Errorf("%w: stock óptimo negativo", domain.ErrInvalidInput)
		}
		product.OptimalStock = *in.OptimalStock
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.withStock(ctx, product)
}

// List lista productos activos con búsqueda por nombre/SKU, filtro por categoría y, con
// LowStock, solo los que están en o bajo su punto de reorden.
func (uc *ProductUseCase) List(ctx context.Context, query dto.ProductListQuery, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	filter := repository.ProductFilter{
		Search:   strings.TrimSpace(query.Search),
		Category: query.Category,
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if query.LowStock {
		// el filtro depende de los totales de stock: se trae el catálogo filtrado y se pagina aquí
		filter.Limit, filter.Offset = 0, 0
	}
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	totals, err := uc.levels.TotalsByProduct(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		item := withTotals(toProductResponse(p), totals[p.ID])
		if query.LowStock && !item.IsLowStock {
			continue
		}
		items = append(items, *item)
	}
	if query.LowStock {
		total = len(items)
		items = pageOf(items, page.Offset, page.Limit)
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete hace la baja lógica del producto. El historial y el stock se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.Deactivate(ctx, id)
}

// GetStock devuelve el stock del producto por ubicación, mayor cantidad primero.
func (uc *ProductUseCase) GetStock(ctx context.Context, id string) (*dto.ProductStockResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := uc.levels.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductStockResponse{
		ProductID: product.ID,
		SKU:       product.SKU,
		Total:     decimal.Zero,
		Locations: make([]dto.ProductStockLocation, 0, len(rows)),
	}
	for _, r := range rows {
		out.Total = out.Total.Add(r.Quantity)
		out.Locations = append(out.Locations, dto.ProductStockLocation{
			LocationID:    r.LocationID,
			LocationName:  r.LocationName,
			LocationCode:  r.LocationCode,
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			Quantity:      r.Quantity,
			Reserved:      r.Reserved,
			Available:     r.Available,
		})
	}
	return out, nil
}

// withStock completa la respuesta con el stock del producto sumado en sus ubicaciones.
func (uc *ProductUseCase) withStock(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	rows, err := uc.levels.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	var totals entity.StockTotals
	for _, r := range rows {
		totals.Quantity = totals.Quantity.Add(r.Quantity)
		totals.Available = totals.Available.Add(r.Available)
	}
	return withTotals(toProductResponse(p), totals), nil
}

func withTotals(out *dto.ProductResponse, t entity.StockTotals) *dto.ProductResponse {
	out.TotalStock = t.Quantity
	out.TotalAvailable = t.Available
	out.IsLowStock = t.Quantity.LessThanOrEqual(out.ReorderPoint)
	out.IsOutOfStock = t.Quantity.IsZero()
	return out
}

func pageOf(items []dto.ProductResponse, offset, limit int) []dto.ProductResponse {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		UnitOfMeasure: p.UnitOfMeasure,
		ReorderPoint:  p.ReorderPoint,
		OptimalStock:  p.OptimalStock,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
