package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos cuyo stock total
// está por debajo del punto de reorden.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	levelRepo   repository.StockLevelRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	levelRepo repository.StockLevelRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		productRepo: productRepo,
		levelRepo:   levelRepo,
	}
}

// GenerateReplenishmentList devuelve los productos bajo punto de reorden con la cantidad sugerida:
// lo que falta para el stock óptimo, y como mínimo lo que falta para el punto de reorden.
// Productos con punto de reorden en cero no participan.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := uc.levelRepo.TotalsByProduct(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		if !p.ReorderPoint.IsPositive() {
			continue
		}
		current := totals[p.ID].Quantity
		if !current.LessThan(p.ReorderPoint) {
			continue
		}
		suggested := decimal.Max(p.OptimalStock.Sub(current), p.ReorderPoint.Sub(current))
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			CurrentStock:      current,
			ReorderPoint:      p.ReorderPoint,
			OptimalStock:      p.OptimalStock,
			SuggestedOrderQty: suggested,
		})
	}

	// Mayor déficit relativo primero (stock actual / punto de reorden); desempate por SKU.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ra := a.CurrentStock.Div(a.ReorderPoint)
		rb := b.CurrentStock.Div(b.ReorderPoint)
		if !ra.Equal(rb) {
			return ra.LessThan(rb)
		}
		return a.SKU < b.SKU
	})

	// 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
