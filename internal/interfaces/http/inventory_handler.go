package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/operation"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryHandler maneja el historial de movimientos y la reposición (protegido).
type InventoryHandler struct {
	ops           *operation.UseCase
	replenishment *inventory.ReplenishmentUseCase
	errorMapper
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ops *operation.UseCase, replenishment *inventory.ReplenishmentUseCase, errs errorMapper) *InventoryHandler {
	return &InventoryHandler{ops: ops, replenishment: replenishment, errorMapper: errs}
}

// ListMoves godoc
// @Summary      Historial de movimientos de stock
// @Description  Más recientes primero. location_id coincide con origen o destino.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Producto"
// @Param        location_id  query  string  false  "Ubicación"
// @Param        move_type    query  string  false  "RECEIPT | DELIVERY | TRANSFER | ADJUSTMENT"
// @Param        from         query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite (máximo configurable)"
// @Success      200  {array}   dto.StockMoveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/moves [get]
func (h *InventoryHandler) ListMoves(c *fiber.Ctx) error {
	from, err := parseTime(c.Query("from"))
	if err != nil {
		return h.respond(c, err)
	}
	to, err := parseTime(c.Query("to"))
	if err != nil {
		return h.respond(c, err)
	}
	moves, err := h.ops.ListMoves(c.UserContext(), repository.MoveFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		MoveType:   entity.MoveType(c.Query("move_type")),
		From:       from,
		To:         to,
		Limit:      c.QueryInt("limit", 0),
	})
	if err != nil {
		return h.respond(c, err)
	}
	out := make([]dto.StockMoveResponse, 0, len(moves))
	for _, m := range moves {
		out = append(out, dto.StockMoveResponse{
			ID:             m.ID,
			Reference:      m.Reference,
			ProductID:      m.ProductID,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			Quantity:       m.Quantity,
			MoveType:       string(m.MoveType),
			Status:         m.Status,
			UserID:         m.UserID,
			DocumentType:   string(m.DocumentType),
			DocumentID:     m.DocumentID,
			CreatedAt:      m.CreatedAt,
		})
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos activos con stock total por debajo del punto de reorden y la cantidad
//
//	sugerida de pedido, los más críticos primero.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
}
