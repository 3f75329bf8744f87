package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// errorMapper traduce errores de dominio a respuestas HTTP. Los 5xx se registran en el log.
type errorMapper struct {
	log *logger.Logger
}

func (m errorMapper) respond(c *fiber.Ctx, err error) error {
	var ise *domain.InsufficientStockError
	if errors.As(err, &ise) {
		return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
			ErrorResponse: dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()},
			ProductID:     ise.ProductID,
			LocationID:    ise.LocationID,
			Requested:     ise.Requested.String(),
			Available:     ise.Available.String(),
		})
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidState):
		status, code = fiber.StatusConflict, "INVALID_STATE"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrSameLocation):
		status, code = fiber.StatusBadRequest, "SAME_LOCATION"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrTransactionAborted):
		code = "TRANSACTION_ABORTED"
	}

	if status >= fiber.StatusInternalServerError {
		m.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno, intente más tarde"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
