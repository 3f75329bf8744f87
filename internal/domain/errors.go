package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrInvalidState        = errors.New("operación no permitida en el estado actual del documento")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConstraintViolation = errors.New("violación de restricción")
	ErrTransactionAborted  = errors.New("transacción abortada")

	// ErrDuplicate y ErrSameLocation son violaciones de restricción concretas.
	ErrDuplicate    = &constraintError{msg: "recurso duplicado"}
	ErrSameLocation = &constraintError{msg: "la ubicación de origen y destino deben ser distintas"}
)

type constraintError struct{ msg string }

func (e *constraintError) Error() string { return e.msg }

func (e *constraintError) Is(target error) bool { return target == ErrConstraintViolation }

// InvalidStateError indica que la acción no se puede aplicar al documento en su estado actual.
type InvalidStateError struct {
	Reference string
	Status    string
	Action    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("documento %s en estado %s: no se puede %s", e.Reference, e.Status, e.Action)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// InsufficientStockError detalla el producto y la ubicación sin disponibilidad suficiente.
type InsufficientStockError struct {
	ProductID  string
	LocationID string
	Requested  decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en ubicación %s: solicitado %s, disponible %s",
		e.ProductID, e.LocationID, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// TransactionAbortedError envuelve una falla no de dominio (almacenamiento, conexión) ocurrida
// dentro de una transacción; ningún efecto de la transacción queda persistido.
type TransactionAbortedError struct {
	Op  string
	Err error
}

func (e *TransactionAbortedError) Error() string {
	return fmt.Sprintf("%s: transacción abortada: %v", e.Op, e.Err)
}

func (e *TransactionAbortedError) Unwrap() error { return e.Err }

func (e *TransactionAbortedError) Is(target error) bool { return target == ErrTransactionAborted }

// IsDomainError indica si err corresponde a un error de negocio conocido
// (y por lo tanto no debe envolverse como TransactionAborted).
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrUnauthorized, ErrForbidden,
		ErrInvalidState, ErrInsufficientStock, ErrConstraintViolation, ErrTransactionAborted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
