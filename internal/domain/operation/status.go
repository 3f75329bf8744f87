// Package operation modela el ciclo de vida de los documentos de inventario y
// traduce cada tipo de documento a las mutaciones de stock que produce al validarse.
package operation

import (
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Action acción solicitada sobre un documento.
type Action string

const (
	ActionValidate Action = "validar"
	ActionCancel   Action = "cancelar"
)

// CanTransition indica si la acción es aplicable al estado y devuelve el estado resultante.
//
//	DRAFT|WAITING|READY --validar--> DONE
//	DRAFT|WAITING|READY --cancelar--> CANCELLED
//	CANCELLED --cancelar--> CANCELLED
//
// Cualquier otra combinación es inválida.
func CanTransition(status entity.DocumentStatus, action Action) (entity.DocumentStatus, bool) {
	switch status {
	case entity.StatusDraft, entity.StatusWaiting, entity.StatusReady:
		switch action {
		case ActionValidate:
			return entity.StatusDone, true
		case ActionCancel:
			return entity.StatusCancelled, true
		}
	case entity.StatusCancelled:
		if action == ActionCancel {
			return entity.StatusCancelled, true
		}
	}
	return status, false
}

// Transition aplica la acción al documento o devuelve InvalidStateError.
// No toca el ledger ni persiste nada.
func Transition(doc *entity.Document, action Action) error {
	next, ok := CanTransition(doc.Status, action)
	if !ok {
		return &domain.InvalidStateError{Reference: doc.Reference, Status: string(doc.Status), Action: string(action)}
	}
	doc.Status = next
	return nil
}
