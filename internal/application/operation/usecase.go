// Package operation orquesta el ciclo de vida de los documentos de inventario: creación,
// validación transaccional contra el ledger de stock, cancelación y consultas.
package operation

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	defaultMovesCap  = 100
)

// Config parámetros del caso de uso.
type Config struct {
	MovesPageCap int
}

// UseCase casos de uso de documentos de operación.
// Las lecturas fuera de transacción usan repos; toda escritura pasa por txRunner.
type UseCase struct {
	txRunner TxRunner
	repos    Repos
	refs     ReferenceGenerator
	slips    SlipRenderer
	log      *logger.Logger
	movesCap int
	now      func() time.Time
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(
	txRunner TxRunner,
	repos Repos,
	refs ReferenceGenerator,
	slips SlipRenderer,
	log *logger.Logger,
	cfg Config,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	capN := cfg.MovesPageCap
	if capN <= 0 {
		capN = defaultMovesCap
	}
	return &UseCase{
		txRunner: txRunner,
		repos:    repos,
		refs:     refs,
		slips:    slips,
		log:      log.Component("operation"),
		movesCap: capN,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// aborted envuelve como TransactionAbortedError cualquier falla que no sea de dominio.
func aborted(op string, err error) error {
	if err == nil || domain.IsDomainError(err) {
		return err
	}
	return &domain.TransactionAbortedError{Op: op, Err: err}
}
