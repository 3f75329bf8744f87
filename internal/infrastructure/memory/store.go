// Package memory implementa los repositorios sobre estructuras en memoria.
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado
// que solo se publica si la función termina sin error.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/operation"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

var _ operation.TxRunner = (*Store)(nil)

type stockKey struct {
	productID  string
	locationID string
}

// state es el contenido de la base. Los valores almacenados nunca se mutan en sitio:
// cada escritura reemplaza el puntero, así clonar los mapas basta para aislar una transacción.
type state struct {
	products   map[string]*entity.Product
	categories map[string]*entity.Category
	warehouses map[string]*entity.Warehouse
	locations  map[string]*entity.Location
	levels     map[stockKey]*entity.StockLevel
	documents  map[string]*entity.Document
	moves      []*entity.StockMove
}

func newState() *state {
	return &state{
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
		warehouses: make(map[string]*entity.Warehouse),
		locations:  make(map[string]*entity.Location),
		levels:     make(map[stockKey]*entity.StockLevel),
		documents:  make(map[string]*entity.Document),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:   make(map[string]*entity.Product, len(s.products)),
		categories: make(map[string]*entity.Category, len(s.categories)),
		warehouses: make(map[string]*entity.Warehouse, len(s.warehouses)),
		locations:  make(map[string]*entity.Location, len(s.locations)),
		levels:     make(map[stockKey]*entity.StockLevel, len(s.levels)),
		documents:  make(map[string]*entity.Document, len(s.documents)),
		moves:      append([]*entity.StockMove(nil), s.moves...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.levels {
		c.levels[k] = v
	}
	for k, v := range s.documents {
		c.documents[k] = v
	}
	return c
}

// FaultFunc se invoca antes de cada escritura con el nombre de la operación
// (p. ej. "stock_moves.create"); si devuelve error la escritura falla con él.
type FaultFunc func(op string) error

// Store base en memoria. Implementa operation.TxRunner y expone los repositorios vía Repos.
type Store struct {
	mu    sync.RWMutex
	state *state
	fault FaultFunc
	now   func() time.Time
}

// NewStore crea una base vacía.
func NewStore() *Store {
	return &Store{
		state: newState(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetFault instala (o quita con nil) el inyector de fallas.
func (s *Store) SetFault(f FaultFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = f
}

// Repos devuelve repositorios que operan directamente sobre el estado confirmado.
func (s *Store) Repos() operation.Repos {
	return reposFor(&binding{store: s})
}

// Run ejecuta fn con repositorios sobre una copia del estado. Las transacciones se ejecutan
// de a una; la copia reemplaza al estado confirmado solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(repos operation.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(reposFor(&binding{store: s, tx: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = work
	return nil
}

func reposFor(b *binding) operation.Repos {
	return operation.Repos{
		Documents:   &DocumentRepo{b: b},
		StockLevels: &StockLevelRepo{b: b},
		StockMoves:  &StockMoveRepo{b: b},
		Products:    &ProductRepo{b: b},
		Locations:   &LocationRepo{b: b},
	}
}

// binding resuelve sobre qué estado opera un repositorio: la copia de la transacción
// en curso (ya protegida por el lock de Run) o el estado confirmado.
type binding struct {
	store *Store
	tx    *state
}

func (b *binding) read(fn func(st *state)) {
	if b.tx != nil {
		fn(b.tx)
		return
	}
	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	fn(b.store.state)
}

func (b *binding) write(op string, fn func(st *state) error) error {
	if b.tx != nil {
		if err := b.injectFault(op); err != nil {
			return err
		}
		return fn(b.tx)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	if err := b.injectFault(op); err != nil {
		return err
	}
	return fn(b.store.state)
}

func (b *binding) injectFault(op string) error {
	if b.store.fault == nil {
		return nil
	}
	return b.store.fault(op)
}

func (b *binding) now() time.Time { return b.store.now() }
