package operation_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/operation"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
	"github.com/jhoicas/almacen-api/pkg/reference"
)

var (
	ctx     = context.Background()
	manager = entity.Actor{ID: "user-1", Role: entity.RoleManager}
)

const (
	locA    = "loc-a"
	locB    = "loc-b"
	prodP   = "prod-p"
	prodQ   = "prod-q"
	prodOff = "prod-off"
)

func q(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

type fixture struct {
	store *memory.Store
	uc    *operation.UseCase
}

func newFixture(t *testing.T, cfg operation.Config) *fixture {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "wh-1", Name: "Central", Code: "WH1", IsActive: true}))

	repos := s.Repos()
	for _, l := range []*entity.Location{
		{ID: locA, WarehouseID: "wh-1", Name: "Estante A", Code: "A", Type: entity.LocationInternal, IsActive: true},
		{ID: locB, WarehouseID: "wh-1", Name: "Estante B", Code: "B", Type: entity.LocationInternal, IsActive: true},
	} {
		require.NoError(t, repos.Locations.Create(ctx, l))
	}
	for _, p := range []*entity.Product{
		{ID: prodP, SKU: "P-001", Name: "Tornillo", UnitOfMeasure: "Unit", IsActive: true},
		{ID: prodQ, SKU: "Q-001", Name: "Tuerca", UnitOfMeasure: "Unit", IsActive: true},
		{ID: prodOff, SKU: "X-001", Name: "Descontinuado", UnitOfMeasure: "Unit", IsActive: false},
	} {
		require.NoError(t, repos.Products.Create(ctx, p))
	}

	uc := operation.NewUseCase(s, repos, reference.NewGenerator(), nil, logger.Nop(), cfg)
	return &fixture{store: s, uc: uc}
}

func (f *fixture) level(t *testing.T, productID, locationID string) *entity.StockLevel {
	t.Helper()
	lvl, err := f.store.Repos().StockLevels.Get(ctx, productID, locationID)
	require.NoError(t, err)
	return lvl
}

func (f *fixture) moves(t *testing.T) []*entity.StockMove {
	t.Helper()
	ms, err := f.store.Repos().StockMoves.List(ctx, repository.MoveFilter{Limit: 1000})
	require.NoError(t, err)
	return ms
}

func (f *fixture) create(t *testing.T, in operation.CreateDocumentInput) *entity.Document {
	t.Helper()
	doc, err := f.uc.Create(ctx, manager, in)
	require.NoError(t, err)
	return doc
}

// receive deja stock inicial validando una recepción.
func (f *fixture) receive(t *testing.T, productID, locationID string, n int64) {
	t.Helper()
	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocReceipt, LocationID: locationID,
		Lines: []operation.LineInput{{ProductID: productID, Quantity: q(n)}},
	})
	_, err := f.uc.Validate(ctx, manager, entity.DocReceipt, doc.ID)
	require.NoError(t, err)
}

func assertLevel(t *testing.T, lvl *entity.StockLevel, quantity, available, reserved int64) {
	t.Helper()
	assert.True(t, lvl.Quantity.Equal(q(quantity)), "quantity: esperado %d, obtenido %s", quantity, lvl.Quantity)
	assert.True(t, lvl.Available.Equal(q(available)), "available: esperado %d, obtenido %s", available, lvl.Available)
	assert.True(t, lvl.Reserved.Equal(q(reserved)), "reserved: esperado %d, obtenido %s", reserved, lvl.Reserved)
}

// ─── Recepción ───────────────────────────────────────────────────────────────

func TestValidate_RecepcionCreaNivelYMovimiento(t *testing.T) {
	f := newFixture(t, operation.Config{})

	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocReceipt, LocationID: locA, PartnerName: "Proveedor SAS",
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(100)}},
	})
	assert.Equal(t, entity.StatusDraft, doc.Status)
	assert.Regexp(t, `^RCP-\d{8}-[0-9A-F]{8}$`, doc.Reference)
	assert.True(t, f.level(t, prodP, locA).Quantity.IsZero(), "crear no toca el ledger")

	done, err := f.uc.Validate(ctx, manager, entity.DocReceipt, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, done.Status)
	require.NotNil(t, done.ValidatedAt)
	assert.True(t, done.Lines[0].DoneQty.Equal(q(100)))

	assertLevel(t, f.level(t, prodP, locA), 100, 100, 0)

	ms := f.moves(t)
	require.Len(t, ms, 1)
	assert.Equal(t, entity.MoveReceipt, ms[0].MoveType)
	assert.Empty(t, ms[0].FromLocationID)
	assert.Equal(t, locA, ms[0].ToLocationID)
	assert.True(t, ms[0].Quantity.Equal(q(100)))
	assert.Equal(t, doc.Reference, ms[0].Reference)
	assert.Equal(t, entity.DocReceipt, ms[0].DocumentType)
	assert.Equal(t, doc.ID, ms[0].DocumentID)
	assert.Equal(t, manager.ID, ms[0].UserID)
	assert.Equal(t, entity.MoveStatusDone, ms[0].Status)
}

// ─── Despacho ────────────────────────────────────────────────────────────────

func TestValidate_DespachoDebitaYLuegoRechazaSinStock(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 100)

	d30 := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocDelivery, LocationID: locA, PartnerName: "Cliente",
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(30)}},
	})
	// con 100 disponibles el chequeo orientativo también admite 80
	d80 := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocDelivery, LocationID: locA,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(80)}},
	})

	_, err := f.uc.Validate(ctx, manager, entity.DocDelivery, d30.ID)
	require.NoError(t, err)
	assertLevel(t, f.level(t, prodP, locA), 70, 70, 0)

	ms := f.moves(t)
	require.Len(t, ms, 2)
	assert.Equal(t, entity.MoveDelivery, ms[0].MoveType)
	assert.Equal(t, locA, ms[0].FromLocationID)
	assert.Empty(t, ms[0].ToLocationID)
	assert.True(t, ms[0].Quantity.Equal(q(30)))

	_, err = f.uc.Validate(ctx, manager, entity.DocDelivery, d80.ID)
	require.Error(t, err)
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, prodP, ise.ProductID)
	assert.Equal(t, locA, ise.LocationID)
	assert.True(t, ise.Requested.Equal(q(80)))
	assert.True(t, ise.Available.Equal(q(70)))

	assertLevel(t, f.level(t, prodP, locA), 70, 70, 0)
	assert.Len(t, f.moves(t), 2, "sin movimientos nuevos")

	still, err := f.uc.Get(ctx, entity.DocDelivery, d80.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, still.Status)
	assert.True(t, still.Lines[0].DoneQty.IsZero())
}

func TestValidate_DespachoMultilineaEsAtomico(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 10)
	f.receive(t, prodQ, locA, 10)

	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocDelivery, LocationID: locA,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(5)}, {ProductID: prodQ, Quantity: q(8)}},
	})
	// otro despacho consume Q antes de validar
	other := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocDelivery, LocationID: locA,
		Lines: []operation.LineInput{{ProductID: prodQ, Quantity: q(5)}},
	})
	_, err := f.uc.Validate(ctx, manager, entity.DocDelivery, other.ID)
	require.NoError(t, err)

	_, err = f.uc.Validate(ctx, manager, entity.DocDelivery, doc.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assertLevel(t, f.level(t, prodP, locA), 10, 10, 0)
	assertLevel(t, f.level(t, prodQ, locA), 5, 5, 0)
}

func TestCreate_DisponibilidadAgregadaPorProducto(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 100)

	_, err := f.uc.Create(ctx, manager, operation.CreateDocumentInput{
		Type: entity.DocDelivery, LocationID: locA,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(60)}, {ProductID: prodP, Quantity: q(60)}},
	})
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.True(t, ise.Requested.Equal(q(120)))
}

// ─── Traslado ────────────────────────────────────────────────────────────────

func TestValidate_TrasladoConservaCantidad(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 50)

	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocTransfer, FromLocationID: locA, ToLocationID: locB,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(20)}},
	})
	assert.Empty(t, doc.LocationID)

	_, err := f.uc.Validate(ctx, manager, entity.DocTransfer, doc.ID)
	require.NoError(t, err)

	a, b := f.level(t, prodP, locA), f.level(t, prodP, locB)
	assertLevel(t, a, 30, 30, 0)
	assertLevel(t, b, 20, 20, 0)
	assert.True(t, a.Quantity.Add(b.Quantity).Equal(q(50)), "el total se conserva")

	ms := f.moves(t)
	require.Len(t, ms, 2)
	assert.Equal(t, entity.MoveTransfer, ms[0].MoveType)
	assert.Equal(t, locA, ms[0].FromLocationID)
	assert.Equal(t, locB, ms[0].ToLocationID)
	assert.True(t, ms[0].Quantity.Equal(q(20)))
}

func TestValidate_TrasladoSinStockEnOrigenNoDejaEfectos(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 10)

	trf := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocTransfer, FromLocationID: locA, ToLocationID: locB,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(8)}},
	})
	// un despacho consume el origen entre la creación y la validación del traslado
	del := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocDelivery, LocationID: locA,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(5)}},
	})
	_, err := f.uc.Validate(ctx, manager, entity.DocDelivery, del.ID)
	require.NoError(t, err)

	_, err = f.uc.Validate(ctx, manager, entity.DocTransfer, trf.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, locA, ise.LocationID)
	assert.True(t, ise.Requested.Equal(q(8)))
	assert.True(t, ise.Available.Equal(q(5)))

	assertLevel(t, f.level(t, prodP, locA), 5, 5, 0)
	assertLevel(t, f.level(t, prodP, locB), 0, 0, 0)

	still, err := f.uc.Get(ctx, entity.DocTransfer, trf.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, still.Status)
	assert.Nil(t, still.ValidatedAt)

	ms := f.moves(t)
	require.Len(t, ms, 2, "recepción y despacho; ningún movimiento de traslado")
	for _, m := range ms {
		assert.NotEqual(t, entity.MoveTransfer, m.MoveType)
	}
}

func TestCreate_TrasladoMismaUbicacion(t *testing.T) {
	f := newFixture(t, operation.Config{})

	_, err := f.uc.Create(ctx, manager, operation.CreateDocumentInput{
		Type: entity.DocTransfer, FromLocationID: locA, ToLocationID: locA,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrSameLocation)
}

// ─── Ajuste ──────────────────────────────────────────────────────────────────

func TestValidate_AjusteSobrescribeConteo(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 50)

	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocAdjustment, LocationID: locA, Reason: "conteo cíclico",
		Lines: []operation.LineInput{{ProductID: prodP, CountedQty: q(45)}},
	})
	assert.True(t, doc.Lines[0].SystemQty.Equal(q(50)))
	assert.True(t, doc.Lines[0].Difference.Equal(q(-5)))
	assert.Regexp(t, `^ADJ-`, doc.Reference)

	done, err := f.uc.Validate(ctx, manager, entity.DocAdjustment, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, done.ValidatedAt)

	assertLevel(t, f.level(t, prodP, locA), 45, 45, 0)

	ms := f.moves(t)
	require.Len(t, ms, 2)
	assert.Equal(t, entity.MoveAdjustment, ms[0].MoveType)
	assert.Equal(t, locA, ms[0].FromLocationID)
	assert.Empty(t, ms[0].ToLocationID)
	assert.True(t, ms[0].Quantity.Equal(q(5)))
}

func TestValidate_AjustePositivoCreaFila(t *testing.T) {
	f := newFixture(t, operation.Config{})

	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocAdjustment, LocationID: locB,
		Lines: []operation.LineInput{{ProductID: prodQ, CountedQty: q(12)}},
	})
	_, err := f.uc.Validate(ctx, manager, entity.DocAdjustment, doc.ID)
	require.NoError(t, err)

	assertLevel(t, f.level(t, prodQ, locB), 12, 12, 0)
	ms := f.moves(t)
	require.Len(t, ms, 1)
	assert.Empty(t, ms[0].FromLocationID)
	assert.Equal(t, locB, ms[0].ToLocationID)
	assert.True(t, ms[0].Quantity.Equal(q(12)))
}

func TestValidate_AjusteSinDiferenciaNoEscribe(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 50)
	before := f.level(t, prodP, locA)

	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocAdjustment, LocationID: locA,
		Lines: []operation.LineInput{{ProductID: prodP, CountedQty: q(50)}},
	})
	done, err := f.uc.Validate(ctx, manager, entity.DocAdjustment, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, done.Status)

	after := f.level(t, prodP, locA)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt, "la fila no se escribe")
	assert.Len(t, f.moves(t), 1, "solo el movimiento de la recepción")
}

func TestValidate_AjusteRecalculaContraNivelVivo(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 50)

	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocAdjustment, LocationID: locA,
		Lines: []operation.LineInput{{ProductID: prodP, CountedQty: q(45)}},
	})
	f.receive(t, prodP, locA, 10) // entre la creación y la validación

	done, err := f.uc.Validate(ctx, manager, entity.DocAdjustment, doc.ID)
	require.NoError(t, err)
	assert.True(t, done.Lines[0].SystemQty.Equal(q(60)))
	assert.True(t, done.Lines[0].Difference.Equal(q(-15)))

	assertLevel(t, f.level(t, prodP, locA), 45, 45, 0)
	ms := f.moves(t)
	assert.True(t, ms[0].Quantity.Equal(q(15)), "el movimiento refleja el efecto real")
}

// ─── Estados ─────────────────────────────────────────────────────────────────

func TestValidate_DosVecesDevuelveInvalidState(t *testing.T) {
	f := newFixture(t, operation.Config{})
	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocReceipt, LocationID: locA,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(5)}},
	})

	_, err := f.uc.Validate(ctx, manager, entity.DocReceipt, doc.ID)
	require.NoError(t, err)
	_, err = f.uc.Validate(ctx, manager, entity.DocReceipt, doc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assertLevel(t, f.level(t, prodP, locA), 5, 5, 0)
	assert.Len(t, f.moves(t), 1)
}

func TestCancel(t *testing.T) {
	f := newFixture(t, operation.Config{})
	draft := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocReceipt, LocationID: locA,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(5)}},
	})

	t.Run("draft pasa a cancelled sin tocar stock", func(t *testing.T) {
		doc, err := f.uc.Cancel(ctx, entity.DocReceipt, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCancelled, doc.Status)
		assert.True(t, f.level(t, prodP, locA).Quantity.IsZero())
	})

	t.Run("cancelled se puede re-cancelar", func(t *testing.T) {
		doc, err := f.uc.Cancel(ctx, entity.DocReceipt, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCancelled, doc.Status)
	})

	t.Run("cancelled no se valida", func(t *testing.T) {
		_, err := f.uc.Validate(ctx, manager, entity.DocReceipt, draft.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		assert.Empty(t, f.moves(t))
	})

	t.Run("done no se cancela", func(t *testing.T) {
		doc := f.create(t, operation.CreateDocumentInput{
			Type: entity.DocReceipt, LocationID: locA,
			Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(5)}},
		})
		_, err := f.uc.Validate(ctx, manager, entity.DocReceipt, doc.ID)
		require.NoError(t, err)

		_, err = f.uc.Cancel(ctx, entity.DocReceipt, doc.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		assertLevel(t, f.level(t, prodP, locA), 5, 5, 0)
	})

	t.Run("inexistente", func(t *testing.T) {
		_, err := f.uc.Cancel(ctx, entity.DocReceipt, "no-existe")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// ─── Creación ────────────────────────────────────────────────────────────────

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t, operation.Config{})

	cases := []struct {
		name string
		in   operation.CreateDocumentInput
		want error
	}{
		{"producto inexistente", operation.CreateDocumentInput{
			Type: entity.DocReceipt, LocationID: locA,
			Lines: []operation.LineInput{{ProductID: "nada", Quantity: q(1)}},
		}, domain.ErrNotFound},
		{"producto inactivo", operation.CreateDocumentInput{
			Type: entity.DocReceipt, LocationID: locA,
			Lines: []operation.LineInput{{ProductID: prodOff, Quantity: q(1)}},
		}, domain.ErrInvalidInput},
		{"ubicación inexistente", operation.CreateDocumentInput{
			Type: entity.DocReceipt, LocationID: "nada",
			Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(1)}},
		}, domain.ErrNotFound},
		{"sin líneas", operation.CreateDocumentInput{Type: entity.DocReceipt, LocationID: locA}, domain.ErrInvalidInput},
		{"cantidad negativa", operation.CreateDocumentInput{
			Type: entity.DocDelivery, LocationID: locA,
			Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(-1)}},
		}, domain.ErrInvalidInput},
		{"tipo desconocido", operation.CreateDocumentInput{Type: "RETURN"}, domain.ErrInvalidInput},
		{"despacho sin stock", operation.CreateDocumentInput{
			Type: entity.DocDelivery, LocationID: locA,
			Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(1)}},
		}, domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, manager, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := f.uc.Create(ctx, entity.Actor{}, operation.CreateDocumentInput{Type: entity.DocReceipt})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ─── Concurrencia y fallas ───────────────────────────────────────────────────

func TestValidate_DespachosConcurrentesSobreStockEscaso(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 10)

	const n = 8
	ids := make([]string, n)
	for i := range ids {
		ids[i] = f.create(t, operation.CreateDocumentInput{
			Type: entity.DocDelivery, LocationID: locA,
			Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(10)}},
		}).ID
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Validate(ctx, manager, entity.DocDelivery, ids[i])
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 1, ok, "exactamente un despacho gana")
	assertLevel(t, f.level(t, prodP, locA), 0, 0, 0)
	assert.Len(t, f.moves(t), 2)
}

func TestValidate_FallaDeAlmacenamientoNoDejaEfectos(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 50)

	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocTransfer, FromLocationID: locA, ToLocationID: locB,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(10)}, {ProductID: prodP, Quantity: q(5)}},
	})

	injected := errors.New("conexión perdida")
	var mu sync.Mutex
	calls := 0
	f.store.SetFault(func(op string) error {
		mu.Lock()
		defer mu.Unlock()
		if op == "stock_moves.create" {
			calls++
			if calls == 2 {
				return injected
			}
		}
		return nil
	})

	_, err := f.uc.Validate(ctx, manager, entity.DocTransfer, doc.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionAborted)
	assert.ErrorIs(t, err, injected)

	f.store.SetFault(nil)
	assertLevel(t, f.level(t, prodP, locA), 50, 50, 0)
	assertLevel(t, f.level(t, prodP, locB), 0, 0, 0)
	assert.Len(t, f.moves(t), 1)

	still, err := f.uc.Get(ctx, entity.DocTransfer, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, still.Status)
}

// ─── Consultas ───────────────────────────────────────────────────────────────

func TestListMoves_TopeYFiltros(t *testing.T) {
	f := newFixture(t, operation.Config{MovesPageCap: 2})
	f.receive(t, prodP, locA, 1)
	f.receive(t, prodP, locA, 2)
	f.receive(t, prodQ, locB, 3)

	all, err := f.uc.ListMoves(ctx, repository.MoveFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2, "el tope se respeta")

	all, err = f.uc.ListMoves(ctx, repository.MoveFilter{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byLoc, err := f.uc.ListMoves(ctx, repository.MoveFilter{LocationID: locB})
	require.NoError(t, err)
	require.Len(t, byLoc, 1)
	assert.Equal(t, prodQ, byLoc[0].ProductID)

	_, err = f.uc.ListMoves(ctx, repository.MoveFilter{MoveType: "LOAN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_FiltraPorEstadoYUbicacion(t *testing.T) {
	f := newFixture(t, operation.Config{})
	f.receive(t, prodP, locA, 5)
	f.create(t, operation.CreateDocumentInput{
		Type: entity.DocReceipt, LocationID: locB,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(1)}},
	})

	done, total, err := f.uc.List(ctx, repository.DocumentFilter{Type: entity.DocReceipt, Status: entity.StatusDone})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, locA, done[0].LocationID)

	atB, _, err := f.uc.List(ctx, repository.DocumentFilter{Type: entity.DocReceipt, LocationID: locB})
	require.NoError(t, err)
	require.Len(t, atB, 1)
	assert.Equal(t, entity.StatusDraft, atB[0].Status)

	none, total, err := f.uc.List(ctx, repository.DocumentFilter{Type: entity.DocDelivery})
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Zero(t, total)

	_, _, err = f.uc.List(ctx, repository.DocumentFilter{Type: entity.DocReceipt, Status: "ARCHIVED"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_TotalIgnoraLaPaginacion(t *testing.T) {
	f := newFixture(t, operation.Config{})
	for i := 0; i < 3; i++ {
		f.create(t, operation.CreateDocumentInput{
			Type: entity.DocReceipt, LocationID: locA,
			Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(1)}},
		})
	}

	first, total, err := f.uc.List(ctx, repository.DocumentFilter{Type: entity.DocReceipt, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 3, total)

	rest, total, err := f.uc.List(ctx, repository.DocumentFilter{Type: entity.DocReceipt, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest, 1)
	assert.Equal(t, 3, total)
}

// ─── Comprobante ─────────────────────────────────────────────────────────────

type fakeRenderer struct{ got *operation.Slip }

func (r *fakeRenderer) RenderSlip(_ context.Context, slip *operation.Slip) ([]byte, error) {
	r.got = slip
	return []byte("%PDF-fake"), nil
}

func TestSlip_ResuelveNombres(t *testing.T) {
	f := newFixture(t, operation.Config{})
	renderer := &fakeRenderer{}
	uc := operation.NewUseCase(f.store, f.store.Repos(), reference.NewGenerator(), renderer, logger.Nop(), operation.Config{})

	f.receive(t, prodP, locA, 1)
	doc := f.create(t, operation.CreateDocumentInput{
		Type: entity.DocTransfer, FromLocationID: locA, ToLocationID: locB,
		Lines: []operation.LineInput{{ProductID: prodP, Quantity: q(1)}},
	})

	pdf, filename, err := uc.Slip(ctx, entity.DocTransfer, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, doc.Reference+".pdf", filename)

	require.NotNil(t, renderer.got)
	assert.Equal(t, "Estante A (A)", renderer.got.FromLocationName)
	assert.Equal(t, "Estante B (B)", renderer.got.ToLocationName)
	require.Len(t, renderer.got.Lines, 1)
	assert.Equal(t, "P-001", renderer.got.Lines[0].SKU)
	assert.Equal(t, "Tornillo", renderer.got.Lines[0].ProductName)
}
