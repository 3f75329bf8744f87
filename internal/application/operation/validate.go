package operation

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domop "github.com/jhoicas/almacen-api/internal/domain/operation"
)

// Validate aplica el documento al ledger en una única transacción:
//  1. bloquea el documento y verifica que admita la validación,
//  2. bloquea las filas de stock tocadas en orden (producto, ubicación),
//  3. verifica disponibilidad agregada por producto y origen,
//  4. escribe ledger y movimientos y marca el documento DONE.
//
// Ante cualquier error no queda ningún efecto persistido.
func (uc *UseCase) Validate(ctx context.Context, actor entity.Actor, docType entity.DocumentType, id string) (*entity.Document, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	strategy, err := domop.StrategyFor(docType)
	if err != nil {
		return nil, err
	}

	var result *entity.Document
	var moves int
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		doc, err := r.Documents.GetForUpdate(ctx, docType, id)
		if err != nil {
			return err
		}
		if err := domop.Transition(doc, domop.ActionValidate); err != nil {
			return err
		}

		ledger := NewLedger(r.StockLevels)
		recorder := NewMoveRecorder(r.StockMoves, uc.now)
		postings := strategy.Postings(doc)

		levels := make(map[domop.StockKey]*entity.StockLevel)
		for _, k := range domop.LockKeys(postings) {
			lvl, err := ledger.Lock(ctx, k.ProductID, k.LocationID)
			if err != nil {
				return err
			}
			levels[k] = lvl
		}
		for _, req := range domop.Requirements(postings) {
			lvl := levels[req.StockKey]
			if lvl.Available.LessThan(req.Quantity) {
				return &domain.InsufficientStockError{
					ProductID: req.ProductID, LocationID: req.LocationID,
					Requested: req.Quantity, Available: lvl.Available,
				}
			}
		}

		for _, p := range postings {
			line := &doc.Lines[p.LineIndex]
			move := MoveInput{
				Reference:    doc.Reference,
				ProductID:    p.ProductID,
				MoveType:     doc.Type.MoveType(),
				UserID:       actor.ID,
				DocumentType: doc.Type,
				DocumentID:   doc.ID,
			}

			if p.IsCount() {
				key := domop.StockKey{ProductID: p.ProductID, LocationID: p.LocationID}
				live := levels[key]
				diff := p.Counted.Sub(live.Quantity)
				line.SystemQty = live.Quantity
				line.Difference = diff
				if diff.IsZero() {
					continue
				}
				lvl, err := ledger.SetCounted(ctx, p.ProductID, p.LocationID, *p.Counted)
				if err != nil {
					return err
				}
				levels[key] = lvl
				if diff.IsNegative() {
					move.FromLocationID = p.LocationID
				} else {
					move.ToLocationID = p.LocationID
				}
				move.Quantity = diff.Abs()
			} else {
				if !p.Quantity.IsPositive() {
					continue
				}
				if p.FromLocationID != "" {
					key := domop.StockKey{ProductID: p.ProductID, LocationID: p.FromLocationID}
					lvl, err := ledger.ApplyDelta(ctx, p.ProductID, p.FromLocationID, p.Quantity.Neg(), p.Quantity.Neg())
					if err != nil {
						return err
					}
					levels[key] = lvl
				}
				if p.ToLocationID != "" {
					key := domop.StockKey{ProductID: p.ProductID, LocationID: p.ToLocationID}
					lvl, err := ledger.ApplyDelta(ctx, p.ProductID, p.ToLocationID, p.Quantity, p.Quantity)
					if err != nil {
						return err
					}
					levels[key] = lvl
				}
				move.FromLocationID = p.FromLocationID
				move.ToLocationID = p.ToLocationID
				move.Quantity = p.Quantity
				line.DoneQty = p.Quantity
			}

			if _, err := recorder.Record(ctx, move); err != nil {
				return err
			}
			moves++
		}

		now := uc.now()
		doc.ValidatedAt = &now
		doc.UpdatedAt = now
		if err := r.Documents.Update(ctx, doc); err != nil {
			return err
		}
		result = doc
		return nil
	})
	if err != nil {
		err = aborted("validar "+string(docType), err)
		uc.log.Warn().Err(err).
			Str("type", string(docType)).
			Str("document_id", id).
			Str("user_id", actor.ID).
			Msg("validación rechazada")
		return nil, err
	}

	uc.log.Info().
		Str("reference", result.Reference).
		Str("type", string(result.Type)).
		Str("user_id", actor.ID).
		Int("moves", moves).
		Msg("documento validado")
	return result, nil
}
