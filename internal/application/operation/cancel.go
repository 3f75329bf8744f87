package operation

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domop "github.com/jhoicas/almacen-api/internal/domain/operation"
)

// Cancel pasa el documento a CANCELLED. Un documento DONE no se puede cancelar y
// cancelar uno ya cancelado no tiene efecto. El ledger nunca se toca.
func (uc *UseCase) Cancel(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error) {
	if _, err := domop.StrategyFor(docType); err != nil {
		return nil, err
	}

	var result *entity.Document
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		doc, err := r.Documents.GetForUpdate(ctx, docType, id)
		if err != nil {
			return err
		}
		prev := doc.Status
		if err := domop.Transition(doc, domop.ActionCancel); err != nil {
			return err
		}
		result = doc
		if prev == doc.Status {
			return nil
		}
		doc.UpdatedAt = uc.now()
		return r.Documents.Update(ctx, doc)
	})
	if err != nil {
		return nil, aborted("cancelar "+string(docType), err)
	}

	uc.log.Info().
		Str("reference", result.Reference).
		Str("type", string(result.Type)).
		Msg("documento cancelado")
	return result, nil
}
