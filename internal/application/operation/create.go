package operation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domop "github.com/jhoicas/almacen-api/internal/domain/operation"
)

// LineInput línea solicitada. Quantity para recepción/despacho/traslado, CountedQty para ajustes.
type LineInput struct {
	ProductID  string
	Quantity   decimal.Decimal
	CountedQty decimal.Decimal
}

// CreateDocumentInput entrada para crear un documento en DRAFT.
type CreateDocumentInput struct {
	Type           entity.DocumentType
	LocationID     string
	FromLocationID string
	ToLocationID   string
	PartnerName    string
	Notes          string
	Reason         string
	ScheduledDate  *time.Time
	Lines          []LineInput
}

// Create valida la entrada, verifica productos y ubicaciones, hace el chequeo orientativo de
// disponibilidad (despachos y traslados), toma la foto del sistema en ajustes y persiste el
// documento en DRAFT. El ledger no se modifica.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in CreateDocumentInput) (*entity.Document, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	strategy, err := domop.StrategyFor(in.Type)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	doc := &entity.Document{
		ID:             uuid.New().String(),
		Type:           in.Type,
		Status:         entity.StatusDraft,
		LocationID:     in.LocationID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		PartnerName:    in.PartnerName,
		Notes:          in.Notes,
		Reason:         in.Reason,
		UserID:         actor.ID,
		ScheduledDate:  in.ScheduledDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	switch in.Type {
	case entity.DocTransfer:
		doc.LocationID = ""
	default:
		doc.FromLocationID, doc.ToLocationID = "", ""
	}
	for i, l := range in.Lines {
		doc.Lines = append(doc.Lines, entity.DocumentLine{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			LineNo:     i + 1,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			CountedQty: l.CountedQty,
		})
	}

	if err := strategy.Check(doc); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, doc); err != nil {
		return nil, err
	}

	// Chequeo orientativo: la validación vuelve a verificar con las filas bloqueadas.
	postings := strategy.Postings(doc)
	for _, req := range domop.Requirements(postings) {
		lvl, err := uc.repos.StockLevels.Get(ctx, req.ProductID, req.LocationID)
		if err != nil {
			return nil, fmt.Errorf("crear documento: consultar stock: %w", err)
		}
		if lvl.Available.LessThan(req.Quantity) {
			return nil, &domain.InsufficientStockError{
				ProductID: req.ProductID, LocationID: req.LocationID,
				Requested: req.Quantity, Available: lvl.Available,
			}
		}
	}
	if in.Type == entity.DocAdjustment {
		for i := range doc.Lines {
			l := &doc.Lines[i]
			lvl, err := uc.repos.StockLevels.Get(ctx, l.ProductID, doc.LocationID)
			if err != nil {
				return nil, fmt.Errorf("crear ajuste: consultar stock: %w", err)
			}
			l.SystemQty = lvl.Quantity
			l.Difference = l.CountedQty.Sub(lvl.Quantity)
		}
	}

	doc.Reference = uc.refs.Next(strategy.Prefix())
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		return r.Documents.Create(ctx, doc)
	})
	if err != nil {
		return nil, aborted("crear "+string(doc.Type), err)
	}

	uc.log.Info().
		Str("reference", doc.Reference).
		Str("type", string(doc.Type)).
		Str("user_id", actor.ID).
		Int("lines", len(doc.Lines)).
		Msg("documento creado")
	return doc, nil
}

// checkReferences verifica que las ubicaciones existan y que los productos existan y estén activos.
func (uc *UseCase) checkReferences(ctx context.Context, doc *entity.Document) error {
	for _, id := range []string{doc.LocationID, doc.FromLocationID, doc.ToLocationID} {
		if id == "" {
			continue
		}
		if _, err := uc.repos.Locations.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, id)
			}
			return err
		}
	}
	checked := make(map[string]bool, len(doc.Lines))
	for _, l := range doc.Lines {
		if checked[l.ProductID] {
			continue
		}
		checked[l.ProductID] = true
		p, err := uc.repos.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
			}
			return err
		}
		if !p.IsActive {
			return fmt.Errorf("%w: producto %s inactivo", domain.ErrInvalidInput, p.SKU)
		}
	}
	return nil
}
