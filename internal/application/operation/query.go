package operation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domop "github.com/jhoicas/almacen-api/internal/domain/operation"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Get devuelve el documento con sus líneas.
func (uc *UseCase) Get(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error) {
	if _, err := domop.StrategyFor(docType); err != nil {
		return nil, err
	}
	return uc.repos.Documents.GetByID(ctx, docType, id)
}

// List lista documentos de un tipo, más recientes primero, con el total sin paginar.
func (uc *UseCase) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.Document, int, error) {
	if _, err := domop.StrategyFor(filter.Type); err != nil {
		return nil, 0, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.repos.Documents.List(ctx, filter)
}

// ListMoves devuelve el historial de movimientos, más recientes primero y con tope configurable.
func (uc *UseCase) ListMoves(ctx context.Context, filter repository.MoveFilter) ([]*entity.StockMove, error) {
	if filter.MoveType != "" && !entity.DocumentType(filter.MoveType).Valid() {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, filter.MoveType)
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	if filter.Limit <= 0 || filter.Limit > uc.movesCap {
		filter.Limit = uc.movesCap
	}
	return uc.repos.StockMoves.List(ctx, filter)
}

// Slip genera el comprobante imprimible del documento.
func (uc *UseCase) Slip(ctx context.Context, docType entity.DocumentType, id string) ([]byte, string, error) {
	if uc.slips == nil {
		return nil, "", errors.New("operation: generador de comprobantes no configurado")
	}
	doc, err := uc.Get(ctx, docType, id)
	if err != nil {
		return nil, "", err
	}

	slip := &Slip{Document: doc}
	slip.LocationName = uc.locationName(ctx, doc.LocationID)
	slip.FromLocationName = uc.locationName(ctx, doc.FromLocationID)
	slip.ToLocationName = uc.locationName(ctx, doc.ToLocationID)
	for _, l := range doc.Lines {
		sl := SlipLine{DocumentLine: l, ProductName: "Producto " + l.ProductID}
		if p, pErr := uc.repos.Products.GetByID(ctx, l.ProductID); pErr == nil {
			sl.SKU, sl.ProductName, sl.Unit = p.SKU, p.Name, p.UnitOfMeasure
		}
		slip.Lines = append(slip.Lines, sl)
	}

	pdfBytes, err := uc.slips.RenderSlip(ctx, slip)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, doc.Reference + ".pdf", nil
}

func (uc *UseCase) locationName(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	loc, err := uc.repos.Locations.GetByID(ctx, id)
	if err != nil {
		return id
	}
	return loc.Name + " (" + loc.Code + ")"
}
