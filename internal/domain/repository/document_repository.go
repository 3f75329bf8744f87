package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// DocumentFilter criterios de listado. LocationID coincide con la ubicación del documento
// o con el origen/destino de un traslado.
type DocumentFilter struct {
	Type       entity.DocumentType
	Status     entity.DocumentStatus
	LocationID string
	Limit      int
	Offset     int
}

// DocumentRepository persiste documentos de operación con sus líneas.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error)
	// GetForUpdate bloquea el documento hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, docType entity.DocumentType, id string) (*entity.Document, error)
	// Update persiste estado, fechas y los campos de ejecución de las líneas.
	Update(ctx context.Context, doc *entity.Document) error
	// List devuelve la página pedida y el total sin paginar.
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, int, error)
}
