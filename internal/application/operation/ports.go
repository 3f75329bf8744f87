package operation

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Repos agrupa los repositorios que participan en una operación. Dentro de TxRunner.Run
// todos están atados a la misma transacción.
type Repos struct {
	Documents   repository.DocumentRepository
	StockLevels repository.StockLevelRepository
	StockMoves  repository.StockMoveRepository
	Products    repository.ProductRepository
	Locations   repository.LocationRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback y ningún efecto queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// ReferenceGenerator produce referencias legibles a partir de un prefijo (RCP, DEL, TRF, ADJ).
type ReferenceGenerator interface {
	Next(prefix string) string
}

// SlipLine línea del comprobante con los datos de producto ya resueltos.
type SlipLine struct {
	entity.DocumentLine
	SKU         string
	ProductName string
	Unit        string
}

// Slip datos necesarios para imprimir el comprobante de un documento.
type Slip struct {
	Document         *entity.Document
	Lines            []SlipLine
	LocationName     string
	FromLocationName string
	ToLocationName   string
}

// SlipRenderer genera la representación imprimible (PDF) de un documento.
type SlipRenderer interface {
	RenderSlip(ctx context.Context, slip *Slip) ([]byte, error)
}
