package operation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/reference"
)

// Posting es una mutación de stock derivada de una línea del documento.
// Con Counted nil es un delta: se debita Quantity en FromLocationID (si no está vacío) y se
// acredita en ToLocationID (si no está vacío). Con Counted definido es un conteo absoluto en
// LocationID y la magnitud del movimiento se calcula contra el nivel vivo.
type Posting struct {
	LineIndex      int
	ProductID      string
	FromLocationID string
	ToLocationID   string
	LocationID     string
	Quantity       decimal.Decimal
	Counted        *decimal.Decimal
}

// IsCount indica si es un conteo absoluto (ajuste).
func (p Posting) IsCount() bool { return p.Counted != nil }

// StockKey identifica una fila del ledger.
type StockKey struct {
	ProductID  string
	LocationID string
}

// Requirement es la cantidad total que debe estar disponible en una fila antes de debitar.
type Requirement struct {
	StockKey
	Quantity decimal.Decimal
}

// Strategy encapsula lo que distingue a cada tipo de documento.
type Strategy interface {
	Type() entity.DocumentType
	Prefix() string
	// Check valida la forma del documento antes de crearlo.
	Check(doc *entity.Document) error
	// Postings traduce las líneas a mutaciones de stock.
	Postings(doc *entity.Document) []Posting
}

// StrategyFor devuelve la estrategia del tipo de documento.
func StrategyFor(t entity.DocumentType) (Strategy, error) {
	switch t {
	case entity.DocReceipt:
		return receiptStrategy{}, nil
	case entity.DocDelivery:
		return deliveryStrategy{}, nil
	case entity.DocTransfer:
		return transferStrategy{}, nil
	case entity.DocAdjustment:
		return adjustmentStrategy{}, nil
	}
	return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, t)
}

// LockKeys devuelve las filas tocadas por los postings, sin repetir y en orden (producto, ubicación).
// Bloquear siempre en este orden evita interbloqueos entre validaciones concurrentes.
func LockKeys(postings []Posting) []StockKey {
	seen := make(map[StockKey]struct{})
	var keys []StockKey
	add := func(productID, locationID string) {
		if locationID == "" {
			return
		}
		k := StockKey{ProductID: productID, LocationID: locationID}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for _, p := range postings {
		if p.IsCount() {
			add(p.ProductID, p.LocationID)
			continue
		}
		add(p.ProductID, p.FromLocationID)
		add(p.ProductID, p.ToLocationID)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProductID != keys[j].ProductID {
			return keys[i].ProductID < keys[j].ProductID
		}
		return keys[i].LocationID < keys[j].LocationID
	})
	return keys
}

// Requirements agrega por (producto, ubicación de origen) lo que los postings debitan.
// Dos líneas del mismo producto se verifican contra su suma, no por separado.
func Requirements(postings []Posting) []Requirement {
	idx := make(map[StockKey]int)
	var reqs []Requirement
	for _, p := range postings {
		if p.IsCount() || p.FromLocationID == "" {
			continue
		}
		k := StockKey{ProductID: p.ProductID, LocationID: p.FromLocationID}
		if i, ok := idx[k]; ok {
			reqs[i].Quantity = reqs[i].Quantity.Add(p.Quantity)
			continue
		}
		idx[k] = len(reqs)
		reqs = append(reqs, Requirement{StockKey: k, Quantity: p.Quantity})
	}
	return reqs
}

func checkLines(doc *entity.Document) error {
	if len(doc.Lines) == 0 {
		return fmt.Errorf("%w: el documento debe tener al menos una línea", domain.ErrInvalidInput)
	}
	for i, l := range doc.Lines {
		if l.ProductID == "" {
			return fmt.Errorf("%w: línea %d sin producto", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

func checkPositiveQuantities(doc *entity.Document) error {
	for i, l := range doc.Lines {
		if !l.Quantity.IsPositive() {
			return fmt.Errorf("%w: línea %d con cantidad no positiva", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

type receiptStrategy struct{}

func (receiptStrategy) Type() entity.DocumentType { return entity.DocReceipt }
func (receiptStrategy) Prefix() string            { return reference.PrefixReceipt }

func (receiptStrategy) Check(doc *entity.Document) error {
	if doc.LocationID == "" {
		return fmt.Errorf("%w: ubicación requerida", domain.ErrInvalidInput)
	}
	if err := checkLines(doc); err != nil {
		return err
	}
	return checkPositiveQuantities(doc)
}

func (receiptStrategy) Postings(doc *entity.Document) []Posting {
	out := make([]Posting, 0, len(doc.Lines))
	for i, l := range doc.Lines {
		out = append(out, Posting{LineIndex: i, ProductID: l.ProductID, ToLocationID: doc.LocationID, Quantity: l.Quantity})
	}
	return out
}

type deliveryStrategy struct{}

func (deliveryStrategy) Type() entity.DocumentType { return entity.DocDelivery }
func (deliveryStrategy) Prefix() string            { return reference.PrefixDelivery }

func (deliveryStrategy) Check(doc *entity.Document) error {
	if doc.LocationID == "" {
		return fmt.Errorf("%w: ubicación requerida", domain.ErrInvalidInput)
	}
	if err := checkLines(doc); err != nil {
		return err
	}
	return checkPositiveQuantities(doc)
}

func (deliveryStrategy) Postings(doc *entity.Document) []Posting {
	out := make([]Posting, 0, len(doc.Lines))
	for i, l := range doc.Lines {
		out = append(out, Posting{LineIndex: i, ProductID: l.ProductID, FromLocationID: doc.LocationID, Quantity: l.Quantity})
	}
	return out
}

type transferStrategy struct{}

func (transferStrategy) Type() entity.DocumentType { return entity.DocTransfer }
func (transferStrategy) Prefix() string            { return reference.PrefixTransfer }

func (transferStrategy) Check(doc *entity.Document) error {
	if doc.FromLocationID == "" || doc.ToLocationID == "" {
		return fmt.Errorf("%w: ubicación de origen y destino requeridas", domain.ErrInvalidInput)
	}
	if doc.FromLocationID == doc.ToLocationID {
		return domain.ErrSameLocation
	}
	if err := checkLines(doc); err != nil {
		return err
	}
	return checkPositiveQuantities(doc)
}

func (transferStrategy) Postings(doc *entity.Document) []Posting {
	out := make([]Posting, 0, len(doc.Lines))
	for i, l := range doc.Lines {
		out = append(out, Posting{
			LineIndex:      i,
			ProductID:      l.ProductID,
			FromLocationID: doc.FromLocationID,
			ToLocationID:   doc.ToLocationID,
			Quantity:       l.Quantity,
		})
	}
	return out
}

type adjustmentStrategy struct{}

func (adjustmentStrategy) Type() entity.DocumentType { return entity.DocAdjustment }
func (adjustmentStrategy) Prefix() string            { return reference.PrefixAdjustment }

func (adjustmentStrategy) Check(doc *entity.Document) error {
	if doc.LocationID == "" {
		return fmt.Errorf("%w: ubicación requerida", domain.ErrInvalidInput)
	}
	if err := checkLines(doc); err != nil {
		return err
	}
	seen := make(map[string]bool, len(doc.Lines))
	for i, l := range doc.Lines {
		if l.CountedQty.IsNegative() {
			return fmt.Errorf("%w: línea %d con conteo negativo", domain.ErrInvalidInput, i+1)
		}
		// Dos conteos del mismo producto en la misma ubicación serían contradictorios.
		if seen[l.ProductID] {
			return fmt.Errorf("%w: producto %s repetido en el ajuste", domain.ErrInvalidInput, l.ProductID)
		}
		seen[l.ProductID] = true
	}
	return nil
}

func (adjustmentStrategy) Postings(doc *entity.Document) []Posting {
	out := make([]Posting, 0, len(doc.Lines))
	for i, l := range doc.Lines {
		counted := l.CountedQty
		out = append(out, Posting{LineIndex: i, ProductID: l.ProductID, LocationID: doc.LocationID, Counted: &counted})
	}
	return out
}
