// Package reference genera las referencias legibles de los documentos de inventario
// (RCP-20240115-3F9A1C2B, DEL-..., TRF-..., ADJ-...).
package reference

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefijos por tipo de documento.
const (
	PrefixReceipt    = "RCP"
	PrefixDelivery   = "DEL"
	PrefixTransfer   = "TRF"
	PrefixAdjustment = "ADJ"
)

// Generator produce referencias con fecha UTC y un sufijo aleatorio derivado de un UUID v4.
// La unicidad final la garantiza el índice único de la tabla documents.
type Generator struct {
	now func() time.Time
}

// NewGenerator crea un generador con el reloj del sistema.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock crea un generador con un reloj fijo (tests).
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next devuelve una nueva referencia para el prefijo dado.
func (g *Generator) Next(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, g.now().UTC().Format("20060102"), suffix)
}
