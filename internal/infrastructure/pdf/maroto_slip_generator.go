// Package pdf genera el comprobante imprimible de un documento de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de operación    │  Referencia + Estado         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UBICACIONES: origen / destino  │  Socio + Fechas            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Cantidad | Hecho (o conteo)         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de la referencia + notas                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/operation"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ operation.SlipRenderer = (*MarotoSlipGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSlipGenerator implementa operation.SlipRenderer usando Maroto v2.
type MarotoSlipGenerator struct {
	company string
}

// NewMarotoSlipGenerator construye el generador. company aparece como autor del PDF.
func NewMarotoSlipGenerator(company string) *MarotoSlipGenerator {
	return &MarotoSlipGenerator{company: company}
}

// RenderSlip genera el PDF y devuelve sus bytes.
func (g *MarotoSlipGenerator) RenderSlip(ctx context.Context, slip *operation.Slip) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if slip == nil || slip.Document == nil {
		return nil, fmt.Errorf("pdf: comprobante vacío")
	}
	doc := slip.Document

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(typeTitle(doc.Type)+" "+doc.Reference, true).
		WithAuthor(nonEmpty(g.company, "almacen-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(locationsRow(slip))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	count := doc.Type == entity.DocAdjustment
	m.AddRows(tableHeaderRow(count))
	for _, r := range tableLineRows(slip.Lines, count) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo de operación (izq) y referencia + estado (der).
func headerRow(doc *entity.Document) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(typeTitle(doc.Type), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Creado: "+formatDate(&doc.CreatedAt), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(doc.Reference, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Estado: "+string(doc.Status), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Validado: "+formatDate(doc.ValidatedAt), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// locationsRow: ubicaciones según el tipo (izq) y socio/programación (der).
func locationsRow(slip *operation.Slip) core.Row {
	doc := slip.Document
	var where string
	switch doc.Type {
	case entity.DocTransfer:
		where = fmt.Sprintf("Origen: %s   →   Destino: %s",
			nonEmpty(slip.FromLocationName, "-"), nonEmpty(slip.ToLocationName, "-"))
	case entity.DocReceipt:
		where = "Destino: " + nonEmpty(slip.LocationName, "-")
	case entity.DocDelivery:
		where = "Origen: " + nonEmpty(slip.LocationName, "-")
	default:
		where = "Ubicación: " + nonEmpty(slip.LocationName, "-")
	}

	detail := "Socio: " + nonEmpty(doc.PartnerName, "-")
	if doc.Type == entity.DocAdjustment {
		detail = "Motivo: " + nonEmpty(doc.Reason, "-")
	}

	return row.New(14).Add(
		col.New(7).Add(
			text.New("UBICACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(where, props.Text{Size: 9, Top: 7}),
		),
		col.New(5).Add(
			text.New(detail, props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorGray}),
			text.New("Programado: "+formatDate(doc.ScheduledDate), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla; los ajustes muestran sistema, conteo y diferencia.
func tableHeaderRow(count bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	if count {
		return row.New(8).Add(
			h("SKU", 2, align.Left),
			h("Producto", 4, align.Left),
			h("Sistema", 2, align.Right),
			h("Contado", 2, align.Right),
			h("Diferencia", 2, align.Right),
		)
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Unidad", 1, align.Center),
		h("Cantidad", 2, align.Right),
		h("Hecho", 2, align.Right),
	)
}

// tableLineRows: una fila por línea del documento.
func tableLineRows(lines []operation.SlipLine, count bool) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		if count {
			result = append(result, row.New(7).Add(
				cell(l.SKU, 2, align.Left),
				cell(l.ProductName, 4, align.Left),
				cell(l.SystemQty.String(), 2, align.Right),
				cell(l.CountedQty.String(), 2, align.Right),
				cell(signed(l.Difference.String(), l.Difference.IsPositive()), 2, align.Right),
			))
			continue
		}
		result = append(result, row.New(7).Add(
			cell(l.SKU, 2, align.Left),
			cell(l.ProductName, 5, align.Left),
			cell(l.Unit, 1, align.Center),
			cell(l.Quantity.String(), 2, align.Right),
			cell(l.DoneQty.String(), 2, align.Right),
		))
	}
	return result
}

// footerRow: QR con la referencia para escaneo en bodega y notas del documento.
func footerRow(doc *entity.Document) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(doc.Reference, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Notas", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 2, Left: 3, Color: colorPrimary,
			}),
			text.New(nonEmpty(doc.Notes, "-"), props.Text{
				Size: 8, Top: 8, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func typeTitle(t entity.DocumentType) string {
	switch t {
	case entity.DocReceipt:
		return "RECEPCIÓN"
	case entity.DocDelivery:
		return "ENTREGA"
	case entity.DocTransfer:
		return "TRANSFERENCIA INTERNA"
	case entity.DocAdjustment:
		return "AJUSTE DE INVENTARIO"
	}
	return "DOCUMENTO"
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}

func signed(s string, positive bool) string {
	if positive {
		return "+" + s
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
