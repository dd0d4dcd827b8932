// Package pdf implementa la generación del comprobante de movimiento de
// stock (entrada o salida) en PDF usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de movimiento  │  N° Lote + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Nombre del lote / Referencia / Nota                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Unidad | SKU | Producto | P.Unit             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: líneas / estado de conciliación                   │
//	│  FOOTER: código QR de consulta del lote                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/Almacen-api/internal/application/stocks"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ stocks.VoucherGenerator = (*MarotoVoucherGenerator)(nil)

// MarotoVoucherGenerator implementa stocks.VoucherGenerator usando Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator construye el generador.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

// GenerateBatchVoucher genera el comprobante PDF del lote y devuelve sus bytes.
func (g *MarotoVoucherGenerator) GenerateBatchVoucher(_ context.Context, batch *entity.Batch) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Movimiento de Stock", true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(batch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(datosRow(batch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(batch.Items) {
		m.AddRows(r)
	}

	// Resumen
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(resumenRow(batch))

	// Footer con QR de consulta
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(qrFooterRow(batch))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo de movimiento (izq) y N° lote + fecha (der).
func headerRow(batch *entity.Batch) core.Row {
	titulo := "ENTRADA DE MERCANCÍA"
	if batch.Direction == entity.DirectionOut {
		titulo = "SALIDA DE MERCANCÍA"
	}
	fecha := batch.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Lote: "+batch.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

// datosRow: nombre del lote, referencia y nota.
func datosRow(batch *entity.Batch) core.Row {
	nombre := batch.BatchName
	if nombre == "" {
		nombre = "(sin nombre)"
	}
	referencia := batch.Reference
	if referencia == "" {
		referencia = "—"
	}
	nota := batch.Note
	if nota == "" {
		nota = "—"
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("Lote: "+nombre, props.Text{Size: 9, Top: 1}),
			text.New("Referencia: "+referencia, props.Text{Size: 9, Top: 6, Color: colorGray}),
			text.New("Nota: "+nota, props.Text{Size: 9, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	estilo := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorWhite, Top: 1.5, Left: 1}
	return row.New(7).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		col.New(2).Add(text.New("Cant.", estilo)),
		col.New(2).Add(text.New("Unidad", estilo)),
		col.New(2).Add(text.New("SKU", estilo)),
		col.New(4).Add(text.New("Producto", estilo)),
		col.New(2).Add(text.New("P. Unit", estilo)),
	)
}

func tableItemRows(items []entity.LineItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		unidad := it.Unit
		if unidad == "" {
			unidad = "base"
		}
		precio := "—"
		if it.UnitPrice != nil {
			precio = "$" + it.UnitPrice.StringFixed(2)
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 9, Top: 1, Left: 1})),
			col.New(2).Add(text.New(unidad, props.Text{Size: 9, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 9, Top: 1, Left: 1})),
			col.New(4).Add(text.New(it.Name, props.Text{Size: 9, Top: 1, Left: 1})),
			col.New(2).Add(text.New(precio, props.Text{Size: 9, Top: 1, Left: 1})),
		))
	}
	return rows
}

// resumenRow: total de líneas y estado de conciliación del lote.
func resumenRow(batch *entity.Batch) core.Row {
	estado := "PENDIENTE DE CONCILIAR"
	if batch.Reconciled {
		estado = "CONCILIADO"
	}
	return row.New(10).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("Líneas: %d", len(batch.Items)), props.Text{
				Size: 10, Top: 2,
			}),
		),
		col.New(6).Add(
			text.New(estado, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}

// qrFooterRow: QR con el ID del lote para consulta rápida desde bodega.
func qrFooterRow(batch *entity.Batch) core.Row {
	return row.New(24).Add(
		col.New(3).Add(
			code.NewQr(batch.ID, props.Rect{Percent: 90, Center: true}),
		),
		col.New(9).Add(
			text.New("Escanee el código para consultar el lote en el sistema.", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
			text.New("Documento generado automáticamente. El libro de movimientos es inmutable.", props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
	)
}
