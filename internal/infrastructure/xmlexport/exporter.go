// Package xmlexport serializa lotes del libro de movimientos a XML para
// intercambio con sistemas externos (ERP, contabilidad).
package xmlexport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Almacen-api/internal/application/stocks"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var _ stocks.LedgerExporter = (*Exporter)(nil)

// Exporter implementa stocks.LedgerExporter sobre etree.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportBatch serializa un lote a XML indentado.
//
// Estructura del documento:
//
//	<StockBatch id="..." direction="in|out" reconciled="true|false">
//	  <Name/> <Reference/> <Note/> <CreatedAt/>
//	  <Items count="N">
//	    <Item position="i"><ProductID/><SKU/><Name/><Unit/><Quantity/><UnitPrice/><BatchLabel/></Item>
//	  </Items>
//	</StockBatch>
func (e *Exporter) ExportBatch(batch *entity.Batch) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("StockBatch")
	root.CreateAttr("id", batch.ID)
	root.CreateAttr("direction", batch.Direction)
	root.CreateAttr("reconciled", strconv.FormatBool(batch.Reconciled))

	root.CreateElement("Name").SetText(batch.BatchName)
	root.CreateElement("Reference").SetText(batch.Reference)
	root.CreateElement("Note").SetText(batch.Note)
	root.CreateElement("CreatedAt").SetText(batch.CreatedAt.UTC().Format(time.RFC3339))

	items := root.CreateElement("Items")
	items.CreateAttr("count", strconv.Itoa(len(batch.Items)))
	for i, it := range batch.Items {
		item := items.CreateElement("Item")
		item.CreateAttr("position", strconv.Itoa(i))
		item.CreateElement("ProductID").SetText(it.ProductID)
		item.CreateElement("SKU").SetText(it.SKU)
		item.CreateElement("Name").SetText(it.Name)
		item.CreateElement("Unit").SetText(it.Unit)
		item.CreateElement("Quantity").SetText(strconv.FormatInt(it.Quantity, 10))
		if it.UnitPrice != nil {
			item.CreateElement("UnitPrice").SetText(it.UnitPrice.String())
		}
		if it.BatchLabel != "" {
			item.CreateElement("BatchLabel").SetText(it.BatchLabel)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar lote: %w", err)
	}
	return out, nil
}
