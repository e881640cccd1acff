// Package export serializa el reporte de existencias a CSV y XML.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

var csvHeader = []string{
	"product_id", "product_code", "product_name", "product_unit", "category_name",
	"beginning_quantity", "beginning_price",
	"goods_in_quantity", "goods_in_price",
	"goods_out_quantity", "goods_out_price",
	"ending_quantity", "ending_price",
}

// ReportCSV una fila por producto, cantidades y valores con 2 decimales.
func ReportCSV(report dto.ReportResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export: csv header: %w", err)
	}
	for _, r := range report.Rows {
		rec := []string{
			r.ProductID, r.ProductCode, r.ProductName, r.ProductUnit, r.CategoryName,
			r.BeginningQuantity.StringFixed(2), r.BeginningPrice.StringFixed(2),
			r.GoodsInQuantity.StringFixed(2), r.GoodsInPrice.StringFixed(2),
			r.GoodsOutQuantity.StringFixed(2), r.GoodsOutPrice.StringFixed(2),
			r.EndingQuantity.StringFixed(2), r.EndingPrice.StringFixed(2),
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("export: csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: csv: %w", err)
	}
	return buf.Bytes(), nil
}
