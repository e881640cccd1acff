package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// Layout (A4 horizontal):
//
//	Producto (nombre / código / categoría) | Unidad | Inicial | Entradas | Salidas | Final
//
// Cada columna numérica muestra la cantidad y debajo el valor.

// GenerateReportPDF genera el PDF del reporte de existencias.
func (g *MarotoPDFGenerator) GenerateReportPDF(_ context.Context, report dto.ReportResponse) ([]byte, error) {
	m := maroto.New(pageConfig("Reporte de existencias", true))

	m.AddRows(titleRow("REPORTE DE EXISTENCIAS", periodLabel(report)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(reportHeaderRow())

	var totals [4]decimal.Decimal
	for _, r := range report.Rows {
		m.AddRows(g.reportDetailRow(r))
		totals[0] = totals[0].Add(r.BeginningPrice)
		totals[1] = totals[1].Add(r.GoodsInPrice)
		totals[2] = totals[2].Add(r.GoodsOutPrice)
		totals[3] = totals[3].Add(r.EndingPrice)
	}
	if len(report.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin movimientos en el periodo.", props.Text{Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func periodLabel(report dto.ReportResponse) string {
	generated := "Generado: " + report.GeneratedAt.Format("02/01/2006 15:04")
	if report.From == nil || report.To == nil {
		return "Todo el historial   |   " + generated
	}
	return fmt.Sprintf("Del %s al %s   |   %s",
		report.From.Format("02/01/2006"), report.To.Format("02/01/2006"), generated)
}

func reportHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Unidad", 1, align.Center),
		h("Saldo inicial", 2, align.Right),
		h("Entradas", 2, align.Right),
		h("Salidas", 2, align.Right),
		h("Saldo final", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *MarotoPDFGenerator) reportDetailRow(r dto.ReportRow) core.Row {
	amount := func(qty, value decimal.Decimal) core.Col {
		return col.New(2).Add(
			text.New(g.number(qty), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}),
			text.New(g.money(value), props.Text{Size: 7, Align: align.Right, Top: 5, Right: 1, Color: colorGray}),
		)
	}
	return row.New(14).Add(
		col.New(3).Add(
			text.New(r.ProductName, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1}),
			text.New(r.ProductCode, props.Text{Size: 7, Top: 5, Left: 1, Color: colorGray}),
			text.New(nonEmpty(r.CategoryName, "Sin categoría"), props.Text{Size: 7, Top: 9, Left: 1, Color: colorGray}),
		),
		col.New(1).Add(text.New(nonEmpty(r.ProductUnit, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
		amount(r.BeginningQuantity, r.BeginningPrice),
		amount(r.GoodsInQuantity, r.GoodsInPrice),
		amount(r.GoodsOutQuantity, r.GoodsOutPrice),
		amount(r.EndingQuantity, r.EndingPrice),
	)
}

func (g *MarotoPDFGenerator) totalsRow(totals [4]decimal.Decimal) core.Row {
	value := func(d decimal.Decimal) core.Col {
		return col.New(2).Add(text.New(g.money(d), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2, Right: 1, Color: colorPrimary,
		}))
	}
	return row.New(9).Add(
		col.New(4).Add(text.New("TOTAL VALORIZADO", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2, Left: 1, Color: colorPrimary,
		})),
		value(totals[0]),
		value(totals[1]),
		value(totals[2]),
		value(totals[3]),
	)
}
