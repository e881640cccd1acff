package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

const (
	labelsPerRow  = 3
	defaultLabels = 12
	maxLabels     = 120
)

// GenerateLabelPDF hoja A4 con copies etiquetas (nombre, código de barras y código en texto).
func (g *MarotoPDFGenerator) GenerateLabelPDF(_ context.Context, product dto.ProductResponse, copies int) ([]byte, error) {
	if product.Code == "" {
		return nil, fmt.Errorf("pdf: producto sin código")
	}
	if copies <= 0 {
		copies = defaultLabels
	}
	if copies > maxLabels {
		copies = maxLabels
	}

	m := maroto.New(pageConfig("Etiquetas "+product.Code, false))
	for remaining := copies; remaining > 0; remaining -= labelsPerRow {
		n := min(remaining, labelsPerRow)
		m.AddRows(g.labelRows(product, n)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoPDFGenerator) labelRows(product dto.ProductResponse, n int) []core.Row {
	names := make([]core.Col, 0, labelsPerRow)
	bars := make([]core.Col, 0, labelsPerRow)
	codes := make([]core.Col, 0, labelsPerRow)
	for i := 0; i < labelsPerRow; i++ {
		if i >= n {
			names = append(names, col.New(4))
			bars = append(bars, col.New(4))
			codes = append(codes, col.New(4))
			continue
		}
		names = append(names, col.New(4).Add(text.New(product.Name, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1,
		})))
		bars = append(bars, col.New(4).Add(code.NewBar(product.Code, props.Barcode{Percent: 80, Center: true})))
		codes = append(codes, col.New(4).Add(text.New(product.Code+"   "+g.money(product.Price), props.Text{
			Size: 7, Align: align.Center, Top: 0.5, Color: colorGray,
		})))
	}
	return []core.Row{
		row.New(6).Add(names...),
		row.New(16).Add(bars...),
		row.New(8).Add(codes...),
	}
}
