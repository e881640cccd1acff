// Package pdf genera los PDF del almacén con Maroto v2: el reporte de existencias
// y las etiquetas de código de barras de un producto.
package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoPDFGenerator genera reportes y etiquetas.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador con formato numérico en español.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return NewMarotoPDFGeneratorWithLang(language.Spanish)
}

// NewMarotoPDFGeneratorWithLang usa los separadores de miles y decimales de tag.
func NewMarotoPDFGeneratorWithLang(tag language.Tag) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(tag)}
}

func pageConfig(title string, landscape bool) *entity.Config {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true)
	if landscape {
		b = b.WithOrientation(orientation.Horizontal)
	}
	return b.Build()
}

// number 2 decimales con separador de miles del idioma.
func (g *MarotoPDFGenerator) number(d decimal.Decimal) string {
	return g.printer.Sprintf("%.2f", d.InexactFloat64())
}

func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return "$" + g.number(d)
}

func titleRow(title, subtitle string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(subtitle, props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
