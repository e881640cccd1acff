package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// ReportXML documento <stockReport> con un <product> por fila.
func ReportXML(report dto.ReportResponse) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("stockReport")
	root.CreateAttr("generatedAt", report.GeneratedAt.UTC().Format(time.RFC3339))
	if report.From != nil && report.To != nil {
		root.CreateAttr("from", report.From.Format(time.RFC3339))
		root.CreateAttr("to", report.To.Format(time.RFC3339))
	}

	for _, r := range report.Rows {
		p := root.CreateElement("product")
		p.CreateAttr("id", r.ProductID)
		p.CreateAttr("code", r.ProductCode)
		p.CreateElement("name").SetText(r.ProductName)
		if r.ProductUnit != "" {
			p.CreateElement("unit").SetText(r.ProductUnit)
		}
		if r.CategoryName != "" {
			p.CreateElement("category").SetText(r.CategoryName)
		}
		addBalance(p, "beginning", r.BeginningQuantity, r.BeginningPrice)
		addBalance(p, "goodsIn", r.GoodsInQuantity, r.GoodsInPrice)
		addBalance(p, "goodsOut", r.GoodsOutQuantity, r.GoodsOutPrice)
		addBalance(p, "ending", r.EndingQuantity, r.EndingPrice)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: xml: %w", err)
	}
	return out, nil
}

func addBalance(parent *etree.Element, tag string, qty, value decimal.Decimal) {
	el := parent.CreateElement(tag)
	el.CreateAttr("quantity", qty.StringFixed(2))
	el.CreateAttr("value", value.StringFixed(2))
}

// Digest SHA-256 (hex) de la forma canónica C14N del XML: no cambia con el orden
// de atributos ni con el estilo de comillas.
func Digest(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("export: c14n: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
