package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

func sampleReport() dto.ReportResponse {
	return dto.ReportResponse{
		GeneratedAt: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
		Rows: []dto.ReportRow{{
			ProductID:         "p1",
			ProductName:       "Arroz, grano largo",
			ProductCode:       "4006381333931",
			ProductUnit:       "kg",
			BeginningQuantity: decimal.Zero,
			BeginningPrice:    decimal.Zero,
			GoodsInQuantity:   decimal.NewFromInt(10),
			GoodsInPrice:      decimal.NewFromInt(20),
			GoodsOutQuantity:  decimal.NewFromInt(3),
			GoodsOutPrice:     decimal.NewFromInt(6),
			EndingQuantity:    decimal.NewFromInt(7),
			EndingPrice:       decimal.NewFromInt(14),
		}},
	}
}

func TestReportCSV(t *testing.T) {
	out, err := ReportCSV(sampleReport())
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "product_id", records[0][0])
	assert.Equal(t, "Arroz, grano largo", records[1][2])
	assert.Equal(t, "7.00", records[1][11])
}

func TestReportXML(t *testing.T) {
	out, err := ReportXML(sampleReport())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	products := doc.FindElements("/stockReport/product")
	require.Len(t, products, 1)
	assert.Equal(t, "4006381333931", products[0].SelectAttrValue("code", ""))
	ending := products[0].SelectElement("ending")
	require.NotNil(t, ending)
	assert.Equal(t, "7.00", ending.SelectAttrValue("quantity", ""))
	assert.Nil(t, products[0].SelectElement("category"))
}

func TestDigest_IgnoresFormatting(t *testing.T) {
	a := []byte(`<r b="2" a="1"><x>1</x></r>`)
	b := []byte(`<r a="1" b="2"><x>1</x></r>`)
	da, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
	assert.Len(t, da, 64)

	dc, err := Digest([]byte(`<r a="1" b="3"><x>1</x></r>`))
	require.NoError(t, err)
	assert.NotEqual(t, da, dc)
}
