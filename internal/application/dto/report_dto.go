package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportQuery parámetros de GET /api/reports/stock (fechas YYYY-MM-DD).
type ReportQuery struct {
	Date       string `query:"date"`
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
	CategoryID string `query:"category" validate:"omitempty,uuid"`
	Search     string `query:"search" validate:"max=100"`
	OrderBy    string `query:"order_by" validate:"omitempty,oneof=category name price quantity"`
	Format     string `query:"format" validate:"omitempty,oneof=json csv pdf xml"`
}

// ReportRow fila del reporte de existencias por producto.
type ReportRow struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	ProductCode       string          `json:"product_code"`
	ProductUnit       string          `json:"product_unit"`
	CategoryName      string          `json:"category_name"`
	BeginningQuantity decimal.Decimal `json:"beginning_quantity"`
	BeginningPrice    decimal.Decimal `json:"beginning_price"`
	GoodsInQuantity   decimal.Decimal `json:"goods_in_quantity"`
	GoodsInPrice      decimal.Decimal `json:"goods_in_price"`
	GoodsOutQuantity  decimal.Decimal `json:"goods_out_quantity"`
	GoodsOutPrice     decimal.Decimal `json:"goods_out_price"`
	EndingQuantity    decimal.Decimal `json:"ending_quantity"`
	EndingPrice       decimal.Decimal `json:"ending_price"`
}

// ReportResponse reporte completo con la ventana aplicada.
type ReportResponse struct {
	From        *time.Time  `json:"from,omitempty"`
	To          *time.Time  `json:"to,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"`
	Rows        []ReportRow `json:"rows"`
}

// ReportCodeRequest body para PUT /api/report-code.
type ReportCodeRequest struct {
	Password string `json:"password" validate:"required,min=4,max=10"`
}

// ReportCodeResponse metadatos de la contraseña vigente (nunca el valor).
type ReportCodeResponse struct {
	IsSet     bool       `json:"is_set"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	UpdatedBy string     `json:"updated_by,omitempty"`
}
