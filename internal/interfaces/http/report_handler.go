package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/export"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
)

// HeaderReportPassword cabecera con la contraseña compartida de reportes.
const HeaderReportPassword = "X-Report-Password"

// HeaderReportDigest SHA-256 del XML canónico devuelto.
const HeaderReportDigest = "X-Report-Digest"

// ReportHandler expone el reporte de existencias en JSON, CSV, PDF o XML.
type ReportHandler struct {
	uc  *inventory.ReportUseCase
	pdf *pdf.MarotoPDFGenerator
	loc *time.Location
	now func() time.Time
}

// NewReportHandler construye el handler. loc define los límites de día de los filtros.
func NewReportHandler(uc *inventory.ReportUseCase, pdfGen *pdf.MarotoPDFGenerator, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	if pdfGen == nil {
		pdfGen = pdf.NewMarotoPDFGenerator()
	}
	return &ReportHandler{uc: uc, pdf: pdfGen, loc: loc, now: time.Now}
}

// Stock godoc
// @Summary      Reporte de existencias
// @Description  Saldo inicial, entradas, salidas y saldo final por producto en la ventana indicada.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date        query  string  false  "Día único YYYY-MM-DD (excluye start_date/end_date)"
// @Param        start_date  query  string  false  "Inicio YYYY-MM-DD"
// @Param        end_date    query  string  false  "Fin YYYY-MM-DD (inclusive)"
// @Param        category    query  string  false  "Category ID"
// @Param        search      query  string  false  "Texto en código, nombre o categoría"
// @Param        order_by    query  string  false  "category | name | price | quantity"
// @Param        format      query  string  false  "json | csv | pdf | xml"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if err := validate.Struct(q); err != nil {
		return writeError(c, err)
	}
	filter, err := inventory.ParseReportFilter(q, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	rows, err := h.uc.GenerateReport(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return h.render(c, q.Format, dto.ReportResponse{From: filter.From, To: filter.To, GeneratedAt: h.now(), Rows: rows})
}

// Shared godoc
// @Summary      Reporte con contraseña compartida
// @Description  Todos los productos, sin filtros. Limitado por IP.
// @Tags         reports
// @Produce      json
// @Param        X-Report-Password  header  string  true   "Contraseña vigente"
// @Param        format             query   string  false  "json | csv | pdf | xml"
// @Success      200  {object}  dto.ReportResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/reports/stock/shared [get]
func (h *ReportHandler) Shared(c *fiber.Ctx) error {
	format := c.Query("format")
	if err := validate.Var(format, "omitempty,oneof=json csv pdf xml"); err != nil {
		return writeError(c, err)
	}
	rows, err := h.uc.GenerateSharedReport(c.UserContext(), c.Get(HeaderReportPassword))
	if err != nil {
		return writeError(c, err)
	}
	return h.render(c, format, dto.ReportResponse{GeneratedAt: h.now(), Rows: rows})
}

func (h *ReportHandler) render(c *fiber.Ctx, format string, report dto.ReportResponse) error {
	if report.Rows == nil {
		report.Rows = []dto.ReportRow{}
	}
	switch format {
	case "csv":
		data, err := export.ReportCSV(report)
		if err != nil {
			return writeError(c, err)
		}
		return sendFile(c, "text/csv; charset=utf-8", "existencias.csv", data)
	case "pdf":
		data, err := h.pdf.GenerateReportPDF(c.UserContext(), report)
		if err != nil {
			return writeError(c, err)
		}
		return sendFile(c, "application/pdf", "existencias.pdf", data)
	case "xml":
		data, err := export.ReportXML(report)
		if err != nil {
			return writeError(c, err)
		}
		digest, err := export.Digest(data)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(HeaderReportDigest, digest)
		return sendFile(c, "application/xml; charset=utf-8", "existencias.xml", data)
	default:
		return c.JSON(report)
	}
}

func sendFile(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
