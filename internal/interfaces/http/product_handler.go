package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
)

// ProductHandler maneja las peticiones HTTP de productos.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	pdf *pdf.MarotoPDFGenerator
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase, pdfGen *pdf.MarotoPDFGenerator) *ProductHandler {
	if pdfGen == nil {
		pdfGen = pdf.NewMarotoPDFGenerator()
	}
	return &ProductHandler{uc: uc, pdf: pdfGen}
}

// Create godoc
// @Summary      Crear producto
// @Description  El código EAN-13 se genera en el servidor y la cantidad inicia en 0.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Description  Con code devuelve el producto con ese código de barras.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        code             query  string  false  "Código EAN-13"
// @Param        category         query  string  false  "Category ID"
// @Param        search           query  string  false  "Texto en código, nombre o categoría"
// @Param        order_by         query  string  false  "category | name | price | quantity"
// @Param        include_deleted  query  bool    false  "Incluir eliminados"
// @Param        limit            query  int     false  "Límite"   default(20)
// @Param        offset           query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if err := validate.Struct(q); err != nil {
		return writeError(c, err)
	}
	if q.Code != "" {
		out, err := h.uc.GetByCode(c.UserContext(), q.Code)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	page := dto.PageRequest{Limit: q.Limit, Offset: q.Offset}
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), repository.ProductFilter{
		CategoryID:     q.CategoryID,
		Search:         q.Search,
		OrderBy:        q.OrderBy,
		IncludeDeleted: q.IncludeDeleted,
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  No modifica cantidad ni código.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (lógico)
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Label godoc
// @Summary      Etiquetas con código de barras en PDF
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        id      path   string  true   "ID del producto"
// @Param        copies  query  int     false  "Número de etiquetas"  default(12)
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/label.pdf [get]
func (h *ProductHandler) Label(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	data, err := h.pdf.GenerateLabelPDF(c.UserContext(), *product, c.QueryInt("copies", 0))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}
