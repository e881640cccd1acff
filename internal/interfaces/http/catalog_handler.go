package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

type catalogService interface {
	Create(ctx context.Context, in dto.CatalogRequest) (*dto.CatalogResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CatalogResponse, error)
	Update(ctx context.Context, id string, in dto.CatalogRequest) (*dto.CatalogResponse, error)
	List(ctx context.Context) ([]dto.CatalogResponse, error)
	Delete(ctx context.Context, id string) error
}

// CatalogHandler CRUD de categorías o de unidades de medida.
// Al eliminar, los productos que la referencian quedan sin categoría/unidad.
type CatalogHandler struct {
	svc catalogService
}

// NewCatalogHandler construye el handler sobre CategoryUseCase o UnitUseCase.
func NewCatalogHandler(svc catalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Create godoc
// @Summary      Crear categoría o unidad
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CatalogRequest  true  "name"
// @Success      201   {object}  dto.CatalogResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
// @Router       /api/units [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CatalogRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar categorías o unidades
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogResponse
// @Router       /api/categories [get]
// @Router       /api/units [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría o unidad
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.CatalogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
// @Router       /api/units/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar categoría o unidad
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.CatalogRequest  true  "name"
// @Success      200   {object}  dto.CatalogResponse
// @Router       /api/categories/{id} [put]
// @Router       /api/units/{id} [put]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var in dto.CatalogRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría o unidad
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/categories/{id} [delete]
// @Router       /api/units/{id} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
